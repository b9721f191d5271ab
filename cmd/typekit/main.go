package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/color"

	"github.com/gobeaver/typekit"
)

const version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")
		mimeType    = flag.Bool("mime-type", false, "also output MIME type if available")
		pattern     = flag.String("pattern", "", "treat arguments as directories and test files matching this glob")
		recursive   = flag.Bool("r", false, "recurse into subdirectories when -pattern is set")
		watch       = flag.Bool("watch", false, "keep running and re-classify files as they change")
		noColor     = flag.Bool("no-color", false, "disable colored output")
	)
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("typekit %s\n", version)
		return 0
	}
	if *noColor {
		color.Disable()
	}

	paths := flag.Args()
	if len(paths) == 0 {
		paths = readPathsFromStdin()
	}
	if len(paths) == 0 {
		usage()
		return 1
	}

	tester, err := typekit.Default()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.Red.Render(fmt.Sprintf("typekit: %v", err)))
		return 1
	}

	if *pattern != "" {
		var err error
		paths, err = expandPatterns(paths, *pattern, *recursive)
		if err != nil {
			fmt.Fprintln(os.Stderr, color.Red.Render(fmt.Sprintf("typekit: %v", err)))
			return 1
		}
	}

	exitCode := 0
	for _, path := range paths {
		result := tester.TestFile(path)
		printResult(path, result, *mimeType)
		if result.IsFailed() {
			exitCode = 1
		}
	}

	if *watch {
		if err := watchPaths(tester, paths, *mimeType); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, color.Red.Render(fmt.Sprintf("typekit: %v", err)))
			return 1
		}
	}

	return exitCode
}

func usage() {
	fmt.Fprintf(os.Stderr, `typekit - classify files by content type

Usage:
  typekit [flags] [file ...]

Paths are read from stdin, one per line, when no arguments are given.

Flags:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  typekit notes.txt                 # test a single file
  typekit a.py b.jpg                # test multiple files
  typekit -pattern '*.py' -r src    # test matching files under src
  find . -type f | typekit          # test paths from stdin
`)
}

func readPathsFromStdin() []string {
	var paths []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}

func expandPatterns(roots []string, pattern string, recursive bool) ([]string, error) {
	selector, err := typekit.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	var paths []string
	for _, root := range roots {
		found, err := typekit.FindFiles(root, selector, recursive)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func printResult(path string, result typekit.TestResult, withMIME bool) {
	if result.IsFailed() {
		fmt.Println(color.Red.Render(typekit.FormatResult(path, result)))
		return
	}
	if withMIME && result.FileType != nil && result.FileType.MIMEType != "" {
		fmt.Printf("%s: %s; charset=unknown; %s\n", path, result.FileType, result.FileType.MIMEType)
		return
	}
	fmt.Println(typekit.FormatResult(path, result))
}

func watchPaths(tester typekit.FileTester, paths []string, withMIME bool) error {
	watcher, err := typekit.NewWatcher(tester, func(path string, result typekit.TestResult) {
		printResult(path, result, withMIME)
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watcher.Run(ctx)
}
