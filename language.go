package typekit

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultLanguageSampleBytes is how much of the file the language
// classifier reads for content analysis.
const DefaultLanguageSampleBytes = 4096

// languageEntry holds the scored pattern set for one programming language.
// A sample must match at least two patterns to classify: a single generic
// token (a lone "import", say) is not proof of language.
type languageEntry struct {
	patterns    []*regexp.Regexp
	description string
}

var languagePatterns = map[string]languageEntry{
	".py": {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*#.*?coding[:=]\s*([-\w.]+)`),
			regexp.MustCompile(`(?m)^\s*import\s+\w+`),
			regexp.MustCompile(`(?m)^\s*from\s+\w+\s+import`),
			regexp.MustCompile(`(?m)^\s*def\s+\w+\s*\(`),
			regexp.MustCompile(`(?m)^\s*class\s+\w+\s*(\(|:)`),
			regexp.MustCompile(`(?m)^\s*if\s+__name__\s*==\s*["']__main__["']`),
		},
		description: "Python script",
	},
	".js": {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`function\s+\w+\s*\(`),
			regexp.MustCompile(`var\s+\w+\s*=`),
			regexp.MustCompile(`let\s+\w+\s*=`),
			regexp.MustCompile(`const\s+\w+\s*=`),
			regexp.MustCompile(`console\.log\s*\(`),
			regexp.MustCompile(`require\s*\(\s*["']`),
		},
		description: "JavaScript source",
	},
	".java": {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`public\s+class\s+\w+`),
			regexp.MustCompile(`private\s+\w+\s+\w+`),
			regexp.MustCompile(`public\s+static\s+void\s+main`),
			regexp.MustCompile(`import\s+java\.`),
			regexp.MustCompile(`System\.out\.print`),
		},
		description: "Java source",
	},
	".c": {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`#include\s*<\w+\.h>`),
			regexp.MustCompile(`int\s+main\s*\(`),
			regexp.MustCompile(`printf\s*\(`),
			regexp.MustCompile(`void\s+\w+\s*\(`),
			regexp.MustCompile(`#define\s+\w+`),
		},
		description: "C source",
	},
	".cpp": {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`#include\s*<iostream>`),
			regexp.MustCompile(`std::`),
			regexp.MustCompile(`cout\s*<<`),
			regexp.MustCompile(`namespace\s+\w+`),
			regexp.MustCompile(`class\s+\w+\s*\{`),
		},
		description: "C++ source",
	},
	".h": {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`#ifndef\s+\w+`),
			regexp.MustCompile(`#define\s+\w+`),
			regexp.MustCompile(`#endif`),
			regexp.MustCompile(`extern\s+"C"`),
		},
		description: "C header",
	},
	".rs": {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`fn\s+\w+\s*\(`),
			regexp.MustCompile(`use\s+std::`),
			regexp.MustCompile(`let\s+\w+\s*=`),
			regexp.MustCompile(`impl\s+\w+`),
			regexp.MustCompile(`struct\s+\w+`),
		},
		description: "Rust source",
	},
	".go": {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`package\s+\w+`),
			regexp.MustCompile(`import\s*\(`),
			regexp.MustCompile(`func\s+\w+\s*\(`),
			regexp.MustCompile(`fmt\.Print`),
			regexp.MustCompile(`type\s+\w+\s+struct`),
		},
		description: "Go source",
	},
	".rb": {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`def\s+\w+`),
			regexp.MustCompile(`class\s+\w+`),
			regexp.MustCompile(`require\s+["']`),
			regexp.MustCompile(`puts\s+`),
			regexp.MustCompile(`(?m)end\s*$`),
		},
		description: "Ruby script",
	},
	".php": {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`<\?php`),
			regexp.MustCompile(`function\s+\w+\s*\(`),
			regexp.MustCompile(`\$\w+\s*=`),
			regexp.MustCompile(`echo\s+`),
			regexp.MustCompile(`require_once\s+`),
		},
		description: "PHP script",
	},
	".pl": {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`#!/usr/bin/perl`),
			regexp.MustCompile(`use\s+strict;`),
			regexp.MustCompile(`sub\s+\w+\s*\{`),
			regexp.MustCompile(`my\s+\$\w+`),
			regexp.MustCompile(`print\s+`),
		},
		description: "Perl script",
	},
}

// textExtensions maps known text extensions straight to a description.
// This table wins before any content inspection runs.
var textExtensions = map[string]string{
	".txt":           "ASCII text",
	".md":            "Markdown text",
	".rst":           "reStructuredText text",
	".tex":           "LaTeX text",
	".csv":           "CSV text",
	".tsv":           "TSV text",
	".json":          "JSON text",
	".xml":           "XML text",
	".yaml":          "YAML text",
	".yml":           "YAML text",
	".toml":          "TOML text",
	".ini":           "INI configuration text",
	".cfg":           "configuration text",
	".conf":          "configuration text",
	".log":           "log text",
	".sql":           "SQL text",
	".html":          "HTML text",
	".htm":           "HTML text",
	".css":           "CSS text",
	".scss":          "SCSS text",
	".sass":          "Sass text",
	".less":          "LESS text",
	".dockerfile":    "Dockerfile text",
	".makefile":      "Makefile text",
	".gitignore":     "gitignore text",
	".gitattributes": "gitattributes text",
	".editorconfig":  "EditorConfig text",
	".bash_profile":  "Bash profile text",
	".bashrc":        "Bash configuration text",
	".zshrc":         "Zsh configuration text",
	".vimrc":         "Vim configuration text",
}

// textContentPattern pairs a generic content pattern with its description.
// The list is ordered and the first match wins.
type textContentPattern struct {
	pattern     *regexp.Regexp
	description string
}

var textContentPatterns = []textContentPattern{
	{regexp.MustCompile(`(?m)^\s*\{[\s\S]*\}\s*$`), "JSON text"},
	{regexp.MustCompile(`(?m)^\s*<\?xml`), "XML text"},
	{regexp.MustCompile(`(?mi)^\s*<!DOCTYPE\s+html`), "HTML text"},
	{regexp.MustCompile(`(?mi)^\s*<html`), "HTML text"},
	{regexp.MustCompile(`(?mi)^\s*SELECT\s+.*\s+FROM\s+`), "SQL text"},
	{regexp.MustCompile(`(?mi)^\s*INSERT\s+INTO\s+`), "SQL text"},
	{regexp.MustCompile(`(?mi)^\s*CREATE\s+(TABLE|DATABASE)`), "SQL text"},
	{regexp.MustCompile(`(?m)^\s*#\s*[A-Za-z].*$`), "text with comments"},
	{regexp.MustCompile(`(?m)^\s*//.*$`), "source code text"},
	{regexp.MustCompile(`(?m)^\s*/\*[\s\S]*?\*/`), "source code text"},
}

// wellKnownNames are extensionless filenames classified on name alone.
var wellKnownNames = map[string]bool{
	"makefile":   true,
	"dockerfile": true,
	"rakefile":   true,
	"gemfile":    true,
}

// LanguageClassifier infers text and programming-language types: extension
// and well-known filenames first, then scored regex sets and generic text
// heuristics over a bounded content sample.
type LanguageClassifier struct {
	sampleBytes int
}

// NewLanguageClassifier creates a language classifier reading sampleBytes
// of content. Values <= 0 fall back to DefaultLanguageSampleBytes.
func NewLanguageClassifier(sampleBytes int) *LanguageClassifier {
	if sampleBytes <= 0 {
		sampleBytes = DefaultLanguageSampleBytes
	}
	return &LanguageClassifier{sampleBytes: sampleBytes}
}

// Name implements Classifier.
func (c *LanguageClassifier) Name() string { return "language" }

// Classify runs extension-based lookups first; only when those are
// inconclusive does it read a content sample for pattern scoring and the
// plain-text heuristic.
func (c *LanguageClassifier) Classify(path string) TestResult {
	filename := strings.ToLower(filepath.Base(path))
	extension := fileExtension(filename)

	if extension == "" {
		if wellKnownNames[filename] {
			return Matched(NewFileType(CategoryText, titlecase(filename)+" text"))
		}
		if strings.HasPrefix(filename, ".") {
			// Hidden configuration files
			return Matched(NewFileType(CategoryText, "configuration text"))
		}
	}

	if description, ok := textExtensions[extension]; ok {
		return Matched(NewFileType(CategoryText, description))
	}

	content, err := c.readSample(path)
	if err != nil {
		return Failed(err)
	}
	if strings.TrimSpace(content) == "" {
		return Inconclusive()
	}

	if entry, ok := languagePatterns[extension]; ok {
		matches := 0
		for _, pattern := range entry.patterns {
			if pattern.MatchString(content) {
				matches++
			}
		}
		if matches >= 2 {
			return Matched(NewFileType(CategoryText, entry.description+" text"))
		}
	}

	for _, tp := range textContentPatterns {
		if tp.pattern.MatchString(content) {
			return Matched(NewFileType(CategoryText, tp.description))
		}
	}

	if isPlainText(content) {
		return Matched(NewFileType(CategoryText, "ASCII text"))
	}

	return Inconclusive()
}

// readSample reads up to sampleBytes and drops bytes that are not valid
// UTF-8, so binary garbage cannot poison the pattern matching.
func (c *LanguageClassifier) readSample(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", wrapOSError(c.Name(), path, err)
	}
	defer f.Close()

	buf := make([]byte, c.sampleBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", wrapOSError(c.Name(), path, err)
	}

	return strings.ToValidUTF8(string(buf[:n]), ""), nil
}

// fileExtension returns the lowercased extension of a lowercased filename.
// A name whose only dot is the leading one (".bashrc") has no extension;
// it is a dotfile, not a file with extension ".bashrc".
func fileExtension(filename string) string {
	ext := filepath.Ext(filename)
	if ext == filename {
		return ""
	}
	return ext
}

func titlecase(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// isPlainText reports whether content looks like ordinary text: over 95%
// printable characters with a sane line structure (multi-line with mean
// line length under 200, or one line under 1000 characters).
func isPlainText(content string) bool {
	if content == "" {
		return false
	}

	printable := 0
	total := 0
	for _, r := range content {
		total++
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}

	if total == 0 || float64(printable)/float64(total) <= 0.95 {
		return false
	}

	lines := strings.Split(content, "\n")
	if len(lines) > 1 {
		chars := 0
		for _, line := range lines {
			chars += utf8.RuneCountInString(line)
		}
		return float64(chars)/float64(len(lines)) < 200
	}
	return utf8.RuneCountInString(content) < 1000
}
