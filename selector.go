package typekit

import (
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// FileInfo describes one entry found during a directory walk.
type FileInfo struct {
	Name  string // base name
	Path  string // full path as walked
	Size  int64
	IsDir bool
}

// FileSelector filters files during directory walks.
//
// Selectors compose: combine them with And and Not, or use FuncSelector
// for one-off predicates.
type FileSelector interface {
	// Match returns true if the file should be included in results.
	Match(file *FileInfo) bool

	// TraverseDescendants returns true if directory descendants should be
	// traversed. Returning false skips the directory and all its contents.
	// Only called for directories.
	TraverseDescendants(file *FileInfo) bool
}

// AllSelector matches all files and traverses all directories.
type AllSelector struct{}

func (s AllSelector) Match(file *FileInfo) bool               { return true }
func (s AllSelector) TraverseDescendants(file *FileInfo) bool { return true }

// All returns a selector that matches every file.
func All() FileSelector {
	return AllSelector{}
}

type globSelector struct {
	g glob.Glob
}

// Glob creates a selector matching base names against a glob pattern.
// Supports *, ?, character classes, and ** via {a,b} alternates.
//
// Examples:
//
//	Glob("*.py")
//	Glob("image_????.jpg")
//	Glob("*.{yml,yaml}")
func Glob(pattern string) (FileSelector, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &globSelector{g: g}, nil
}

func (s *globSelector) Match(file *FileInfo) bool               { return s.g.Match(file.Name) }
func (s *globSelector) TraverseDescendants(file *FileInfo) bool { return true }

// FuncSelector adapts a plain predicate into a FileSelector.
type FuncSelector func(file *FileInfo) bool

func (f FuncSelector) Match(file *FileInfo) bool               { return f(file) }
func (f FuncSelector) TraverseDescendants(file *FileInfo) bool { return true }

type andSelector struct {
	selectors []FileSelector
}

// And combines selectors; a file matches only if every selector matches.
func And(selectors ...FileSelector) FileSelector {
	return &andSelector{selectors: selectors}
}

func (s *andSelector) Match(file *FileInfo) bool {
	for _, sel := range s.selectors {
		if !sel.Match(file) {
			return false
		}
	}
	return true
}

func (s *andSelector) TraverseDescendants(file *FileInfo) bool {
	for _, sel := range s.selectors {
		if !sel.TraverseDescendants(file) {
			return false
		}
	}
	return true
}

type notSelector struct {
	inner FileSelector
}

// Not inverts a selector's Match. Traversal is unaffected.
func Not(inner FileSelector) FileSelector {
	return &notSelector{inner: inner}
}

func (s *notSelector) Match(file *FileInfo) bool               { return !s.inner.Match(file) }
func (s *notSelector) TraverseDescendants(file *FileInfo) bool { return true }

// FindFiles walks root and returns the paths of files accepted by the
// selector, in walk order. Set recursive for deep traversal.
func FindFiles(root string, selector FileSelector, recursive bool) ([]string, error) {
	if selector == nil {
		selector = All()
	}

	var results []string
	if err := findRecursive(root, selector, recursive, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func findRecursive(dir string, selector FileSelector, recursive bool, results *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info := FileInfo{
			Name:  entry.Name(),
			Path:  path,
			IsDir: entry.IsDir(),
		}
		if fi, err := entry.Info(); err == nil {
			info.Size = fi.Size()
		}

		if info.IsDir {
			if recursive && selector.TraverseDescendants(&info) {
				if err := findRecursive(path, selector, recursive, results); err != nil {
					return err
				}
			}
		} else if selector.Match(&info) {
			*results = append(*results, path)
		}
	}

	return nil
}

// TestMatching walks root for files accepted by the selector and runs the
// tester over them, returning the matched paths and their results in walk
// order.
func TestMatching(tester FileTester, root string, selector FileSelector, recursive bool) ([]string, []TestResult, error) {
	paths, err := FindFiles(root, selector, recursive)
	if err != nil {
		return nil, nil, err
	}
	return paths, tester.TestFiles(paths), nil
}
