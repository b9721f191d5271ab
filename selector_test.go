package typekit

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"alpha.py":      "import os\n",
		"beta.txt":      "text\n",
		"sub/gamma.py":  "import sys\n",
		"sub/delta.log": "started\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestFindFilesGlob(t *testing.T) {
	root := buildTree(t)

	selector, err := Glob("*.py")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("recursive", func(t *testing.T) {
		got, err := FindFiles(root, selector, true)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{
			filepath.Join(root, "alpha.py"),
			filepath.Join(root, "sub", "gamma.py"),
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FindFiles = %v, want %v", got, want)
		}
	})

	t.Run("non-recursive", func(t *testing.T) {
		got, err := FindFiles(root, selector, false)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{filepath.Join(root, "alpha.py")}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FindFiles = %v, want %v", got, want)
		}
	})
}

func TestFindFilesNilSelectorMatchesAll(t *testing.T) {
	root := buildTree(t)
	got, err := FindFiles(root, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Errorf("FindFiles = %v, want 4 files", got)
	}
}

func TestSelectorCombinators(t *testing.T) {
	root := buildTree(t)

	py, err := Glob("*.py")
	if err != nil {
		t.Fatal(err)
	}

	small := FuncSelector(func(f *FileInfo) bool {
		return f.Size < 11
	})

	got, err := FindFiles(root, And(py, small), true)
	if err != nil {
		t.Fatal(err)
	}
	// "import os\n" is 10 bytes, "import sys\n" is 11.
	want := []string{filepath.Join(root, "alpha.py")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindFiles(And) = %v, want %v", got, want)
	}

	got, err = FindFiles(root, Not(py), true)
	if err != nil {
		t.Fatal(err)
	}
	want = []string{
		filepath.Join(root, "beta.txt"),
		filepath.Join(root, "sub", "delta.log"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindFiles(Not) = %v, want %v", got, want)
	}
}

func TestGlobRejectsBadPattern(t *testing.T) {
	if _, err := Glob("[unterminated"); err == nil {
		t.Error("Glob should reject an unterminated character class")
	}
}

func TestTestMatching(t *testing.T) {
	root := buildTree(t)

	selector, err := Glob("*.txt")
	if err != nil {
		t.Fatal(err)
	}

	paths, results, err := TestMatching(NewTester(), root, selector, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || len(results) != 1 {
		t.Fatalf("got %d paths, %d results, want 1 each", len(paths), len(results))
	}
	if results[0].FileType == nil || results[0].FileType.Description != "ASCII text" {
		t.Errorf("results[0] = %+v, want ASCII text", results[0])
	}
}
