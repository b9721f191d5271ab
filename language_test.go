package typekit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeNamedFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLanguageClassifierWellKnownNames(t *testing.T) {
	tests := []struct {
		filename string
		wantDesc string
	}{
		{"Makefile", "Makefile text"},
		{"makefile", "Makefile text"},
		{"Dockerfile", "Dockerfile text"},
		{"Rakefile", "Rakefile text"},
		{"Gemfile", "Gemfile text"},
	}

	c := NewLanguageClassifier(0)
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			result := c.Classify(writeNamedFile(t, tt.filename, "irrelevant content"))
			if !result.Success || result.FileType == nil {
				t.Fatalf("Classify = %+v, want success", result)
			}
			if result.FileType.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", result.FileType.Description, tt.wantDesc)
			}
			if result.FileType.Category != CategoryText {
				t.Errorf("Category = %q, want %q", result.FileType.Category, CategoryText)
			}
		})
	}
}

func TestLanguageClassifierDotfiles(t *testing.T) {
	c := NewLanguageClassifier(0)
	for _, name := range []string{".bashrc", ".gitignore", ".someapprc"} {
		t.Run(name, func(t *testing.T) {
			result := c.Classify(writeNamedFile(t, name, "export PATH=$PATH\n"))
			if !result.Success || result.FileType == nil {
				t.Fatalf("Classify = %+v, want success", result)
			}
			if result.FileType.Description != "configuration text" {
				t.Errorf("Description = %q, want configuration text", result.FileType.Description)
			}
		})
	}
}

func TestLanguageClassifierExtensionTable(t *testing.T) {
	tests := []struct {
		filename string
		content  string
		wantDesc string
	}{
		{"readme.md", "# Title\n", "Markdown text"},
		{"notes.txt", "plain\n", "ASCII text"},
		{"config.yaml", "key: value\n", "YAML text"},
		{"app.log", "started\n", "log text"},
		{"page.html", "<html>\n", "HTML text"},
		// Extension wins before content inspection: non-JSON prose in a
		// .json file still classifies as JSON text.
		{"notes.json", "this is not json at all\n", "JSON text"},
		{"project.gitignore", "*.o\n", "gitignore text"},
	}

	c := NewLanguageClassifier(0)
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			result := c.Classify(writeNamedFile(t, tt.filename, tt.content))
			if !result.Success || result.FileType == nil {
				t.Fatalf("Classify = %+v, want success", result)
			}
			if result.FileType.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", result.FileType.Description, tt.wantDesc)
			}
		})
	}
}

func TestLanguageClassifierPatternThreshold(t *testing.T) {
	c := NewLanguageClassifier(0)

	t.Run("two or more pattern matches classify the language", func(t *testing.T) {
		content := "import os\n\ndef main():\n    pass\n"
		result := c.Classify(writeNamedFile(t, "tool.py", content))
		if !result.Success || result.FileType == nil {
			t.Fatalf("Classify = %+v, want success", result)
		}
		if result.FileType.Description != "Python script text" {
			t.Errorf("Description = %q, want Python script text", result.FileType.Description)
		}
	})

	t.Run("single pattern match falls through to generic text", func(t *testing.T) {
		result := c.Classify(writeNamedFile(t, "tool.py", "def main():\n"))
		if !result.Success || result.FileType == nil {
			t.Fatalf("Classify = %+v, want success", result)
		}
		if result.FileType.Description == "Python script text" {
			t.Error("one pattern match must not classify as Python")
		}
		if result.FileType.Description != "ASCII text" {
			t.Errorf("Description = %q, want ASCII text", result.FileType.Description)
		}
	})

	t.Run("Go source", func(t *testing.T) {
		content := "package main\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n"
		result := c.Classify(writeNamedFile(t, "main.go.sample", content))
		// Unknown extension: content patterns handle it instead.
		if !result.Success {
			t.Fatalf("Classify = %+v, want success", result)
		}

		result = c.Classify(writeNamedFile(t, "prog.go", content))
		if !result.Success || result.FileType == nil {
			t.Fatalf("Classify = %+v, want success", result)
		}
		if result.FileType.Description != "Go source text" {
			t.Errorf("Description = %q, want Go source text", result.FileType.Description)
		}
	})
}

func TestLanguageClassifierContentPatterns(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		wantDesc string
	}{
		{"sql select", "query.dat2", "SELECT id FROM users;\n", "SQL text"},
		{"sql insert", "seed.dat2", "INSERT INTO users VALUES (1);\n", "SQL text"},
		{"sql create", "schema.dat2", "CREATE TABLE users (id INT);\n", "SQL text"},
		{"hash comments", "settings.dat2", "# main section\nvalue = 1\n", "text with comments"},
		{"line comments", "snippet.dat2", "// entry point\nrun()\n", "source code text"},
		{"block comment", "other.dat2", "/* header */ body\n", "source code text"},
	}

	c := NewLanguageClassifier(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(writeNamedFile(t, tt.filename, tt.content))
			if !result.Success || result.FileType == nil {
				t.Fatalf("Classify = %+v, want success", result)
			}
			if result.FileType.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", result.FileType.Description, tt.wantDesc)
			}
		})
	}
}

func TestLanguageClassifierPlainTextHeuristic(t *testing.T) {
	c := NewLanguageClassifier(0)

	t.Run("multi-line prose", func(t *testing.T) {
		content := "line one\nline two\nline three\n"
		result := c.Classify(writeNamedFile(t, "prose.dat2", content))
		if !result.Success || result.FileType == nil || result.FileType.Description != "ASCII text" {
			t.Errorf("Classify = %+v, want ASCII text", result)
		}
	})

	t.Run("single overlong line is inconclusive", func(t *testing.T) {
		content := strings.Repeat("a", 1200)
		result := c.Classify(writeNamedFile(t, "blob.dat2", content))
		if !result.IsInconclusive() {
			t.Errorf("Classify = %+v, want inconclusive", result)
		}
	})

	t.Run("invalid UTF-8 sample is inconclusive", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "noise.dat2")
		if err := os.WriteFile(path, []byte{0xFF, 0xFE, 0xFF, 0xFE}, 0o644); err != nil {
			t.Fatal(err)
		}
		result := c.Classify(path)
		if !result.IsInconclusive() {
			t.Errorf("Classify = %+v, want inconclusive", result)
		}
	})

	t.Run("whitespace-only is inconclusive", func(t *testing.T) {
		result := c.Classify(writeNamedFile(t, "space.dat2", "  \n\t\n"))
		if !result.IsInconclusive() {
			t.Errorf("Classify = %+v, want inconclusive", result)
		}
	})
}

func TestFileExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"main.go", ".go"},
		{"archive.tar.gz", ".gz"},
		{".bashrc", ""},
		{"makefile", ""},
		{"project.gitignore", ".gitignore"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := fileExtension(tt.filename); got != tt.want {
				t.Errorf("fileExtension(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}
