package typekit

import (
	"fmt"
	"sync"
	"time"

	"github.com/gobeaver/beaver-kit/config"
)

// Global instance
var (
	defaultTester FileTester
	defaultOnce   sync.Once
	defaultErr    error
)

// Tester runs the classification pipeline: filesystem, then magic, then
// language, in that order. The first classifier to return a matched or
// failed result is terminal; if all three are inconclusive the file is
// classified Data/"data", which is a valid successful outcome, not an
// error.
type Tester struct {
	classifiers []Classifier
}

// NewTester creates a Tester with built-in defaults.
func NewTester() *Tester {
	return &Tester{classifiers: defaultClassifiers(DefaultConfig())}
}

// New creates a file tester from the given config, wrapping it in a
// result cache when the config asks for one.
func New(cfg *Config) (FileTester, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var tester FileTester = &Tester{classifiers: defaultClassifiers(cfg)}

	if cfg.CacheEnabled {
		tester = NewCachingTester(tester,
			WithCacheTTL(time.Duration(cfg.CacheTTLSeconds)*time.Second),
		)
	}

	return tester, nil
}

func defaultClassifiers(cfg *Config) []Classifier {
	return []Classifier{
		NewFilesystemClassifier(),
		NewMagicClassifier(cfg.MagicHeaderBytes),
		NewLanguageClassifier(cfg.LanguageSampleBytes),
	}
}

// Builder provides a way to create testers with a custom env prefix
type Builder struct {
	prefix string
}

// WithPrefix creates a new Builder with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// New creates a file tester using the builder's prefix
func (b *Builder) New() (FileTester, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return nil, err
	}
	return New(cfg)
}

// Init initializes the global tester instance
func Init(configs ...*Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultTester, defaultErr = New(cfg)
	})

	return defaultErr
}

// Default returns the global tester, initializing it from the environment
// on first use.
func Default() (FileTester, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	return defaultTester, nil
}

// TestFile classifies a single file. It never panics: a classifier panic
// is captured as a failed result naming the classifier. For existing,
// readable files the result is always a success or a definitive default.
func (t *Tester) TestFile(path string) TestResult {
	for _, c := range t.classifiers {
		result := t.run(c, path)
		if result.Success && result.FileType != nil {
			return result
		}
		if result.Err != nil {
			return result
		}
	}

	// Nothing recognized the file; unrecognized content is still a
	// successful classification.
	return Matched(NewFileType(CategoryData, "data"))
}

// TestFiles classifies each path independently and returns results in
// input order. A failure for one path does not affect the others.
func (t *Tester) TestFiles(paths []string) []TestResult {
	results := make([]TestResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, t.TestFile(path))
	}
	return results
}

// ClassifyFile returns just the FileType for a path, or nil when the
// pipeline failed.
func (t *Tester) ClassifyFile(path string) *FileType {
	result := t.TestFile(path)
	if !result.Success {
		return nil
	}
	return result.FileType
}

func (t *Tester) run(c Classifier, path string) (result TestResult) {
	defer func() {
		if r := recover(); r != nil {
			result = Failed(&PathError{
				Op:   c.Name(),
				Path: path,
				Err:  fmt.Errorf("unexpected error: %v", r),
			})
		}
	}()
	return c.Classify(path)
}

// FormatResult renders one result for display: "{path}: {error}" on
// failure, "{path}: {file type}" on success, "{path}: unknown" otherwise.
func FormatResult(path string, result TestResult) string {
	switch {
	case result.Err != nil:
		return fmt.Sprintf("%s: %v", path, result.Err)
	case result.FileType != nil:
		return fmt.Sprintf("%s: %s", path, result.FileType)
	default:
		return path + ": unknown"
	}
}
