package typekit

// Classifier is one stage of the classification pipeline. A classifier
// inspects a single file and returns a TestResult in one of three states:
// matched (definitive answer), failed (hard error, terminal for the file),
// or inconclusive (no opinion, the next classifier runs).
//
// Classifiers are stateless and safe for concurrent use.
type Classifier interface {
	// Name identifies the classifier in wrapped errors.
	Name() string

	// Classify inspects the file at path.
	Classify(path string) TestResult
}

// FileTester is the classification surface consumed by callers and
// decorators. *Tester is the canonical implementation; CachingTester
// wraps any FileTester.
type FileTester interface {
	// TestFile classifies a single file.
	TestFile(path string) TestResult

	// TestFiles classifies each path independently, preserving input order.
	TestFiles(paths []string) []TestResult
}
