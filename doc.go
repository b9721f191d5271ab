// Package typekit classifies a file's content type in the manner of the
// Unix file utility: a fixed pipeline of independent classifiers runs over
// filesystem metadata, binary signatures, and textual content, and the
// first definitive answer wins.
//
// # Pipeline
//
// Three classifiers run in fixed order:
//
//   - [FilesystemClassifier] — stat-only: existence, node kind, permission
//     bits, size. Never reads content.
//   - [MagicClassifier] — matches an ordered table of byte signatures
//     against the file's leading bytes, then text-indicator prefixes
//     (shebangs, markup), then a binary/text heuristic.
//   - [LanguageClassifier] — extension and well-known-name tables, scored
//     per-language regex sets, generic content patterns, and a plain-text
//     heuristic.
//
// Each classifier returns a [TestResult] in one of three states: matched,
// failed, or inconclusive. Matched and failed results are terminal;
// inconclusive falls through. When all three classifiers pass, the file is
// classified Data/"data" — an unrecognized file is a valid classification,
// not an error.
//
// # Basic Usage
//
//	tester := typekit.NewTester()
//
//	result := tester.TestFile("report.pdf")
//	if result.IsFailed() {
//	    log.Fatal(result.Err)
//	}
//	fmt.Println(typekit.FormatResult("report.pdf", result))
//	// report.pdf: PDF document data
//
//	// Batch, order-preserving
//	results := tester.TestFiles([]string{"a.py", "b.zip", "c"})
//
// # Configuration
//
// Testers can be configured via environment variables with the TYPEKIT_
// prefix, or programmatically via the [Config] struct:
//
//	cfg := typekit.DefaultConfig()
//	cfg.CacheEnabled = true
//	tester, err := typekit.New(cfg)
//
// # Decorators and helpers
//
// [CachingTester] adds an opt-in result cache invalidated by file size and
// mtime. [FindFiles] and [TestMatching] walk directories with composable
// [FileSelector] filters. [Watcher] re-classifies files as they change.
package typekit
