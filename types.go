package typekit

import "strings"

// FileTypeCategory is the coarse classification bucket for a file.
type FileTypeCategory string

const (
	// CategoryText covers human-readable content: source code, markup,
	// configuration, plain text.
	CategoryText FileTypeCategory = "text"

	// CategoryExecutable covers binaries and files carrying the
	// owner-execute permission bit.
	CategoryExecutable FileTypeCategory = "executable"

	// CategoryData covers everything else: archives, images, media,
	// device nodes, and unrecognized content.
	CategoryData FileTypeCategory = "data"
)

// FileType represents a detected file type. Values are constructed per
// classification and never mutated.
type FileType struct {
	// Category is the coarse classification bucket.
	Category FileTypeCategory

	// Description is the human-readable classification label,
	// e.g. "Python script text". Never empty.
	Description string

	// MIMEType is set only when a classifier can assert one.
	MIMEType string

	// Confidence is reserved for partial-confidence classification.
	// Currently always 1.0.
	Confidence float64
}

// NewFileType creates a FileType with full confidence.
func NewFileType(category FileTypeCategory, description string) FileType {
	return FileType{
		Category:    category,
		Description: description,
		Confidence:  1.0,
	}
}

// NewFileTypeMIME creates a FileType with an asserted MIME type.
func NewFileTypeMIME(category FileTypeCategory, description, mimeType string) FileType {
	ft := NewFileType(category, description)
	ft.MIMEType = mimeType
	return ft
}

// String returns the display form of the file type. If the category name
// already appears inside the description, the description stands alone;
// otherwise the category is appended.
func (ft FileType) String() string {
	if strings.Contains(ft.Description, string(ft.Category)) {
		return ft.Description
	}
	return ft.Description + " " + string(ft.Category)
}

// TestResult is the outcome of one classifier invocation or of the whole
// pipeline. Exactly one of three states holds:
//
//   - matched: Success is true and FileType is set
//   - failed: Err is set (hard error, the pipeline stops)
//   - inconclusive: neither (the pipeline proceeds to the next classifier)
//
// Inconclusive is not an error condition; collapsing the two breaks the
// pipeline contract.
type TestResult struct {
	// Success reports whether a classification was reached.
	Success bool

	// FileType is present iff Success is true.
	FileType *FileType

	// Err is present iff the test failed due to an exceptional condition,
	// e.g. permission denial. Distinct from inconclusive.
	Err error
}

// Matched creates a definitive successful result.
func Matched(ft FileType) TestResult {
	return TestResult{Success: true, FileType: &ft}
}

// Inconclusive creates a "no opinion" result; the pipeline falls through
// to the next classifier.
func Inconclusive() TestResult {
	return TestResult{}
}

// Failed creates a hard-error result; the pipeline stops for this file.
func Failed(err error) TestResult {
	return TestResult{Err: err}
}

// IsInconclusive reports whether the result carries neither a
// classification nor an error.
func (r TestResult) IsInconclusive() bool {
	return !r.Success && r.Err == nil
}

// IsFailed reports whether the result carries a hard error.
func (r TestResult) IsFailed() bool {
	return r.Err != nil
}
