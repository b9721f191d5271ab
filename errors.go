package typekit

import (
	"errors"
	"fmt"
	"io/fs"
)

// Common classification errors
var (
	ErrNotExist   = errors.New("file does not exist")
	ErrPermission = errors.New("permission denied")
)

// PathError records an error and the classifier and file path that caused it
type PathError struct {
	Op   string // classifier name: "filesystem", "magic", "language"
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s test %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

// IsNotExist reports whether an error indicates that a file or directory
// does not exist
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

// IsPermission reports whether an error indicates that permission is denied
func IsPermission(err error) bool {
	return errors.Is(err, ErrPermission)
}

// wrapOSError converts a stat/open/read failure into a PathError carrying
// the matching sentinel where one applies.
func wrapOSError(op, path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &PathError{Op: op, Path: path, Err: ErrNotExist}
	case errors.Is(err, fs.ErrPermission):
		return &PathError{Op: op, Path: path, Err: ErrPermission}
	default:
		return &PathError{Op: op, Path: path, Err: err}
	}
}
