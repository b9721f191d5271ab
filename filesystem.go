package typekit

import (
	"os"
)

// FilesystemClassifier classifies a file from path metadata alone: node
// kind, permission bits, and size. It never reads file content, so it is
// the cheapest stage and runs first.
type FilesystemClassifier struct{}

// NewFilesystemClassifier creates a filesystem classifier.
func NewFilesystemClassifier() *FilesystemClassifier {
	return &FilesystemClassifier{}
}

// Name implements Classifier.
func (c *FilesystemClassifier) Name() string { return "filesystem" }

// Classify stats the path and matches, in order: nonexistent, directory,
// symbolic link, special nodes (character/block device, FIFO, socket),
// owner-executable regular file, empty regular file. A plain non-empty
// regular file is inconclusive and falls through to the magic classifier.
//
// The stat follows symbolic links before the link check runs, so a link
// to a directory reports "directory" and a dangling link reports a
// does-not-exist error. The owner-execute bit is a coarse signal: any
// executable regular file reports "executable" here, including text
// scripts whose content the later classifiers never get to inspect.
func (c *FilesystemClassifier) Classify(path string) TestResult {
	info, err := os.Stat(path)
	if err != nil {
		return Failed(wrapOSError(c.Name(), path, err))
	}

	mode := info.Mode()

	if mode.IsDir() {
		return Matched(NewFileType(CategoryData, "directory"))
	}

	if linfo, lerr := os.Lstat(path); lerr == nil && linfo.Mode()&os.ModeSymlink != 0 {
		desc := "symbolic link"
		if target, terr := os.Readlink(path); terr == nil && target != "" {
			desc = "symbolic link to " + target
		}
		return Matched(NewFileType(CategoryData, desc))
	}

	switch {
	case mode&os.ModeCharDevice != 0:
		return Matched(NewFileType(CategoryData, "character special device"))
	case mode&os.ModeDevice != 0:
		return Matched(NewFileType(CategoryData, "block special device"))
	case mode&os.ModeNamedPipe != 0:
		return Matched(NewFileType(CategoryData, "named pipe (FIFO)"))
	case mode&os.ModeSocket != 0:
		return Matched(NewFileType(CategoryData, "socket"))
	}

	// Owner-execute bit on a regular file wins before content inspection.
	if mode.IsRegular() && mode.Perm()&0o100 != 0 {
		return Matched(NewFileType(CategoryExecutable, "executable"))
	}

	if info.Size() == 0 {
		return Matched(NewFileType(CategoryData, "empty"))
	}

	return Inconclusive()
}
