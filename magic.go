package typekit

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"strings"
)

// DefaultMagicHeaderBytes is how much of the file the magic classifier
// reads. Every signature in the table fits well inside it.
const DefaultMagicHeaderBytes = 1024

const elfTypeCore = 4 // ET_CORE in the ELF header type field

// MagicSignature defines a file type signature: fixed bytes at a fixed
// offset from the start of the file.
type MagicSignature struct {
	Offset      int
	Magic       []byte
	Description string
	Category    FileTypeCategory
	MIME        string // empty when the signature alone cannot assert one
}

var elfMagic = []byte{0x7F, 'E', 'L', 'F'}

// magicSignatures is scanned top to bottom and the first match wins, so
// relative order is load-bearing: longer or more specific signatures must
// precede shorter ones that would otherwise match a prefix spuriously.
var magicSignatures = []MagicSignature{
	// Executables
	{Offset: 0, Magic: elfMagic, Description: "ELF executable", Category: CategoryExecutable, MIME: "application/x-executable"},
	{Offset: 0, Magic: []byte("MZ"), Description: "MS-DOS executable", Category: CategoryExecutable, MIME: "application/x-msdownload"},
	{Offset: 0, Magic: []byte{0xFE, 0xED, 0xFA, 0xCE}, Description: "Mach-O executable (32-bit)", Category: CategoryExecutable, MIME: "application/x-mach-binary"},
	{Offset: 0, Magic: []byte{0xFE, 0xED, 0xFA, 0xCF}, Description: "Mach-O executable (64-bit)", Category: CategoryExecutable, MIME: "application/x-mach-binary"},
	{Offset: 0, Magic: []byte{0xCF, 0xFA, 0xED, 0xFE}, Description: "Mach-O executable (32-bit, reverse)", Category: CategoryExecutable, MIME: "application/x-mach-binary"},
	{Offset: 0, Magic: []byte{0xCE, 0xFA, 0xED, 0xFE}, Description: "Mach-O executable (64-bit, reverse)", Category: CategoryExecutable, MIME: "application/x-mach-binary"},

	// Archives and compressed data
	{Offset: 0, Magic: []byte("PK\x03\x04"), Description: "ZIP archive data", Category: CategoryData, MIME: "application/zip"},
	{Offset: 0, Magic: []byte("PK\x05\x06"), Description: "empty ZIP archive data", Category: CategoryData, MIME: "application/zip"},
	{Offset: 0, Magic: []byte("PK\x07\x08"), Description: "ZIP archive data", Category: CategoryData, MIME: "application/zip"},
	{Offset: 0, Magic: []byte{0x1F, 0x8B}, Description: "gzip compressed data", Category: CategoryData, MIME: "application/gzip"},
	{Offset: 0, Magic: []byte("BZh"), Description: "bzip2 compressed data", Category: CategoryData, MIME: "application/x-bzip2"},
	{Offset: 0, Magic: []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}, Description: "XZ compressed data", Category: CategoryData, MIME: "application/x-xz"},
	{Offset: 0, Magic: []byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C}, Description: "7-zip archive data", Category: CategoryData, MIME: "application/x-7z-compressed"},
	{Offset: 0, Magic: []byte("Rar!\x1a\x07\x00"), Description: "RAR archive data", Category: CategoryData, MIME: "application/x-rar-compressed"},
	{Offset: 0, Magic: []byte("Rar!\x1a\x07\x01\x00"), Description: "RAR archive data", Category: CategoryData, MIME: "application/x-rar-compressed"},

	// Tar archives
	{Offset: 257, Magic: []byte("ustar\x00"), Description: "POSIX tar archive", Category: CategoryData, MIME: "application/x-tar"},
	{Offset: 257, Magic: []byte("ustar  \x00"), Description: "GNU tar archive", Category: CategoryData, MIME: "application/x-tar"},

	// Images
	{Offset: 0, Magic: []byte{0xFF, 0xD8, 0xFF}, Description: "JPEG image data", Category: CategoryData, MIME: "image/jpeg"},
	{Offset: 0, Magic: []byte("\x89PNG\r\n\x1a\n"), Description: "PNG image data", Category: CategoryData, MIME: "image/png"},
	{Offset: 0, Magic: []byte("GIF87a"), Description: "GIF image data", Category: CategoryData, MIME: "image/gif"},
	{Offset: 0, Magic: []byte("GIF89a"), Description: "GIF image data", Category: CategoryData, MIME: "image/gif"},
	{Offset: 0, Magic: []byte("BM"), Description: "BMP image data", Category: CategoryData, MIME: "image/bmp"},
	{Offset: 0, Magic: []byte("RIFF"), Description: "RIFF data", Category: CategoryData}, // WAV, AVI, WebP container
	{Offset: 8, Magic: []byte("WEBP"), Description: "WebP image data", Category: CategoryData, MIME: "image/webp"},

	// Audio/Video
	{Offset: 0, Magic: []byte("ID3"), Description: "MP3 audio data", Category: CategoryData, MIME: "audio/mpeg"},
	{Offset: 0, Magic: []byte{0xFF, 0xFB}, Description: "MP3 audio data", Category: CategoryData, MIME: "audio/mpeg"},
	{Offset: 0, Magic: []byte{0xFF, 0xF3}, Description: "MP3 audio data", Category: CategoryData, MIME: "audio/mpeg"},
	{Offset: 0, Magic: []byte{0xFF, 0xF2}, Description: "MP3 audio data", Category: CategoryData, MIME: "audio/mpeg"},
	{Offset: 0, Magic: []byte("OggS"), Description: "Ogg data", Category: CategoryData, MIME: "application/ogg"},
	{Offset: 4, Magic: []byte("ftyp"), Description: "MP4 video data", Category: CategoryData, MIME: "video/mp4"},

	// Documents
	{Offset: 0, Magic: []byte("%PDF"), Description: "PDF document data", Category: CategoryData, MIME: "application/pdf"},
	{Offset: 0, Magic: []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, Description: "Microsoft Office document data", Category: CategoryData, MIME: "application/msword"},
	{Offset: 0, Magic: []byte("PK\x03\x04\x14\x00\x06\x00"), Description: "Microsoft Office Open XML document data", Category: CategoryData, MIME: "application/vnd.openxmlformats"},

	// Core files; the generic ELF entry above wins first and is refined
	// to this classification when the header type field says ET_CORE.
	{Offset: 0, Magic: elfMagic, Description: "ELF core file data", Category: CategoryData, MIME: "application/x-coredump"},

	// Other binary formats
	{Offset: 0, Magic: []byte{0x00, 0x00, 0x01, 0x00}, Description: "Windows icon image data", Category: CategoryData, MIME: "image/x-icon"},
	{Offset: 0, Magic: []byte{0x00, 0x00, 0x02, 0x00}, Description: "Windows cursor image data", Category: CategoryData, MIME: "image/x-icon"},
	{Offset: 0, Magic: []byte{0x42, 0x5A, 0x68}, Description: "bzip2 compressed data", Category: CategoryData, MIME: "application/x-bzip2"},
}

// textIndicators are literal prefixes that mark a file as text even though
// no binary signature matched. Shebang prefixes trigger script sub-detection,
// the rest trigger markup sub-detection. Each indicator also matches its
// lowercased form.
var textIndicators = [][]byte{
	[]byte("#!/bin/sh"),
	[]byte("#!/bin/bash"),
	[]byte("#!/usr/bin/env"),
	[]byte("<?xml"),
	[]byte("<!DOCTYPE"),
	[]byte("<html"),
	[]byte("<HTML"),
}

// MagicClassifier matches the leading bytes of a file against the ordered
// signature table, then against text indicators, then falls back to a
// binary/text content heuristic.
type MagicClassifier struct {
	headerBytes int
}

// NewMagicClassifier creates a magic classifier reading headerBytes from
// the start of each file. Values <= 0 fall back to DefaultMagicHeaderBytes.
func NewMagicClassifier(headerBytes int) *MagicClassifier {
	if headerBytes <= 0 {
		headerBytes = DefaultMagicHeaderBytes
	}
	return &MagicClassifier{headerBytes: headerBytes}
}

// Name implements Classifier.
func (c *MagicClassifier) Name() string { return "magic" }

// Classify reads the file header and matches it against the signature
// table, the text indicators, and finally the binary heuristic.
func (c *MagicClassifier) Classify(path string) TestResult {
	header, err := c.readHeader(path)
	if err != nil {
		return Failed(err)
	}

	if len(header) == 0 {
		// Empty files are handled by the filesystem classifier.
		return Inconclusive()
	}

	for _, sig := range magicSignatures {
		if len(header) <= sig.Offset+len(sig.Magic) {
			continue
		}
		if !bytes.Equal(header[sig.Offset:sig.Offset+len(sig.Magic)], sig.Magic) {
			continue
		}
		if bytes.Equal(sig.Magic, elfMagic) && len(header) >= 18 {
			if binary.LittleEndian.Uint16(header[16:18]) == elfTypeCore {
				return Matched(NewFileTypeMIME(CategoryData, "ELF core file data", "application/x-coredump"))
			}
		}
		return Matched(NewFileTypeMIME(sig.Category, sig.Description, sig.MIME))
	}

	for _, indicator := range textIndicators {
		if !bytes.HasPrefix(header, indicator) && !bytes.HasPrefix(header, bytes.ToLower(indicator)) {
			continue
		}
		if bytes.HasPrefix(indicator, []byte("#!")) {
			script := detectScriptType(header)
			return Matched(NewFileTypeMIME(CategoryText, script+" script text", "text/plain"))
		}
		markup := detectMarkupType(header)
		return Matched(NewFileTypeMIME(CategoryText, markup+" text", "text/plain"))
	}

	if isBinaryContent(header) {
		return Matched(NewFileType(CategoryData, "data"))
	}

	return Inconclusive()
}

func (c *MagicClassifier) readHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapOSError(c.Name(), path, err)
	}
	defer f.Close()

	buf := make([]byte, c.headerBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, wrapOSError(c.Name(), path, err)
	}
	return buf[:n], nil
}

// detectScriptType identifies the interpreter named in the shebang line.
func detectScriptType(header []byte) string {
	firstLine := string(header)
	if idx := strings.IndexByte(firstLine, '\n'); idx >= 0 {
		firstLine = firstLine[:idx]
	}
	firstLine = strings.ToLower(firstLine)

	switch {
	case strings.Contains(firstLine, "python"):
		return "Python"
	case strings.Contains(firstLine, "bash"):
		return "Bash"
	case strings.Contains(firstLine, "sh"):
		return "shell"
	case strings.Contains(firstLine, "perl"):
		return "Perl"
	case strings.Contains(firstLine, "ruby"):
		return "Ruby"
	case strings.Contains(firstLine, "node"), strings.Contains(firstLine, "javascript"):
		return "Node.js"
	default:
		return "script"
	}
}

// detectMarkupType distinguishes XML, HTML, and generic markup.
func detectMarkupType(header []byte) string {
	s := strings.ToLower(string(header))
	switch {
	case strings.Contains(s, "<?xml"):
		return "XML"
	case strings.Contains(s, "<!doctype html"), strings.Contains(s, "<html"):
		return "HTML"
	default:
		return "markup"
	}
}

// isBinaryContent reports whether data looks binary: any NUL byte, or more
// than 30% of bytes outside printable ASCII plus TAB/LF/CR. Mirrors the
// heuristics of the Unix file command.
func isBinaryContent(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	if bytes.IndexByte(data, 0x00) >= 0 {
		return true
	}

	control := 0
	for _, b := range data {
		switch {
		case b >= 32 && b <= 126:
		case b == '\t' || b == '\n' || b == '\r':
		default:
			control++
		}
	}

	return float64(control)/float64(len(data)) > 0.30
}
