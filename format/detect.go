// Package format detects whether an input file is a PDF document.
package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
)

// pdfMagic starts every PDF header.
var pdfMagic = []byte("%PDF-")

// sniffLength is how far into a file the header is searched for. Some
// producers write junk before the header.
const sniffLength = 1024

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	default:
		return ""
	}
}

// Detect determines the format from the filename extension, ignoring case.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	default:
		return Unknown
	}
}

// DetectFromMagic checks for the PDF header within the first 1024 bytes of
// data.
func DetectFromMagic(data []byte) Format {
	if len(data) > sniffLength {
		data = data[:sniffLength]
	}
	if bytes.Contains(data, pdfMagic) {
		return PDF
	}
	return Unknown
}

// DetectFromReader reads the start of r and checks it for the PDF header.
func DetectFromReader(r io.Reader) (Format, error) {
	buf := make([]byte, sniffLength)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, fmt.Errorf("failed to read header: %w", err)
	}
	return DetectFromMagic(buf[:n]), nil
}

// DetectFile checks the header of the file at path.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return DetectFromReader(f)
}
