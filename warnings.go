package pdfoutline

import (
	"fmt"
	"strings"
)

// WarningCode classifies a Warning.
type WarningCode int

const (
	// WarnPageLimit means pages beyond the configured cap were not read.
	WarnPageLimit WarningCode = iota + 1

	// WarnNoText means no page carried extractable text, which usually
	// indicates a scanned document.
	WarnNoText

	// WarnShortMetadataTitle means the metadata title was present but too
	// short to be used.
	WarnShortMetadataTitle
)

// String returns a short name for the code
func (c WarningCode) String() string {
	switch c {
	case WarnPageLimit:
		return "page-limit"
	case WarnNoText:
		return "no-text"
	case WarnShortMetadataTitle:
		return "short-metadata-title"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal issue found while extracting an outline.
type Warning struct {
	Code    WarningCode
	Message string
}

// String returns the warning as "code: message".
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings joins warnings into a single line for logging.
//
// Example:
//
//	out := pdfoutline.Open("scan.pdf").Outline()
//	if len(out.Warnings) > 0 {
//	    log.Println("Warnings:", pdfoutline.FormatWarnings(out.Warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// HasWarning reports whether warnings contains one with the given code.
func HasWarning(warnings []Warning, code WarningCode) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
