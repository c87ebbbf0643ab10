package reader

import (
	"errors"

	"github.com/tsawler/pdfoutline/model"
)

// FlagBold is the span flag bit set for bold text.
const FlagBold = 2

// ErrPageOutOfRange is returned by Document.Page for an index outside
// [0, PageCount).
var ErrPageOutOfRange = errors.New("page index out of range")

// Document is a source of positioned, styled text.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Page returns the page at the 0-based index.
	Page(index int) (Page, error)

	// Metadata returns the document information dictionary. Missing
	// entries are empty strings.
	Metadata() model.Metadata

	// Close releases the underlying resources.
	Close() error
}

// Page is the text content of one page.
type Page struct {
	Index  int // 0-based
	Blocks []Block
}

// Block is a group of vertically adjacent lines.
type Block struct {
	Lines []TextLine
}

// TextLine is a run of spans sharing a baseline.
type TextLine struct {
	Spans []RawSpan
}

// RawSpan is a run of text in one font at one size.
type RawSpan struct {
	Text  string
	Size  float64
	Flags int
	Font  string
}

// IsBold reports whether the bold flag is set.
func (s RawSpan) IsBold() bool {
	return s.Flags&FlagBold != 0
}

// SpanCount returns the number of spans on the page.
func (p Page) SpanCount() int {
	n := 0
	for _, b := range p.Blocks {
		for _, l := range b.Lines {
			n += len(l.Spans)
		}
	}
	return n
}
