package reader

import (
	"fmt"

	"github.com/tsawler/pdfoutline/model"
)

var _ Document = (*MemoryDocument)(nil)

// MemoryDocument is a Document whose pages are held in memory.
type MemoryDocument struct {
	meta   model.Metadata
	pages  []Page
	closed bool
}

// NewMemoryDocument returns a document serving the given pages. Page
// indexes are reassigned from their position.
func NewMemoryDocument(meta model.Metadata, pages ...Page) *MemoryDocument {
	cp := make([]Page, len(pages))
	for i, p := range pages {
		p.Index = i
		cp[i] = p
	}
	return &MemoryDocument{meta: meta, pages: cp}
}

// PageOf builds a single-block page with one line per span.
func PageOf(spans ...RawSpan) Page {
	lines := make([]TextLine, len(spans))
	for i, s := range spans {
		lines[i] = TextLine{Spans: []RawSpan{s}}
	}
	return Page{Blocks: []Block{{Lines: lines}}}
}

// PageCount returns the number of pages.
func (d *MemoryDocument) PageCount() int {
	return len(d.pages)
}

// Page returns the page at index.
func (d *MemoryDocument) Page(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return Page{}, fmt.Errorf("page %d of %d: %w", index, len(d.pages), ErrPageOutOfRange)
	}
	return d.pages[index], nil
}

// Metadata returns the metadata given at construction.
func (d *MemoryDocument) Metadata() model.Metadata {
	return d.meta
}

// Close marks the document closed.
func (d *MemoryDocument) Close() error {
	d.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (d *MemoryDocument) Closed() bool {
	return d.closed
}
