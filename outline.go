// Package pdfoutline infers the outline of a PDF document (a title plus
// H1, H2 and H3 headings with page numbers) from the size and weight of
// its text, without reading any embedded bookmarks.
//
// Basic usage:
//
//	out := pdfoutline.Open("document.pdf").Outline()
//	if out.Err != nil {
//	    // out.Result is {"Error", []}
//	}
//	fmt.Println(out.Result.Title)
//	for _, e := range out.Result.Outline {
//	    fmt.Println(e.Level, e.Page, e.Text)
//	}
//
// With options:
//
//	out := pdfoutline.Open("report.pdf").
//	    MaxPages(50).
//	    Logger(logger).
//	    Outline()
//
// Extraction is fail-soft: a document that cannot be read yields the
// degraded result with Title "Error" and an empty outline, and the cause
// is reported in Outcome.Err instead of being returned to the caller.
package pdfoutline

import (
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/reader"
)

// Open returns an Extractor for the PDF file at filename. The file is
// opened by the terminal operation and closed before it returns.
//
// Example:
//
//	out := pdfoutline.Open("document.pdf").Outline()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument returns an Extractor for an already-opened document.
// The caller is responsible for closing doc.
//
// Example:
//
//	doc := reader.NewMemoryDocument(meta, pages...)
//	out := pdfoutline.FromDocument(doc).Outline()
func FromDocument(doc reader.Document) *Extractor {
	return &Extractor{
		doc:     doc,
		options: defaultOptions(),
	}
}

// Extract returns the outline of the PDF file at filename with default
// options. Failures yield the degraded error result.
func Extract(filename string) model.Result {
	return Open(filename).Outline().Result
}
