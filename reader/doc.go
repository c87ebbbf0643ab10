// Package reader is the boundary between the outline pipeline and the
// engine that extracts positioned text from a document.
//
// # Documents
//
// A [Document] exposes pages as blocks of lines of styled spans, plus the
// optional metadata dictionary:
//
//	doc, err := reader.Open("report.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
// [Open] is backed by github.com/ledongthuc/pdf. Glyphs that share font,
// size and baseline become one [RawSpan]; spans on one baseline become a
// [TextLine]; a large vertical gap starts a new [Block]. Bold is taken
// from the font descriptor (ForceBold flag or a FontWeight of at least
// 600) and reported as [FlagBold].
//
// [NewMemoryDocument] serves pages that are already held in memory, which
// is how callers with pre-extracted spans and the tests drive the pipeline.
//
// # Span Collection
//
// [CollectSpans] flattens the first pages of a document into
// [model.Span] values in page-then-detection order, dropping blank runs
// and deciding bold from the flags or the font name.
package reader
