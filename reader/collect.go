package reader

import (
	"fmt"
	"strings"

	"github.com/tsawler/pdfoutline/model"
)

// boldFontMarkers are font name fragments that indicate a bold face.
var boldFontMarkers = []string{"bold", "heavy", "black", "strong"}

// Collection is the result of CollectSpans.
type Collection struct {
	// Spans holds every visible span in page-then-detection order.
	Spans []model.Span

	// FirstPage holds the spans of page 1.
	FirstPage []model.Span

	// PageCount is the number of pages read.
	PageCount int

	// TotalPages is the number of pages in the document.
	TotalPages int

	// EmptyPages counts pages read without any text run.
	EmptyPages int

	// Scanned is set when pages were read but none carried text, which
	// usually means the document is a scan.
	Scanned bool
}

// Truncated reports whether the page cap stopped collection early.
func (c Collection) Truncated() bool {
	return c.PageCount < c.TotalPages
}

// CollectSpans reads up to maxPages pages of doc (all pages when maxPages
// is not positive) and returns one trimmed span per visible run. A page that
// cannot be read aborts the collection.
func CollectSpans(doc Document, maxPages int) (Collection, error) {
	total := doc.PageCount()
	n := total
	if maxPages > 0 && maxPages < n {
		n = maxPages
	}

	c := Collection{TotalPages: total}
	for i := 0; i < n; i++ {
		page, err := doc.Page(i)
		if err != nil {
			return Collection{}, fmt.Errorf("failed to collect page %d: %w", i+1, err)
		}
		c.PageCount++
		if page.SpanCount() == 0 {
			c.EmptyPages++
			continue
		}

		for _, block := range page.Blocks {
			for _, line := range block.Lines {
				for _, raw := range line.Spans {
					trimmed := strings.TrimSpace(raw.Text)
					if trimmed == "" {
						continue
					}
					span := model.Span{
						Text:     trimmed,
						FontSize: raw.Size,
						Bold:     IsBoldSpan(raw),
						Page:     i + 1,
					}
					c.Spans = append(c.Spans, span)
					if span.Page == 1 {
						c.FirstPage = append(c.FirstPage, span)
					}
				}
			}
		}
	}

	c.Scanned = c.PageCount > 0 && len(c.Spans) == 0
	return c, nil
}

// IsBoldSpan reports whether raw is bold by flag or by font name.
func IsBoldSpan(raw RawSpan) bool {
	if raw.IsBold() {
		return true
	}
	font := strings.ToLower(raw.Font)
	for _, marker := range boldFontMarkers {
		if strings.Contains(font, marker) {
			return true
		}
	}
	return false
}
