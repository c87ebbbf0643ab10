package layout

import (
	"math"

	"github.com/tsawler/pdfoutline/model"
)

// DefaultLineTolerance is the font size difference below which two
// spans on the same page belong to one line.
const DefaultLineTolerance = 1.0

// LineMerger joins consecutive spans into lines.
type LineMerger struct {
	// Tolerance is the exclusive upper bound on the font size difference
	// between a span and the line it extends.
	// Default: 1.0
	Tolerance float64
}

// NewLineMerger creates a merger with the default tolerance.
func NewLineMerger() *LineMerger {
	return &LineMerger{Tolerance: DefaultLineTolerance}
}

// Merge walks spans once, in order, keeping a single open line. A span
// extends the open line when it is on the same page and its font size is
// within the tolerance of the line's; otherwise the open line is emitted
// and the span starts a new one. The last line is emitted only when its
// text is not empty.
func (m *LineMerger) Merge(spans []model.Span) []model.Line {
	var lines []model.Line
	var cur model.Line
	open := false

	for _, s := range spans {
		if open && s.Page == cur.Page && math.Abs(s.FontSize-cur.FontSize) < m.Tolerance {
			cur = cur.Extend(s)
			continue
		}
		if open {
			lines = append(lines, cur)
		}
		cur = model.LineFromSpan(s)
		open = true
	}

	if open && cur.Text != "" {
		lines = append(lines, cur)
	}
	return lines
}

// MergeLines merges spans with the default tolerance.
func MergeLines(spans []model.Span) []model.Line {
	return NewLineMerger().Merge(spans)
}
