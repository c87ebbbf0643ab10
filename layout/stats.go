package layout

import (
	"sort"

	"github.com/tsawler/pdfoutline/model"
)

// Stats is an immutable snapshot of the document-wide font statistics.
// It is computed once from the complete population and passed by value
// to every decision that depends on it.
type Stats struct {
	// AvgFontSize is the mean font size of all collected spans.
	AvgFontSize float64

	// HeadingSizes holds the font size of every accepted heading, in
	// document order.
	HeadingSizes []float64
}

// NewStats computes the average font size over spans. An empty input
// yields zero.
func NewStats(spans []model.Span) Stats {
	if len(spans) == 0 {
		return Stats{}
	}
	var sum float64
	for _, s := range spans {
		sum += s.FontSize
	}
	return Stats{AvgFontSize: sum / float64(len(spans))}
}

// WithHeadings returns a copy of s carrying the font sizes of headings.
func (s Stats) WithHeadings(headings []model.Heading) Stats {
	sizes := make([]float64, len(headings))
	for i, h := range headings {
		sizes[i] = h.FontSize
	}
	s.HeadingSizes = sizes
	return s
}

// Level assigns the level of h against the heading size distribution.
func (s Stats) Level(h model.Heading) model.Level {
	return AssignLevel(h.Text, h.FontSize, h.Bold, s.HeadingSizes)
}

// DistinctSizes returns the distinct heading font sizes, largest first.
func (s Stats) DistinctSizes() []float64 {
	return distinctDescending(s.HeadingSizes)
}

func distinctDescending(sizes []float64) []float64 {
	seen := make(map[float64]struct{}, len(sizes))
	out := make([]float64, 0, len(sizes))
	for _, v := range sizes {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}
