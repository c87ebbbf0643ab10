package model

// Span is one visible run of text sharing a font size and weight.
type Span struct {
	Text     string
	FontSize float64
	Bold     bool
	Page     int // 1-indexed
}

// Line is one or more spans merged because they sit on the same page with
// near-equal font sizes. FontSize is the size of the first constituent span
// and Bold is true if any constituent was bold.
type Line struct {
	Text     string
	FontSize float64
	Bold     bool
	Page     int // 1-indexed
}

// Extend appends a span to the line, joining the text with a single space.
func (l Line) Extend(s Span) Line {
	l.Text += " " + s.Text
	l.Bold = l.Bold || s.Bold
	return l
}

// LineFromSpan starts a new line from a single span.
func LineFromSpan(s Span) Line {
	return Line{
		Text:     s.Text,
		FontSize: s.FontSize,
		Bold:     s.Bold,
		Page:     s.Page,
	}
}

// Heading is a normalized line accepted as a heading candidate.
type Heading struct {
	Text     string
	FontSize float64
	Bold     bool
	Page     int // 1-indexed
}
