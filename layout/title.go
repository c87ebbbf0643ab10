package layout

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/text"
)

// TitleSource identifies the rule that produced a title.
type TitleSource int

const (
	TitleFromPlaceholder TitleSource = iota
	TitleFromMetadata
	TitleFromHeading
	TitleFromLargestSpan
	TitleFromVertical
)

// String returns a short name for the source
func (s TitleSource) String() string {
	switch s {
	case TitleFromMetadata:
		return "metadata"
	case TitleFromHeading:
		return "heading"
	case TitleFromLargestSpan:
		return "largest-span"
	case TitleFromVertical:
		return "vertical"
	default:
		return "placeholder"
	}
}

// TitleConfig holds the thresholds of the title resolver
type TitleConfig struct {
	// MinMetadataLength is the exclusive lower bound on the trimmed
	// character length of a usable metadata title.
	// Default: 3
	MinMetadataLength int

	// MaxHeadingLength is the exclusive upper bound on the effective
	// length of a heading used as title.
	// Default: 150
	MaxHeadingLength int

	// MinSpanLength is the exclusive lower bound on the effective length
	// of a first-page span used as title.
	// Default: 3
	MinSpanLength int

	// Vertical enables joining short first-page fragments into a title,
	// as laid out in some formal CJK documents.
	// Default: true
	Vertical bool

	// VerticalWindow is how many leading first-page fragments are
	// inspected for a vertical title.
	// Default: 5
	VerticalWindow int

	// VerticalFragments is how many short fragments are joined.
	// Default: 3
	VerticalFragments int

	// VerticalMaxLength is the exclusive upper bound on the character
	// length of a vertical title fragment. Fragments must be longer than
	// one character.
	// Default: 10
	VerticalMaxLength int

	// Placeholder is returned when no rule yields a title.
	// Default: "Untitled Document"
	Placeholder string
}

// DefaultTitleConfig returns the default resolver thresholds
func DefaultTitleConfig() TitleConfig {
	return TitleConfig{
		MinMetadataLength: 3,
		MaxHeadingLength:  150,
		MinSpanLength:     3,
		Vertical:          true,
		VerticalWindow:    5,
		VerticalFragments: 3,
		VerticalMaxLength: 10,
		Placeholder:       model.UntitledTitle,
	}
}

// TitleResolver picks a document title from an ordered list of sources.
type TitleResolver struct {
	config TitleConfig
}

// NewTitleResolver creates a resolver with default configuration
func NewTitleResolver() *TitleResolver {
	return &TitleResolver{config: DefaultTitleConfig()}
}

// NewTitleResolverWithConfig creates a resolver with custom configuration
func NewTitleResolverWithConfig(config TitleConfig) *TitleResolver {
	return &TitleResolver{config: config}
}

// ResolveTitle resolves a title with the default configuration.
func ResolveTitle(metadataTitle string, headings []model.Heading, firstPageSpans []model.Span) string {
	title, _ := NewTitleResolver().Resolve(metadataTitle, headings, firstPageSpans)
	return title
}

// MetadataTitleUsable reports whether a metadata title is long enough to
// be used verbatim.
func (r *TitleResolver) MetadataTitleUsable(metadataTitle string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(metadataTitle)) > r.config.MinMetadataLength
}

// Resolve returns the title and the rule that produced it. The first
// source that yields a title wins:
//
//  1. the trimmed metadata title
//  2. the earliest, largest heading, unless it is long or numbered
//  3. the largest first-page span
//  4. short first-page fragments joined as a vertical title
//  5. the placeholder
func (r *TitleResolver) Resolve(metadataTitle string, headings []model.Heading, firstPageSpans []model.Span) (string, TitleSource) {
	if r.MetadataTitleUsable(metadataTitle) {
		return strings.TrimSpace(metadataTitle), TitleFromMetadata
	}

	if len(headings) > 0 {
		sorted := append([]model.Heading(nil), headings...)
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Page != sorted[j].Page {
				return sorted[i].Page < sorted[j].Page
			}
			return sorted[i].FontSize > sorted[j].FontSize
		})
		first := sorted[0].Text
		if text.EffectiveLength(first) < r.config.MaxHeadingLength && !depth1Prefix.MatchString(first) {
			return first, TitleFromHeading
		}
	}

	if title := r.largestSpan(firstPageSpans); title != "" {
		return title, TitleFromLargestSpan
	}

	if r.config.Vertical {
		if title := r.verticalTitle(firstPageSpans); title != "" {
			return title, TitleFromVertical
		}
	}

	return r.config.Placeholder, TitleFromPlaceholder
}

// largestSpan returns the normalized text of the first span with the
// largest font size among spans long enough to be a title.
func (r *TitleResolver) largestSpan(spans []model.Span) string {
	best := ""
	var bestSize float64
	for _, s := range spans {
		t := text.Normalize(s.Text)
		if s.FontSize > bestSize && text.EffectiveLength(t) > r.config.MinSpanLength {
			best = t
			bestSize = s.FontSize
		}
	}
	return best
}

// verticalTitle joins short leading fragments of the first page.
func (r *TitleResolver) verticalTitle(spans []model.Span) string {
	var fragments []string
	for _, s := range spans {
		if t := text.Normalize(s.Text); t != "" {
			fragments = append(fragments, t)
		}
	}
	if len(fragments) < r.config.VerticalFragments {
		return ""
	}

	var short []string
	for _, f := range fragments[:min(len(fragments), r.config.VerticalWindow)] {
		if n := utf8.RuneCountInString(f); n > 1 && n < r.config.VerticalMaxLength {
			short = append(short, f)
		}
	}
	if len(short) < r.config.VerticalFragments {
		return ""
	}
	return strings.Join(short[:r.config.VerticalFragments], " ")
}
