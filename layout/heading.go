package layout

import (
	"strings"

	"github.com/tsawler/pdfoutline/text"
)

// HeadingConfig holds the thresholds of the heading classifier
type HeadingConfig struct {
	// MinLength rejects lines whose effective length is below it.
	// Default: 3
	MinLength int

	// MaxLength rejects lines whose effective length is above it.
	// Default: 200
	MaxLength int

	// SentenceLength rejects unnumbered lines ending in sentence
	// punctuation whose effective length is above it.
	// Default: 100
	SentenceLength int

	// SizeRatio accepts lines whose font size exceeds the document
	// average by this factor.
	// Default: 1.2
	SizeRatio float64

	// MaxTitleCaseWords is the word limit for accepting Latin lines by
	// capitalization.
	// Default: 6
	MaxTitleCaseWords int

	// TitleCaseShare is the share of capitalized words a Latin line must
	// exceed.
	// Default: 0.5
	TitleCaseShare float64

	// MaxUpperLength is the exclusive character limit for accepting an
	// all-uppercase Latin line.
	// Default: 50
	MaxUpperLength int

	// MaxOtherWords is the word limit for accepting lines without Latin
	// letters at or above the average size.
	// Default: 10
	MaxOtherWords int
}

// DefaultHeadingConfig returns the default classifier thresholds
func DefaultHeadingConfig() HeadingConfig {
	return HeadingConfig{
		MinLength:         3,
		MaxLength:         200,
		SentenceLength:    100,
		SizeRatio:         1.2,
		MaxTitleCaseWords: 6,
		TitleCaseShare:    0.5,
		MaxUpperLength:    50,
		MaxOtherWords:     10,
	}
}

// HeadingClassifier decides whether a normalized line is a heading. It is
// stateless; the only document-wide input is the average font size.
type HeadingClassifier struct {
	config HeadingConfig
}

// NewHeadingClassifier creates a classifier with default configuration
func NewHeadingClassifier() *HeadingClassifier {
	return &HeadingClassifier{config: DefaultHeadingConfig()}
}

// NewHeadingClassifierWithConfig creates a classifier with custom configuration
func NewHeadingClassifierWithConfig(config HeadingConfig) *HeadingClassifier {
	return &HeadingClassifier{config: config}
}

// Config returns the classifier's configuration.
func (c *HeadingClassifier) Config() HeadingConfig {
	return c.config
}

var defaultClassifier = NewHeadingClassifier()

// IsHeading classifies a normalized line with the default configuration.
func IsHeading(line string, fontSize float64, isBold bool, avgFontSize float64) bool {
	return defaultClassifier.IsHeading(line, fontSize, isBold, avgFontSize)
}

// IsHeading reports whether the normalized line is a heading. Rejection
// rules are checked first; then the first acceptance rule that matches
// wins.
func (c *HeadingClassifier) IsHeading(line string, fontSize float64, isBold bool, avgFontSize float64) bool {
	if c.rejects(line) {
		return false
	}
	return c.accepts(line, fontSize, isBold, avgFontSize)
}

func (c *HeadingClassifier) rejects(line string) bool {
	n := text.EffectiveLength(line)
	switch {
	case n < c.config.MinLength, n > c.config.MaxLength:
		return true
	case noiseRun.MatchString(line):
		return true
	case IsAttribution(line):
		return true
	case sentenceEnd.MatchString(line) && n > c.config.SentenceLength && !IsNumbered(line):
		return true
	}
	return false
}

func (c *HeadingClassifier) accepts(line string, fontSize float64, isBold bool, avgFontSize float64) bool {
	if IsNumbered(line) || HasChapterMarker(line) {
		return true
	}
	if fontSize > avgFontSize*c.config.SizeRatio {
		return true
	}
	if isBold && fontSize >= avgFontSize {
		return true
	}

	words := strings.Fields(line)
	if !text.HasLatin(line) {
		return len(words) <= c.config.MaxOtherWords && fontSize >= avgFontSize
	}

	if len(words) <= c.config.MaxTitleCaseWords {
		capitalized := 0
		for _, w := range words {
			if text.StartsUpper(w) {
				capitalized++
			}
		}
		if float64(capitalized)/float64(max(1, len(words))) > c.config.TitleCaseShare {
			return true
		}
	}

	return text.IsUpper(line) && len([]rune(line)) < c.config.MaxUpperLength
}
