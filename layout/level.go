package layout

import (
	"sort"

	"github.com/tsawler/pdfoutline/model"
)

const (
	// nearLargest is the fraction of a reference size a heading must reach
	// to share its bucket.
	nearLargest = 0.9

	// quantileSizes is the number of distinct heading sizes needed for
	// three-bucket quantiles.
	quantileSizes = 3
)

// AssignLevel returns the level of an accepted heading. headingFontSizes
// must hold the font sizes of every accepted heading in the document.
//
// Checks run in a fixed order and the first match wins: structural
// section names and chapter markers are H1; a numbering prefix of three,
// two or one levels gives H3, H2 or H1, in that order; circled numerals
// are H2. Everything else is bucketed by font size against the largest
// and the middle heading size.
func AssignLevel(line string, fontSize float64, isBold bool, headingFontSizes []float64) model.Level {
	if len(headingFontSizes) == 0 {
		switch {
		case isBold && fontSize >= 14:
			return model.H1
		case isBold || fontSize >= 12:
			return model.H2
		default:
			return model.H3
		}
	}

	switch {
	case IsStructuralName(line):
		return model.H1
	case chapterMarker.MatchString(line):
		return model.H1
	case depth3Prefix.MatchString(line):
		return model.H3
	case depth2Prefix.MatchString(line):
		return model.H2
	case depth1Prefix.MatchString(line):
		return model.H1
	case circledPrefix.MatchString(line):
		return model.H2
	}

	sorted := append([]float64(nil), headingFontSizes...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	largest := sorted[0]

	if len(distinctDescending(sorted)) >= quantileSizes {
		switch {
		case fontSize >= largest*nearLargest:
			return model.H1
		case fontSize >= sorted[len(sorted)/2]*nearLargest:
			return model.H2
		default:
			return model.H3
		}
	}

	switch {
	case fontSize >= largest*nearLargest:
		return model.H1
	case isBold:
		return model.H2
	default:
		return model.H3
	}
}
