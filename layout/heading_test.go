package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Rejection rules
// ============================================================================

func TestIsHeadingRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
		size float64
		bold bool
	}{
		{"too short latin", "Ab", 30, true},
		{"single wide char", "章", 30, true},
		{"too long", strings.Repeat("a", 201), 30, true},
		{"noise run", "Results ## table", 30, true},
		{"path-like", "src//main", 30, true},
		{"attribution", "Written by Jane Doe", 30, true},
		{"attribution mid-text", "Report Prepared By Staff", 30, true},
		{"japanese attribution", "著者 山田太郎", 30, true},
		{"hindi attribution", "राम द्वारा लिखित", 30, true},
		{"long sentence", strings.Repeat("word ", 22) + "end?", 30, true},
		{"empty", "", 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, IsHeading(tt.text, tt.size, tt.bold, 10))
		})
	}
}

func TestIsHeadingLongNumberedSentence(t *testing.T) {
	long := "1.2 " + strings.Repeat("word ", 22) + "end?"
	assert.True(t, IsHeading(long, 10, false, 10), "numbering exempts long sentences")
}

// ============================================================================
// Acceptance rules
// ============================================================================

func TestIsHeadingAccepts(t *testing.T) {
	tests := []struct {
		name string
		text string
		size float64
		bold bool
		avg  float64
		want bool
	}{
		{"numbered", "2 results and more", 8, false, 10, true},
		{"numbered with dot", "3. method", 8, false, 10, true},
		{"multi-level numbering", "4.1.2 details here", 8, false, 10, true},
		{"number without space", "2024 annual figures", 8, false, 10, true},
		{"chapter marker", "chapter 7 begins", 8, false, 10, true},
		{"part marker", "PART 2 of the story", 8, false, 10, true},
		{"japanese marker", "章1 はじめに", 8, false, 10, true},
		{"hindi marker", "भाग 2", 8, false, 10, true},
		{"large font", "this is plain text", 12.1, false, 10, true},
		{"not large enough", "this is plain text", 12, false, 10, false},
		{"bold at average", "this is plain text", 10, true, 10, true},
		{"bold below average", "this is plain text", 9.9, true, 10, false},
		{"title case", "Results And Discussion", 9, false, 10, true},
		{"half capitalized is not enough", "Results and Discussion here", 9, false, 10, false},
		{"too many words", "Alpha Beta Gamma Delta Epsilon Zeta Eta", 9, false, 10, false},
		{"caps with a lowercase word", "SUMMARY OF THE KEY FINDINGS AND RESULTS a", 9, false, 10, false},
		{"all caps", "THE SUMMARY OF ALL THE KEY FINDINGS", 9, false, 10, true},
		{"all caps too long", "THE SUMMARY OF ALL THE KEY FINDINGS FROM EVERY REGION", 9, false, 10, false},
		{"cjk at average", "はじめに", 10, false, 10, true},
		{"cjk below average", "はじめに", 9, false, 10, false},
		{"devanagari at average", "परिचय और पृष्ठभूमि", 10, false, 10, true},
		{"lowercase body", "the quick brown fox", 10, false, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHeading(tt.text, tt.size, tt.bold, tt.avg))
		})
	}
}

func TestIsHeadingScriptWidth(t *testing.T) {
	cjk := strings.Repeat("漢", 150)
	latin := strings.Repeat("a", 150)

	assert.False(t, IsHeading(cjk, 30, true, 10), "effective length 300 is too long")
	assert.True(t, IsHeading(latin, 30, true, 10), "effective length 150 is accepted")
}

func TestIsHeadingFullwidthLatinUsesNonLatinRule(t *testing.T) {
	// Lowercase fullwidth words fail the capitalization rule but pass the
	// word-count rule for non-Latin lines.
	line := "\uFF44\uFF41\uFF54\uFF41 \uFF54\uFF41\uFF42\uFF4C\uFF45"

	assert.True(t, IsHeading(line, 10, false, 10))
	assert.False(t, IsHeading(line, 9, false, 10))
	assert.False(t, IsHeading("data table", 10, false, 10))
}

func TestIsHeadingDeterministic(t *testing.T) {
	for i := 0; i < 5; i++ {
		assert.True(t, IsHeading("Chapter 1: Introduction", 18, false, 10))
	}
}

func TestHeadingClassifierConfig(t *testing.T) {
	cfg := DefaultHeadingConfig()
	cfg.SizeRatio = 2.0
	c := NewHeadingClassifierWithConfig(cfg)

	assert.Equal(t, 2.0, c.Config().SizeRatio)
	assert.False(t, c.IsHeading("quiet body line", 15, false, 10))
	assert.True(t, c.IsHeading("quiet body line", 21, false, 10))
}

func TestDefaultHeadingConfig(t *testing.T) {
	cfg := DefaultHeadingConfig()
	assert.Equal(t, 3, cfg.MinLength)
	assert.Equal(t, 200, cfg.MaxLength)
	assert.Equal(t, 100, cfg.SentenceLength)
	assert.Equal(t, 1.2, cfg.SizeRatio)
	assert.Equal(t, 6, cfg.MaxTitleCaseWords)
	assert.Equal(t, 0.5, cfg.TitleCaseShare)
	assert.Equal(t, 50, cfg.MaxUpperLength)
	assert.Equal(t, 10, cfg.MaxOtherWords)
}
