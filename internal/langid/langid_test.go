package langid

import (
	"testing"

	"github.com/pemistahl/lingua-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Parsing
// ============================================================================

func TestParseLanguages(t *testing.T) {
	languages, err := ParseLanguages([]string{"English", "ja", " HINDI ", "en"})
	require.NoError(t, err)
	assert.Equal(t, []lingua.Language{lingua.English, lingua.Japanese, lingua.Hindi}, languages)
}

func TestParseLanguagesUnknown(t *testing.T) {
	_, err := ParseLanguages([]string{"english", "klingon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "klingon")
}

func TestNewRequiresTwoLanguages(t *testing.T) {
	_, err := New([]string{"english", "English"})
	assert.ErrorIs(t, err, ErrTooFewLanguages)
}

// ============================================================================
// Detection
// ============================================================================

func TestDetect(t *testing.T) {
	d, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"English", "Hindi", "Japanese"}, d.Languages())

	tests := []struct {
		name  string
		texts []string
		code  string
	}{
		{
			name:  "english",
			texts: []string{"Chapter 1: Introduction", "Background and motivation", "Related work"},
			code:  "en",
		},
		{
			name:  "japanese",
			texts: []string{"第1章 はじめに", "研究の背景について", "まとめと今後の課題"},
			code:  "ja",
		},
		{
			name:  "hindi",
			texts: []string{"अध्याय 1 परिचय", "पृष्ठभूमि और उद्देश्य", "निष्कर्ष"},
			code:  "hi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			det := d.Detect(tt.texts)
			require.True(t, det.Known())
			assert.Equal(t, tt.code, det.Code)
			assert.Greater(t, det.Confidence, 0.0)
			assert.LessOrEqual(t, det.Confidence, 1.0)
		})
	}
}

func TestDetectEmpty(t *testing.T) {
	d, err := New([]string{"english", "german"})
	require.NoError(t, err)

	det := d.Detect([]string{"", "  "})
	assert.False(t, det.Known())
	assert.Equal(t, Detection{}, det)
}
