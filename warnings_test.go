package pdfoutline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarningCodeString(t *testing.T) {
	tests := []struct {
		code WarningCode
		want string
	}{
		{WarnPageLimit, "page-limit"},
		{WarnNoText, "no-text"},
		{WarnShortMetadataTitle, "short-metadata-title"},
		{WarningCode(0), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.String())
	}
}

func TestFormatWarnings(t *testing.T) {
	assert.Equal(t, "", FormatWarnings(nil))

	ws := []Warning{
		{Code: WarnPageLimit, Message: "read 100 of 240 pages"},
		{Code: WarnNoText, Message: "no extractable text"},
	}
	assert.Equal(t, "page-limit: read 100 of 240 pages; no-text: no extractable text", FormatWarnings(ws))
	assert.True(t, HasWarning(ws, WarnNoText))
	assert.False(t, HasWarning(ws, WarnShortMetadataTitle))
}
