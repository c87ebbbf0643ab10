package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/pdfoutline/model"
)

func sampleResult() model.Result {
	return model.Result{
		Title: "Report",
		Outline: []model.Entry{
			{Text: "1. Overview", Level: model.H1, Page: 1},
			{Text: "1.1 Details", Level: model.H2, Page: 2},
			{Text: "Deep *star*", Level: model.H3, Page: 3},
		},
	}
}

// ============================================================================
// Format
// ============================================================================

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"json", JSON},
		{"JSON", JSON},
		{" yaml ", YAML},
		{"yml", YAML},
		{"markdown", Markdown},
		{"md", Markdown},
		{"html", HTML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("docx")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestFormatNames(t *testing.T) {
	tests := []struct {
		f    Format
		name string
		ext  string
	}{
		{JSON, "json", ".json"},
		{YAML, "yaml", ".yaml"},
		{Markdown, "markdown", ".md"},
		{HTML, "html", ".html"},
		{Format(99), "unknown", ".txt"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.f.String())
		assert.Equal(t, tt.ext, tt.f.FileExtension())
	}
}

// ============================================================================
// JSON
// ============================================================================

func TestExportJSON(t *testing.T) {
	res := model.Result{
		Title:   "Rapport <Q&A>",
		Outline: []model.Entry{{Text: "概要", Level: model.H1, Page: 1}},
	}

	got, err := NewExporter(JSON).ExportToString(res)
	require.NoError(t, err)

	want := `{
  "title": "Rapport <Q&A>",
  "outline": [
    {
      "text": "概要",
      "level": "H1",
      "page": 1
    }
  ]
}
`
	assert.Equal(t, want, got)
}

func TestExportJSONEmptyOutline(t *testing.T) {
	got, err := NewExporter(JSON).ExportToString(model.Result{Title: model.UntitledTitle})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"title\": \"Untitled Document\",\n  \"outline\": []\n}\n", got)
}

func TestExportJSONNormalizesNFC(t *testing.T) {
	res := model.Result{
		Title:   "Caf\u0065\u0301",
		Outline: []model.Entry{{Text: "Re\u0301sume\u0301", Level: model.H2, Page: 4}},
	}

	got, err := NewExporter(JSON).ExportToString(res)
	require.NoError(t, err)
	assert.Contains(t, got, "Caf\u00e9")
	assert.Contains(t, got, "R\u00e9sum\u00e9")
	assert.NotContains(t, got, "\u0301")
	assert.Equal(t, "Caf\u0065\u0301", res.Title, "input is not modified")
}

// ============================================================================
// YAML / Markdown / HTML
// ============================================================================

func TestExportYAML(t *testing.T) {
	got, err := NewExporter(YAML).ExportToString(sampleResult())
	require.NoError(t, err)
	assert.Contains(t, got, "level: H1")

	var decoded struct {
		Title   string `yaml:"title"`
		Outline []struct {
			Text  string `yaml:"text"`
			Level string `yaml:"level"`
			Page  int    `yaml:"page"`
		} `yaml:"outline"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "Report", decoded.Title)
	require.Len(t, decoded.Outline, 3)
	assert.Equal(t, "H3", decoded.Outline[2].Level)
	assert.Equal(t, 3, decoded.Outline[2].Page)
}

func TestExportMarkdown(t *testing.T) {
	got, err := NewExporter(Markdown).ExportToString(sampleResult())
	require.NoError(t, err)

	want := "# Report\n\n" +
		"- 1\\. Overview (p. 1)\n" +
		"  - 1.1 Details (p. 2)\n" +
		"    - Deep \\*star\\* (p. 3)\n"
	assert.Equal(t, want, got)
}

func TestExportMarkdownNoOutline(t *testing.T) {
	got, err := NewExporter(Markdown).ExportToString(model.Result{Title: "Only #1"})
	require.NoError(t, err)
	assert.Equal(t, "# Only \\#1\n", got)
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `1\. Intro`, escapeMarkdown("1. Intro"))
	assert.Equal(t, `2\) Scope`, escapeMarkdown("2) Scope"))
	assert.Equal(t, `\- dash`, escapeMarkdown("- dash"))
	assert.Equal(t, `1.2 Keep`, escapeMarkdown("1.2 Keep"))
	assert.Equal(t, `a\_b \[c\]`, escapeMarkdown("a_b [c]"))
}

func TestExportHTML(t *testing.T) {
	res := sampleResult()
	res.Outline = append(res.Outline, model.Entry{Text: "<b>Bold</b> claims", Level: model.H1, Page: 5})

	got, err := NewExporter(HTML).ExportToString(res)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
	assert.Contains(t, got, `<meta charset="utf-8">`)
	assert.Contains(t, got, "<h1>Report</h1>")
	assert.Contains(t, got, "<li>1. Overview (p. 1)")
	assert.Contains(t, got, "Deep *star* (p. 3)")
	assert.Contains(t, got, "&lt;b&gt;Bold&lt;/b&gt; claims")
	assert.NotContains(t, got, "<b>Bold</b>")
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := NewExporter(Format(42)).ExportToString(sampleResult())
	assert.Error(t, err)
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, NewExporter(JSON).ExportToFile(sampleResult(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Report"`)

	err = NewExporter(JSON).ExportToFile(sampleResult(), filepath.Join(t.TempDir(), "missing", "out.json"))
	assert.Error(t, err)
}

func TestCanonical(t *testing.T) {
	res := Canonical(model.Result{Title: "x"})
	assert.NotNil(t, res.Outline)
	assert.Empty(t, res.Outline)
}
