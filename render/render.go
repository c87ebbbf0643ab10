package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/text"
)

// ErrUnknownFormat is returned by ParseFormat for an unsupported name.
var ErrUnknownFormat = errors.New("unknown output format")

// Format defines the available output formats
type Format int

const (
	// JSON writes the {"title", "outline"} document
	JSON Format = iota
	// YAML writes the same document as YAML
	YAML
	// Markdown writes a nested table of contents
	Markdown
	// HTML writes the Markdown table of contents rendered as HTML
	HTML
)

// String returns the name of the format
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case Markdown:
		return "markdown"
	case HTML:
		return "html"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (f Format) FileExtension() string {
	switch f {
	case JSON:
		return ".json"
	case YAML:
		return ".yaml"
	case Markdown:
		return ".md"
	case HTML:
		return ".html"
	default:
		return ".txt"
	}
}

// ParseFormat maps a name (json, yaml, yml, markdown, md or html, in any
// case) to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "markdown", "md":
		return Markdown, nil
	case "html":
		return HTML, nil
	default:
		return JSON, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Exporter writes results in one format.
type Exporter struct {
	format Format
}

// NewExporter creates an exporter for f.
func NewExporter(f Format) *Exporter {
	return &Exporter{format: f}
}

// Format returns the exporter's format.
func (e *Exporter) Format() Format {
	return e.format
}

// Export writes res to w.
func (e *Exporter) Export(res model.Result, w io.Writer) error {
	res = Canonical(res)

	switch e.format {
	case JSON:
		return exportJSON(res, w)
	case YAML:
		return exportYAML(res, w)
	case Markdown:
		_, err := io.WriteString(w, markdown(res))
		return err
	case HTML:
		return exportHTML(res, w)
	default:
		return fmt.Errorf("unsupported export format: %v", e.format)
	}
}

// ExportToFile writes res to filename, replacing any existing file.
func (e *Exporter) ExportToFile(res model.Result, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := e.Export(res, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportToString returns res rendered as a string.
func (e *Exporter) ExportToString(res model.Result) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(res, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Canonical returns a copy of res with every string in NFC and a non-nil
// outline.
func Canonical(res model.Result) model.Result {
	out := model.Result{
		Title:   text.NFC(res.Title),
		Outline: make([]model.Entry, len(res.Outline)),
	}
	for i, e := range res.Outline {
		e.Text = text.NFC(e.Text)
		out.Outline[i] = e
	}
	return out
}

func exportJSON(res model.Result, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(res)
}

func exportYAML(res model.Result, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(res); err != nil {
		return err
	}
	return encoder.Close()
}

// markdownEscaper backslash-escapes characters that Markdown would
// otherwise interpret.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
)

// Leading text that Markdown would read as the start of a nested list.
var (
	orderedMarker = regexp.MustCompile(`^(\d{1,9})([.)])(\s|$)`)
	bulletMarker  = regexp.MustCompile(`^([-+])(\s|$)`)
)

func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(s)
	s = orderedMarker.ReplaceAllString(s, `$1\$2$3`)
	return bulletMarker.ReplaceAllString(s, `\$1$2`)
}

// markdown renders the outline as a nested list under the title.
func markdown(res model.Result) string {
	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(escapeMarkdown(res.Title))
	sb.WriteString("\n")
	if len(res.Outline) == 0 {
		return sb.String()
	}

	sb.WriteString("\n")
	for _, e := range res.Outline {
		sb.WriteString(strings.Repeat("  ", e.Level.Depth()))
		fmt.Fprintf(&sb, "- %s (p. %d)\n", escapeMarkdown(e.Text), e.Page)
	}
	return sb.String()
}

func exportHTML(res model.Result, w io.Writer) error {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(markdown(res)), &body); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n</head>\n<body>\n%s</body>\n</html>\n", body.Bytes())
	return err
}
