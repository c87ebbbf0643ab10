package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Level is the hierarchical level of an outline entry.
type Level int

const (
	LevelUnknown Level = iota
	H1                 // Chapter or major section
	H2                 // Section
	H3                 // Subsection
)

// String returns "H1", "H2" or "H3", or "unknown" for any other value.
func (l Level) String() string {
	switch l {
	case H1:
		return "H1"
	case H2:
		return "H2"
	case H3:
		return "H3"
	default:
		return "unknown"
	}
}

// Depth returns the zero-based nesting depth of the level (H1 = 0).
func (l Level) Depth() int {
	if l < H1 {
		return 0
	}
	return int(l) - 1
}

// ParseLevel converts "H1", "h2", etc. into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "H1":
		return H1, nil
	case "H2":
		return H2, nil
	case "H3":
		return H3, nil
	default:
		return LevelUnknown, fmt.Errorf("unknown heading level %q", s)
	}
}

// MarshalJSON encodes the level as its string form.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes "H1", "H2" or "H3".
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalYAML encodes the level as its string form.
func (l Level) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// Entry is one heading in the document outline.
type Entry struct {
	Text  string `json:"text" yaml:"text"`
	Level Level  `json:"level" yaml:"level"`
	Page  int    `json:"page" yaml:"page"`
}

// Title values used when no real title could be determined.
const (
	UntitledTitle = "Untitled Document"
	ErrorTitle    = "Error"
)

// Result is the outline of one document.
type Result struct {
	Title   string  `json:"title" yaml:"title"`
	Outline []Entry `json:"outline" yaml:"outline"`
}

// NewErrorResult returns the degraded result reported for a document that
// could not be processed.
func NewErrorResult() Result {
	return Result{Title: ErrorTitle, Outline: []Entry{}}
}

// IsError reports whether r is the degraded error result.
func (r Result) IsError() bool {
	return r.Title == ErrorTitle && len(r.Outline) == 0
}

// NonNil returns a copy of r whose outline is never nil, so that it
// serializes as [] rather than null.
func (r Result) NonNil() Result {
	if r.Outline == nil {
		r.Outline = []Entry{}
	}
	return r
}

// CountByLevel returns how many entries the outline holds at each level.
func (r Result) CountByLevel() map[Level]int {
	counts := make(map[Level]int)
	for _, e := range r.Outline {
		counts[e.Level]++
	}
	return counts
}
