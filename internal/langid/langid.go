// Package langid detects the dominant language of a document's headings.
package langid

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// ErrTooFewLanguages is returned when fewer than two candidate languages
// are configured.
var ErrTooFewLanguages = errors.New("at least two languages are required")

// DefaultLanguages are the candidates used when none are configured.
var DefaultLanguages = []string{"english", "japanese", "hindi"}

// Detection is the outcome of one detection. The zero value means the
// language could not be determined.
type Detection struct {
	// Language is the English name, e.g. "English".
	Language string `yaml:"language,omitempty" json:"language,omitempty"`

	// Code is the ISO 639-1 code in lower case, e.g. "en".
	Code string `yaml:"code,omitempty" json:"code,omitempty"`

	// Confidence is in [0, 1].
	Confidence float64 `yaml:"confidence,omitempty" json:"confidence,omitempty"`
}

// Known reports whether a language was detected.
func (d Detection) Known() bool {
	return d.Code != ""
}

// Detector wraps a lingua detector restricted to a candidate set.
type Detector struct {
	detector  lingua.LanguageDetector
	languages []lingua.Language
}

// ParseLanguages maps English language names (any case) or ISO 639-1
// codes to lingua languages. Duplicates are dropped.
func ParseLanguages(names []string) ([]lingua.Language, error) {
	byName := make(map[string]lingua.Language)
	for _, l := range lingua.AllLanguages() {
		byName[strings.ToLower(l.String())] = l
		byName[strings.ToLower(l.IsoCode639_1().String())] = l
	}

	seen := make(map[lingua.Language]bool)
	var languages []lingua.Language
	for _, name := range names {
		l, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown language %q", name)
		}
		if !seen[l] {
			seen[l] = true
			languages = append(languages, l)
		}
	}
	return languages, nil
}

// New builds a detector over the named languages. An empty list means
// DefaultLanguages.
func New(names []string) (*Detector, error) {
	if len(names) == 0 {
		names = DefaultLanguages
	}
	languages, err := ParseLanguages(names)
	if err != nil {
		return nil, fmt.Errorf("failed to parse languages: %w", err)
	}
	if len(languages) < 2 {
		return nil, ErrTooFewLanguages
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		WithMinimumRelativeDistance(0.1).
		Build()

	return &Detector{detector: detector, languages: languages}, nil
}

// Languages returns the English names of the candidate languages, sorted.
func (d *Detector) Languages() []string {
	names := make([]string, len(d.languages))
	for i, l := range d.languages {
		names[i] = l.String()
	}
	sort.Strings(names)
	return names
}

// Detect returns the most likely language of the texts taken together.
func (d *Detector) Detect(texts []string) Detection {
	joined := strings.TrimSpace(strings.Join(texts, "\n"))
	if joined == "" {
		return Detection{}
	}

	language, ok := d.detector.DetectLanguageOf(joined)
	if !ok {
		return Detection{}
	}

	det := Detection{
		Language: language.String(),
		Code:     strings.ToLower(language.IsoCode639_1().String()),
	}
	for _, cv := range d.detector.ComputeLanguageConfidenceValues(joined) {
		if cv.Language() == language {
			det.Confidence = cv.Value()
			break
		}
	}
	return det
}
