package text

import (
	"unicode"

	"github.com/go-text/typesetting/language"
	"golang.org/x/text/width"
)

// ScriptOf returns the writing system of r, or language.Unknown for
// characters shared between scripts (digits, punctuation, spaces) and
// scripts the outline heuristics do not distinguish.
func ScriptOf(r rune) language.Script {
	switch {
	case unicode.Is(unicode.Latin, r):
		return language.Latin
	case unicode.Is(unicode.Han, r):
		return language.Han
	case unicode.Is(unicode.Hiragana, r):
		return language.Hiragana
	case unicode.Is(unicode.Katakana, r):
		return language.Katakana
	case unicode.Is(unicode.Hangul, r):
		return language.Hangul
	case unicode.Is(unicode.Devanagari, r):
		return language.Devanagari
	case unicode.Is(unicode.Bengali, r):
		return language.Bengali
	case unicode.Is(unicode.Tamil, r):
		return language.Tamil
	case unicode.Is(unicode.Arabic, r):
		return language.Arabic
	case unicode.Is(unicode.Hebrew, r):
		return language.Hebrew
	case unicode.Is(unicode.Cyrillic, r):
		return language.Cyrillic
	case unicode.Is(unicode.Greek, r):
		return language.Greek
	case unicode.Is(unicode.Thai, r):
		return language.Thai
	default:
		return language.Unknown
	}
}

// scriptNames are the display names of the scripts ScriptOf reports.
var scriptNames = map[language.Script]string{
	language.Latin:      "Latin",
	language.Han:        "Han",
	language.Hiragana:   "Hiragana",
	language.Katakana:   "Katakana",
	language.Hangul:     "Hangul",
	language.Devanagari: "Devanagari",
	language.Bengali:    "Bengali",
	language.Tamil:      "Tamil",
	language.Arabic:     "Arabic",
	language.Hebrew:     "Hebrew",
	language.Cyrillic:   "Cyrillic",
	language.Greek:      "Greek",
	language.Thai:       "Thai",
}

// ScriptName returns the display name of s, or "" for language.Unknown
// and scripts ScriptOf never reports.
func ScriptName(s language.Script) string {
	return scriptNames[s]
}

// HasLatin reports whether s contains at least one Latin letter. Fullwidth
// Latin letters (U+FF21-FF5A) do not count: they belong to East Asian text.
// Lines with Latin letters are judged by capitalization; all others by
// font properties alone.
func HasLatin(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) || !unicode.Is(unicode.Latin, r) {
			continue
		}
		if width.LookupRune(r).Kind() == width.EastAsianFullwidth {
			continue
		}
		return true
	}
	return false
}

// DominantScriptName returns the display name of DominantScript(s).
func DominantScriptName(s string) string {
	return ScriptName(DominantScript(s))
}

// DominantScript returns the script with the most letters in s. Ties go to
// the script seen first; language.Unknown is returned when s has no
// classified letters.
func DominantScript(s string) language.Script {
	counts := make(map[language.Script]int)
	best := language.Unknown
	bestCount := 0

	for _, r := range s {
		script := ScriptOf(r)
		if script == language.Unknown {
			continue
		}
		counts[script]++
		if counts[script] > bestCount {
			bestCount = counts[script]
			best = script
		}
	}
	return best
}
