package text

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	encunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	ideographicSpace = '\u3000'
	replacementChar  = utf8.RuneError
)

// trailingPunct matches a trailing run of clause or sentence punctuation
// from Latin, CJK, Devanagari and Arabic text. Interleaved spaces are part
// of the run so that "Title . ." trims in one pass.
var trailingPunct = regexp.MustCompile(`[ ,:;.\-–—。、।،؛]+$`)

// Normalize returns the canonical display form of raw. The empty string is
// returned for empty input; Normalize never panics.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	s := toValidUTF8(raw)

	// Removals come before composition so that a base character and a
	// combining mark separated only by a dropped rune compose on the first
	// pass.
	s = strings.Map(func(r rune) rune {
		switch {
		case r == ideographicSpace:
			return ' '
		case r == replacementChar:
			return -1
		case unicode.Is(unicode.C, r):
			return -1
		}
		return r
	}, s)

	s = norm.NFC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return trailingPunct.ReplaceAllString(s, "")
}

// NormalizeBytes decodes raw as UTF-8, or as UTF-16 when it starts with a
// byte order mark, and normalizes the result. Undecodable input degrades to
// a plain conversion instead of failing.
func NormalizeBytes(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	decoder := encunicode.BOMOverride(encunicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return Normalize(string(raw))
	}
	return Normalize(string(decoded))
}

// NFC composes s to Unicode Normalization Form C.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// toValidUTF8 replaces invalid byte sequences with U+FFFD.
func toValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	out, _, err := transform.String(encunicode.UTF8.NewDecoder(), s)
	if err != nil {
		return strings.ToValidUTF8(s, string(replacementChar))
	}
	return out
}

// IsUpper reports whether s contains at least one cased letter and no
// lowercase or titlecase letters.
func IsUpper(s string) bool {
	sawUpper := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			sawUpper = true
		}
	}
	return sawUpper
}

// StartsUpper reports whether the first rune of word is an uppercase letter.
func StartsUpper(word string) bool {
	r, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return false
	}
	return unicode.IsUpper(r)
}
