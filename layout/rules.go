package layout

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// localeRules holds the phrase tables of one locale.
type localeRules struct {
	// ChapterMarkers precede a number in chapter-level headings. They are
	// accepted as headings and always promoted to H1.
	ChapterMarkers []string

	// PartMarkers precede a number in headings that are accepted but not
	// promoted.
	PartMarkers []string

	// Attributions mark author lines, which are never headings.
	Attributions []string

	// StructuralNames are whole-text section names that are always H1.
	StructuralNames []string
}

var locales = map[string]localeRules{
	"en": {
		ChapterMarkers:  []string{"chapter", "section"},
		PartMarkers:     []string{"part"},
		Attributions:    []string{"written by", "authored by", "prepared by", "compiled by", "edited by"},
		StructuralNames: []string{"table of contents", "index", "appendix", "references", "bibliography", "glossary", "abstract"},
	},
	"ja": {
		ChapterMarkers:  []string{"章", "節"},
		Attributions:    []string{"著者", "作成者", "編集者"},
		StructuralNames: []string{"目次", "索引", "附録", "参考文献", "用語集", "概要"},
	},
	"hi": {
		ChapterMarkers:  []string{"अध्याय", "खंड"},
		PartMarkers:     []string{"भाग"},
		Attributions:    []string{"द्वारा लिखित", "द्वारा तैयार", "द्वारा संकलित"},
		StructuralNames: []string{"विषय-सूची", "अनुक्रमणिका", "परिशिष्ट", "संदर्भ", "शब्दावली", "सारांश"},
	},
}

// Locales returns the tags of the built-in locale tables, sorted.
func Locales() []string {
	tags := make([]string, 0, len(locales))
	for tag := range locales {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Numbering patterns. Digits are any Unicode decimal digit.
var (
	numberedPrefix = regexp.MustCompile(`^\p{Nd}+(\.\p{Nd}+)*\.?\s+`)
	depth3Prefix   = regexp.MustCompile(`^\p{Nd}+\.\p{Nd}+\.\p{Nd}+`)
	depth2Prefix   = regexp.MustCompile(`^\p{Nd}+\.\p{Nd}+`)
	depth1Prefix   = regexp.MustCompile(`^\p{Nd}+\.\s+`)
	circledPrefix  = regexp.MustCompile(`^[\x{2460}-\x{2473}\x{3251}-\x{32bf}\x{2776}-\x{277f}]`)
	noiseRun       = regexp.MustCompile(`[~@#$%^&*_+=\\|<>/]{2,}`)
	sentenceEnd    = regexp.MustCompile(`[.。।?？!！]\s*$`)
)

// Patterns compiled from the locale tables.
var (
	anyMarker     = markerPattern(func(l localeRules) []string { return append(append([]string(nil), l.ChapterMarkers...), l.PartMarkers...) })
	chapterMarker = markerPattern(func(l localeRules) []string { return l.ChapterMarkers })
	attribution   = regexp.MustCompile(`(?i)(` + alternation(collect(func(l localeRules) []string { return l.Attributions })) + `)`)
	structural    = foldedSet(collect(func(l localeRules) []string { return l.StructuralNames }))
)

// collect gathers one table from every locale in tag order.
func collect(pick func(localeRules) []string) []string {
	var out []string
	for _, tag := range Locales() {
		out = append(out, pick(locales[tag])...)
	}
	return out
}

// alternation quotes phrases and joins them into a regexp alternation,
// longest first so that no phrase is shadowed by its own prefix.
func alternation(phrases []string) string {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	sort.SliceStable(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })
	return strings.Join(quoted, "|")
}

// markerPattern matches a leading marker followed by a number.
func markerPattern(pick func(localeRules) []string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^(` + alternation(collect(pick)) + `)\s*\p{Nd}+`)
}

func foldedSet(phrases []string) map[string]struct{} {
	set := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		set[fold(p)] = struct{}{}
	}
	return set
}

// fold returns the case-folded form of s. A Caser keeps state, so each
// call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// IsNumbered reports whether text starts with a decimal numbering prefix
// followed by whitespace, such as "1 ", "2. " or "3.1.4 ".
func IsNumbered(text string) bool {
	return numberedPrefix.MatchString(text)
}

// HasChapterMarker reports whether text starts with a chapter, section or
// part marker in any locale followed by a number.
func HasChapterMarker(text string) bool {
	return anyMarker.MatchString(text)
}

// IsAttribution reports whether text contains an author attribution
// phrase in any locale.
func IsAttribution(text string) bool {
	return attribution.MatchString(text)
}

// IsStructuralName reports whether the whole of text is a structural
// section name such as "Appendix" or "目次".
func IsStructuralName(text string) bool {
	_, ok := structural[fold(text)]
	return ok
}
