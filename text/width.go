package text

import "golang.org/x/text/width"

// IsWide reports whether r occupies two columns in East Asian typography
// (East Asian Width property Wide or Fullwidth).
func IsWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}

// EffectiveLength returns the display length of s, counting wide and
// fullwidth characters as 2 and all others as 1.
func EffectiveLength(s string) int {
	n := 0
	for _, r := range s {
		if IsWide(r) {
			n += 2
		} else {
			n++
		}
	}
	return n
}
