// Package text provides script-aware text normalization and measurement.
//
// # Normalization
//
// [Normalize] turns extracted text into its canonical display form: invalid
// byte sequences are replaced, the text is composed to NFC, control and
// format characters are removed, whitespace of any script is collapsed to a
// single ASCII space and trailing punctuation from Latin, CJK, Devanagari
// and Arabic text is trimmed. It never fails and is idempotent:
//
//	text.Normalize(text.Normalize(s)) == text.Normalize(s)
//
// [NormalizeBytes] does the same for raw bytes, honouring a UTF-16 byte
// order mark when present.
//
// # Width
//
// [EffectiveLength] counts East Asian Wide and Fullwidth characters as two
// columns and everything else as one, so CJK text is measured on the same
// scale as Latin text.
//
// # Scripts
//
// [ScriptOf], [HasLatin] and [DominantScript] classify characters by
// writing system. The classification is reported using the script
// constants of github.com/go-text/typesetting/language.
package text
