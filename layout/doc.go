// Package layout infers the heading structure of a document from styled
// text spans.
//
// The pipeline runs in two phases. The first phase merges spans into
// lines and classifies each normalized line as heading or body text; the
// second phase computes a [Stats] snapshot over the whole document and
// assigns heading levels against it. No decision of the second phase is
// taken before the snapshot is complete.
//
// # Components
//
//   - [MergeLines] joins consecutive spans on the same page whose font sizes
//     differ by less than one point
//   - [HeadingClassifier] accepts or rejects a line ([IsHeading] uses the
//     default configuration)
//   - [AssignLevel] maps an accepted heading to H1, H2 or H3
//   - [ResolveTitle] picks the document title from metadata, headings or
//     the first page
//
// # Locale Rules
//
// Chapter markers, attribution phrases and structural section names are
// kept as per-locale data tables (English, Japanese and Hindi). Adding a
// locale is a matter of adding a table entry:
//
//	layout.Locales()           // []string{"en", "hi", "ja"}
//
// # Configuration
//
// Thresholds are exposed through [HeadingConfig] and [TitleConfig]:
//
//	cfg := layout.DefaultHeadingConfig()
//	cfg.SizeRatio = 1.3
//	classifier := layout.NewHeadingClassifierWithConfig(cfg)
package layout
