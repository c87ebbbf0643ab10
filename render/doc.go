// Package render writes outline results.
//
// The JSON form is the output contract:
//
//	{
//	  "title": "Annual Report",
//	  "outline": [
//	    {"text": "1. Overview", "level": "H1", "page": 1}
//	  ]
//	}
//
// It is indented with two spaces, keeps every character literal (no HTML
// or \u escaping) and NFC-normalizes every string just before writing.
// YAML, a Markdown table of contents and HTML rendered from that Markdown
// with goldmark are also available:
//
//	f, err := render.ParseFormat("yaml")
//	if err != nil {
//	    return err
//	}
//	err = render.NewExporter(f).Export(result, os.Stdout)
package render
