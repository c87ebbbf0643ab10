// Package model defines the data flowing through the outline pipeline.
//
// Extraction starts from [Span] values produced by the reader package, folds
// them into [Line] values, keeps the lines that look like headings as
// [Heading] values and finally emits a [Result]: a title plus an ordered
// list of [Entry] values, one per heading, each tagged with a [Level].
//
// # Output Shape
//
// A [Result] serializes to the outline contract:
//
//	{
//	  "title": "Document Title",
//	  "outline": [
//	    {"text": "1. Introduction", "level": "H1", "page": 1}
//	  ]
//	}
//
// Page numbers are always 1-indexed and the outline keeps detection order
// (page ascending, then the order in which headings appeared on the page).
package model
