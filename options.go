package pdfoutline

import (
	"go.uber.org/zap"

	"github.com/tsawler/pdfoutline/layout"
)

// DefaultMaxPages is the page cap applied when none is configured.
const DefaultMaxPages = 100

// ExtractOptions holds configuration for outline extraction.
type ExtractOptions struct {
	// Pages beyond this are not read
	maxPages int

	logger *zap.Logger

	// Reported in log fields instead of the path
	name string

	heading layout.HeadingConfig
	title   layout.TitleConfig
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		maxPages: DefaultMaxPages,
		logger:   zap.NewNop(),
		heading:  layout.DefaultHeadingConfig(),
		title:    layout.DefaultTitleConfig(),
	}
}

// clone creates a copy of ExtractOptions. The configs are plain values,
// and the logger is shared.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		maxPages: o.maxPages,
		logger:   o.logger,
		name:     o.name,
		heading:  o.heading,
		title:    o.title,
	}
}
