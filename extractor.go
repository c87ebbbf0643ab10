package pdfoutline

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/pdfoutline/layout"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/reader"
	"github.com/tsawler/pdfoutline/text"
)

// openDocument opens a document by path.
var openDocument = func(filename string) (reader.Document, error) {
	doc, err := reader.Open(filename)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Extractor provides a fluent interface for inferring a document outline.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source: a path, or a document owned by the caller
	filename string
	doc      reader.Document

	options ExtractOptions
}

// Outcome is the result of one extraction.
type Outcome struct {
	// Result is the outline, or the degraded error result when Err is set.
	Result model.Result

	// Warnings are non-fatal issues.
	Warnings []Warning

	// Err is the failure that produced the degraded result.
	Err error

	// Pages is the number of pages read.
	Pages int

	// TitleSource is the rule that produced the title.
	TitleSource layout.TitleSource

	// Elapsed is the wall time of the extraction.
	Elapsed time.Duration
}

// OK reports whether the extraction succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// clone creates a shallow copy of the Extractor with a copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		doc:      e.doc,
		options:  e.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// MaxPages caps the number of pages read. Values below 1 restore the
// default of 100.
//
// Example:
//
//	out := pdfoutline.Open("book.pdf").MaxPages(20).Outline()
func (e *Extractor) MaxPages(n int) *Extractor {
	newExt := e.clone()
	if n < 1 {
		n = DefaultMaxPages
	}
	newExt.options.maxPages = n
	return newExt
}

// Logger sets the logger. A nil logger disables logging.
func (e *Extractor) Logger(logger *zap.Logger) *Extractor {
	newExt := e.clone()
	if logger == nil {
		logger = zap.NewNop()
	}
	newExt.options.logger = logger
	return newExt
}

// Name sets the document name used in log fields. Documents passed to
// FromDocument are otherwise logged as "<document>".
func (e *Extractor) Name(name string) *Extractor {
	newExt := e.clone()
	newExt.options.name = name
	return newExt
}

// HeadingConfig replaces the heading classifier thresholds.
func (e *Extractor) HeadingConfig(config layout.HeadingConfig) *Extractor {
	newExt := e.clone()
	newExt.options.heading = config
	return newExt
}

// TitleConfig replaces the title resolver thresholds.
func (e *Extractor) TitleConfig(config layout.TitleConfig) *Extractor {
	newExt := e.clone()
	newExt.options.title = config
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Result runs the extraction and returns the outline, warnings and the
// failure, if any. On failure the result is the degraded error result.
func (e *Extractor) Result() (model.Result, []Warning, error) {
	out := e.Outline()
	return out.Result, out.Warnings, out.Err
}

// Outline runs the pipeline: open, collect spans, merge lines, classify
// normalized lines, compute statistics, assign levels, resolve the title
// and close. It never returns a nil outline and never panics on a bad
// document.
func (e *Extractor) Outline() (out Outcome) {
	start := time.Now()
	log := e.options.logger.With(zap.String("file", e.source()))
	timer := newStageTimer(log)

	defer func() {
		out.Elapsed = time.Since(start)
	}()

	doc := e.doc
	if doc == nil {
		opened, err := openDocument(e.filename)
		if err != nil {
			return e.fail(log, fmt.Errorf("failed to open document: %w", err))
		}
		doc = opened
		defer func() {
			if err := doc.Close(); err != nil {
				log.Warn("failed to close document", zap.Error(err))
			}
		}()
	}
	timer.checkpoint("open")

	defer func() {
		if rec := recover(); rec != nil {
			out = e.fail(log, fmt.Errorf("extraction panicked: %v", rec))
		}
	}()

	collection, err := reader.CollectSpans(doc, e.options.maxPages)
	if err != nil {
		return e.fail(log, err)
	}
	timer.checkpoint("collect")

	var warnings []Warning
	if collection.Truncated() {
		warnings = append(warnings, Warning{
			Code:    WarnPageLimit,
			Message: fmt.Sprintf("read %d of %d pages", collection.PageCount, collection.TotalPages),
		})
	}
	if collection.Scanned {
		warnings = append(warnings, Warning{
			Code:    WarnNoText,
			Message: "no extractable text; the document may be scanned",
		})
	}

	// Phase one: everything that depends only on the spans.
	stats := layout.NewStats(collection.Spans)
	lines := layout.NewLineMerger().Merge(collection.Spans)
	timer.checkpoint("merge")

	classifier := layout.NewHeadingClassifierWithConfig(e.options.heading)
	var headings []model.Heading
	for _, line := range lines {
		t := text.Normalize(line.Text)
		if t == "" {
			continue
		}
		if classifier.IsHeading(t, line.FontSize, line.Bold, stats.AvgFontSize) {
			headings = append(headings, model.Heading{
				Text:     t,
				FontSize: line.FontSize,
				Bold:     line.Bold,
				Page:     line.Page,
			})
		}
	}
	timer.checkpoint("classify")

	// Phase two: decisions against the complete heading population.
	stats = stats.WithHeadings(headings)
	log.Debug("heading statistics",
		zap.Float64("avg_font_size", stats.AvgFontSize),
		zap.Float64s("heading_sizes", stats.DistinctSizes()),
	)

	resolver := layout.NewTitleResolverWithConfig(e.options.title)
	meta := doc.Metadata()
	if strings.TrimSpace(meta.Title) != "" && !resolver.MetadataTitleUsable(meta.Title) {
		warnings = append(warnings, Warning{
			Code:    WarnShortMetadataTitle,
			Message: fmt.Sprintf("metadata title %q is too short", strings.TrimSpace(meta.Title)),
		})
	}
	title, source := resolver.Resolve(meta.Title, headings, collection.FirstPage)
	timer.checkpoint("title")

	entries := make([]model.Entry, len(headings))
	for i, h := range headings {
		entries[i] = model.Entry{Text: h.Text, Level: stats.Level(h), Page: h.Page}
	}
	timer.checkpoint("levels")

	log.Info("extracted outline",
		zap.Int("pages", collection.PageCount),
		zap.Int("empty_pages", collection.EmptyPages),
		zap.Int("headings", len(entries)),
		zap.String("title_source", source.String()),
		zap.Duration("duration", time.Since(start)),
	)
	for _, w := range warnings {
		log.Warn(w.Message, zap.Stringer("code", w.Code))
	}

	return Outcome{
		Result:      model.Result{Title: title, Outline: entries}.NonNil(),
		Warnings:    warnings,
		Pages:       collection.PageCount,
		TitleSource: source,
	}
}

// fail logs err and returns the degraded outcome.
func (e *Extractor) fail(log *zap.Logger, err error) Outcome {
	log.Error("outline extraction failed", zap.Error(err))
	return Outcome{Result: model.NewErrorResult(), Err: err}
}

func (e *Extractor) source() string {
	if e.options.name != "" {
		return e.options.name
	}
	if e.filename != "" {
		return e.filename
	}
	return "<document>"
}

// stageTimer logs the time spent in each pipeline stage at debug level.
type stageTimer struct {
	log  *zap.Logger
	last time.Time
}

func newStageTimer(log *zap.Logger) *stageTimer {
	return &stageTimer{log: log, last: time.Now()}
}

func (t *stageTimer) checkpoint(stage string) {
	now := time.Now()
	t.log.Debug("stage complete", zap.String("stage", stage), zap.Duration("duration", now.Sub(t.last)))
	t.last = now
}
