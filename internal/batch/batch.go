package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/pdfoutline"
	"github.com/tsawler/pdfoutline/format"
	"github.com/tsawler/pdfoutline/internal/langid"
	"github.com/tsawler/pdfoutline/internal/store"
	"github.com/tsawler/pdfoutline/layout"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/reader"
	"github.com/tsawler/pdfoutline/render"
	"github.com/tsawler/pdfoutline/text"
)

// Default directories used when none are given.
const (
	DefaultInputDir  = "/app/input"
	DefaultOutputDir = "/app/output"
)

// Opener opens one input file.
type Opener func(path string) (reader.Document, error)

// Config holds the options for one batch run.
type Config struct {
	// InputDir is scanned for *.pdf files, non-recursively.
	// Default: /app/input
	InputDir string

	// OutputDir receives one output file per input.
	// Default: /app/output
	OutputDir string

	// SafeOutputDir replaces OutputDir when OutputDir is InputDir or lies
	// inside it.
	// Default: "" ("output" next to the executable)
	SafeOutputDir string

	// Format of the output files.
	// Default: render.JSON
	Format render.Format

	// Workers is the number of documents processed concurrently.
	// Default: 1
	Workers int

	// MaxPages caps the pages read per document.
	// Default: 100
	MaxPages int

	// Heading and Title tune the pipeline.
	Heading layout.HeadingConfig
	Title   layout.TitleConfig

	// Languages are the candidates for language detection. Empty disables
	// detection.
	// Default: english, japanese, hindi
	Languages []string

	// SummaryPath is where the YAML summary is written. A relative path is
	// resolved against the output directory. Empty disables the summary.
	// Default: ""
	SummaryPath string

	// IndexPath is the SQLite index every item is recorded in. Empty
	// disables indexing.
	// Default: ""
	IndexPath string

	// Logger receives progress and warnings.
	// Default: zap.NewNop()
	Logger *zap.Logger

	// Open opens an input file.
	// Default: reader.Open
	Open Opener
}

// DefaultConfig returns the default batch configuration.
func DefaultConfig() Config {
	return Config{
		InputDir:  DefaultInputDir,
		OutputDir: DefaultOutputDir,
		Format:    render.JSON,
		Workers:   1,
		MaxPages:  pdfoutline.DefaultMaxPages,
		Heading:   layout.DefaultHeadingConfig(),
		Title:     layout.DefaultTitleConfig(),
		Languages: langid.DefaultLanguages,
		Logger:    zap.NewNop(),
		Open:      openPDF,
	}
}

func openPDF(path string) (reader.Document, error) {
	doc, err := reader.Open(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// job is one file handed to a worker.
type job struct {
	index int
	path  string
}

// result is the processed form of a job.
type result struct {
	index   int
	item    Item
	outline []model.Entry
}

// runner carries the shared state of one run.
type runner struct {
	cfg      Config
	log      *zap.Logger
	exporter *render.Exporter
	detector *langid.Detector
}

// Run processes every PDF in cfg.InputDir and returns the summary.
func Run(ctx context.Context, cfg Config) (*Summary, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Open == nil {
		cfg.Open = openPDF
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	log := cfg.Logger

	outputDir, err := resolveOutputDir(cfg, log)
	if err != nil {
		return nil, err
	}
	cfg.OutputDir = outputDir

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	r := &runner{
		cfg:      cfg,
		log:      log,
		exporter: render.NewExporter(cfg.Format),
	}
	if len(cfg.Languages) > 0 {
		if r.detector, err = langid.New(cfg.Languages); err != nil {
			return nil, fmt.Errorf("failed to create language detector: %w", err)
		}
	}

	var index *store.DB
	if cfg.IndexPath != "" {
		if index, err = store.Open(cfg.IndexPath); err != nil {
			return nil, fmt.Errorf("failed to open index: %w", err)
		}
		defer index.Close()
	}

	files, err := Discover(cfg.InputDir)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		GeneratedAt: time.Now().Format(time.RFC3339),
		InputDir:    cfg.InputDir,
		OutputDir:   outputDir,
		Format:      cfg.Format.String(),
		Items:       []Item{},
	}

	if len(files) == 0 {
		msg := fmt.Sprintf("no PDF files found in %s", cfg.InputDir)
		log.Warn(msg)
		summary.Warnings = append(summary.Warnings, msg)
	} else {
		log.Info("found PDF files", zap.Int("count", len(files)), zap.Int("workers", cfg.Workers))
	}

	for _, res := range r.process(ctx, files) {
		summary.add(res.item)
		if index != nil {
			r.record(index, res)
		}
	}

	if cfg.SummaryPath != "" {
		path := cfg.SummaryPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(outputDir, path)
		}
		if err := summary.Write(path); err != nil {
			return summary, err
		}
		log.Info("saved summary", zap.String("path", path))
	}

	log.Info("batch finished",
		zap.Int("total", summary.Total),
		zap.Int("successful", summary.Successful),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

// resolveOutputDir applies the nested-output guard.
func resolveOutputDir(cfg Config, log *zap.Logger) (string, error) {
	nested, err := IsNested(cfg.InputDir, cfg.OutputDir)
	if err != nil {
		return "", err
	}
	if !nested {
		return cfg.OutputDir, nil
	}

	safe, err := SafeOutputDir(cfg.SafeOutputDir)
	if err != nil {
		return "", err
	}
	log.Warn("output directory cannot be inside input directory",
		zap.String("requested", cfg.OutputDir),
		zap.String("using", safe),
	)
	return safe, nil
}

// process runs the worker pool and returns results in input order.
func (r *runner) process(ctx context.Context, files []string) []result {
	var wg sync.WaitGroup
	jobs := make(chan job, len(files))
	results := make(chan result, len(files))

	workers := r.cfg.Workers
	if workers > len(files) {
		workers = len(files)
	}
	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go r.worker(ctx, &wg, jobs, results)
	}

	for i, path := range files {
		jobs <- job{index: i, path: path}
	}
	close(jobs)

	wg.Wait()
	close(results)

	ordered := make([]result, len(files))
	for res := range results {
		ordered[res.index] = res
	}
	return ordered
}

// worker processes jobs until the channel is drained.
func (r *runner) worker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan job, results chan<- result) {
	defer wg.Done()
	for j := range jobs {
		results <- r.processFile(ctx, j)
	}
}

// processFile extracts, writes and summarizes one file.
func (r *runner) processFile(ctx context.Context, j job) result {
	start := time.Now()
	log := r.log.With(zap.String("file", j.path))

	item := Item{File: j.path}
	res := result{index: j.index}

	var out pdfoutline.Outcome
	if err := ctx.Err(); err != nil {
		out = pdfoutline.Outcome{Result: model.NewErrorResult(), Err: err}
	} else {
		r.sniff(j.path, log)
		out = r.extract(j.path, log)
	}

	item.Title = out.Result.Title
	item.Headings = len(out.Result.Outline)
	item.Pages = out.Pages
	for _, w := range out.Warnings {
		item.Warnings = append(item.Warnings, w.String())
	}
	res.outline = out.Result.Outline

	if len(out.Result.Outline) > 0 {
		item.Levels = levelCounts(out.Result)
		texts := headingTexts(out.Result)
		item.Script = text.DominantScriptName(strings.Join(texts, " "))
		if r.detector != nil {
			item.Language = r.detector.Detect(texts).Code
		}
	}

	// The degraded result is written too, so every input has an output.
	outputPath := filepath.Join(r.cfg.OutputDir, OutputName(j.path, r.cfg.Format))
	writeErr := r.exporter.ExportToFile(out.Result, outputPath)

	switch {
	case out.Err != nil:
		item.Status = StatusError
		item.Error = out.Err.Error()
	case writeErr != nil:
		item.Status = StatusError
		item.Error = writeErr.Error()
	default:
		item.Status = StatusSuccess
	}
	if writeErr != nil {
		log.Error("failed to save outline", zap.Error(writeErr))
	} else {
		item.Output = outputPath
		log.Info("saved outline", zap.String("output", outputPath))
	}

	item.elapsed = time.Since(start)
	item.Duration = item.elapsed.Round(time.Millisecond).String()
	res.item = item
	return res
}

// headingTexts returns the text of every outline entry.
func headingTexts(res model.Result) []string {
	texts := make([]string, len(res.Outline))
	for i, e := range res.Outline {
		texts[i] = e.Text
	}
	return texts
}

// levelCounts returns the number of entries per level, keyed "H1".."H3".
func levelCounts(res model.Result) map[string]int {
	counts := make(map[string]int)
	for level, n := range res.CountByLevel() {
		counts[level.String()] = n
	}
	return counts
}

// sniff warns when a .pdf file lacks the PDF header.
func (r *runner) sniff(path string, log *zap.Logger) {
	f, err := format.DetectFile(path)
	if err != nil {
		log.Warn("failed to read file header", zap.Error(err))
		return
	}
	if f != format.PDF {
		log.Warn("file has a .pdf extension but no PDF header")
	}
}

// extract opens the document and runs the pipeline on it.
func (r *runner) extract(path string, log *zap.Logger) pdfoutline.Outcome {
	doc, err := r.cfg.Open(path)
	if err != nil {
		err = fmt.Errorf("failed to open document: %w", err)
		log.Error("outline extraction failed", zap.Error(err))
		return pdfoutline.Outcome{Result: model.NewErrorResult(), Err: err}
	}
	defer func() {
		if err := doc.Close(); err != nil {
			log.Warn("failed to close document", zap.Error(err))
		}
	}()

	return pdfoutline.FromDocument(doc).
		Name(path).
		MaxPages(r.cfg.MaxPages).
		Logger(r.log).
		HeadingConfig(r.cfg.Heading).
		TitleConfig(r.cfg.Title).
		Outline()
}

// record stores one result in the index. Failures are logged only.
func (r *runner) record(index *store.DB, res result) {
	status := store.StatusSuccess
	if res.item.Status != StatusSuccess {
		status = store.StatusError
	}
	_, err := index.RecordDocument(store.Document{
		Path:     res.item.File,
		Title:    res.item.Title,
		Language: res.item.Language,
		Script:   res.item.Script,
		Status:   status,
		Error:    res.item.Error,
		Pages:    res.item.Pages,
		Duration: res.item.elapsed,
		Outline:  res.outline,
	})
	if err != nil {
		r.log.Warn("failed to index document", zap.String("file", res.item.File), zap.Error(err))
	}
}
