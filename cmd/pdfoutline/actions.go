package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/tsawler/pdfoutline"
	"github.com/tsawler/pdfoutline/internal/batch"
	"github.com/tsawler/pdfoutline/internal/langid"
	"github.com/tsawler/pdfoutline/internal/store"
	"github.com/tsawler/pdfoutline/render"
	"github.com/tsawler/pdfoutline/text"
)

// ExtractAction prints the outline of one file and saves it under the
// output directory.
func ExtractAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one file, got %d arguments", c.NArg())
	}
	path := c.Args().First()
	cfg := configFrom(c)
	log := loggerFrom(c)

	out := pdfoutline.Open(path).
		MaxPages(cfg.MaxPages).
		Logger(log).
		HeadingConfig(cfg.HeadingConfig()).
		TitleConfig(cfg.TitleConfig()).
		Outline()

	exporter := render.NewExporter(cfg.OutputFormat())
	if err := exporter.Export(out.Result, c.App.Writer); err != nil {
		return fmt.Errorf("failed to print outline: %w", err)
	}

	if !c.Bool("no-save") {
		dir := c.String("output")
		if dir == "" {
			var err error
			if dir, err = batch.SafeOutputDir(cfg.SafeOutputDir); err != nil {
				return err
			}
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		outputPath := filepath.Join(dir, batch.OutputName(path, exporter.Format()))
		if err := exporter.ExportToFile(out.Result, outputPath); err != nil {
			return err
		}
		log.Info("saved outline", zap.String("output", outputPath))
	}

	if cfg.Index != "" {
		if err := indexOutcome(cfg.Index, cfg.Languages, path, out); err != nil {
			return err
		}
	}
	return nil
}

// indexOutcome records a single extraction in the index.
func indexOutcome(indexPath string, languages []string, path string, out pdfoutline.Outcome) error {
	db, err := store.Open(indexPath)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer db.Close()

	doc := store.Document{
		Path:     path,
		Title:    out.Result.Title,
		Status:   store.StatusSuccess,
		Pages:    out.Pages,
		Duration: out.Elapsed,
		Outline:  out.Result.Outline,
	}
	if out.Err != nil {
		doc.Status = store.StatusError
		doc.Error = out.Err.Error()
	}
	if len(out.Result.Outline) > 0 {
		texts := make([]string, len(out.Result.Outline))
		for i, e := range out.Result.Outline {
			texts[i] = e.Text
		}
		doc.Script = text.DominantScriptName(strings.Join(texts, " "))
		if len(languages) > 0 {
			detector, err := langid.New(languages)
			if err != nil {
				return err
			}
			doc.Language = detector.Detect(texts).Code
		}
	}

	_, err = db.RecordDocument(doc)
	return err
}

// BatchAction processes every PDF in the input directory.
func BatchAction(c *cli.Context) error {
	cfg := configFrom(c)
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("summary") {
		cfg.Summary = c.String("summary")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	bc := batch.DefaultConfig()
	if c.NArg() > 0 {
		bc.InputDir = c.Args().Get(0)
	}
	if c.NArg() > 1 {
		bc.OutputDir = c.Args().Get(1)
	}
	bc.SafeOutputDir = cfg.SafeOutputDir
	bc.Format = cfg.OutputFormat()
	bc.Workers = cfg.Workers
	bc.MaxPages = cfg.MaxPages
	bc.Heading = cfg.HeadingConfig()
	bc.Title = cfg.TitleConfig()
	bc.Languages = cfg.Languages
	bc.SummaryPath = cfg.Summary
	bc.IndexPath = cfg.Index
	bc.Logger = loggerFrom(c)

	summary, err := batch.Run(c.Context, bc)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Processed %d files: %d succeeded, %d failed\n",
		summary.Total, summary.Successful, summary.Failed)
	for _, item := range summary.Items {
		if item.Status != batch.StatusSuccess {
			fmt.Fprintf(c.App.Writer, "  %s: %s\n", filepath.Base(item.File), item.Error)
		}
	}
	return nil
}

// HistoryAction lists indexed documents, or shows one when an ID is given.
func HistoryAction(c *cli.Context) error {
	cfg := configFrom(c)
	db, err := store.Open(cfg.Index)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer db.Close()

	w := c.App.Writer

	if c.NArg() > 0 {
		var id int64
		if _, err := fmt.Sscanf(c.Args().First(), "%d", &id); err != nil {
			return fmt.Errorf("invalid document ID: %s", c.Args().First())
		}
		doc, err := db.GetDocument(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n%s\n", doc.Path, doc.Title)
		for _, e := range doc.Outline {
			fmt.Fprintf(w, "%s%-3s %s (p. %d)\n", strings.Repeat("  ", e.Level.Depth()), e.Level, e.Text, e.Page)
		}
		return nil
	}

	docs, err := db.ListDocuments(c.Int("limit"))
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents found")
		return nil
	}

	fmt.Fprintf(w, "%-6s %-20s %-8s %-6s %-9s %-4s %-10s %-40s\n",
		"ID", "Processed", "Status", "Pages", "Headings", "Lang", "Script", "Title")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, d := range docs {
		fmt.Fprintf(w, "%-6d %-20s %-8s %-6d %-9d %-4s %-10s %-40s\n",
			d.ID,
			d.ProcessedAt.Format("2006-01-02 15:04:05"),
			d.Status,
			d.Pages,
			d.Headings,
			d.Language,
			d.Script,
			d.Title,
		)
	}
	fmt.Fprintf(w, "\nTotal: %d documents\n", len(docs))
	return nil
}
