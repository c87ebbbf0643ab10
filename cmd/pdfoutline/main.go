// Command pdfoutline extracts the title and heading outline of PDF files.
//
// Usage:
//
//	pdfoutline extract report.pdf
//	pdfoutline batch /app/input /app/output
//	pdfoutline history
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/tsawler/pdfoutline/internal/config"
)

const (
	metaConfig = "config"
	metaLogger = "logger"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "pdfoutline",
		Usage:     "infer the title and H1-H3 outline of PDF documents",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file", EnvVars: []string{"PDFOUTLINE_CONFIG"}},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "console or json"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output format: json, yaml, markdown or html"},
			&cli.IntFlag{Name: "max-pages", Usage: "maximum pages read per document"},
			&cli.StringFlag{Name: "index", Usage: "SQLite index file"},
		},
		Before: setup,
		After:  teardown,
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "print the outline of one PDF and save it",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "directory the outline is saved in"},
					&cli.BoolFlag{Name: "no-save", Usage: "print only"},
				},
				Action: ExtractAction,
			},
			{
				Name:      "batch",
				Usage:     "process every PDF in a directory",
				ArgsUsage: "[input] [output]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "documents processed concurrently"},
					&cli.StringFlag{Name: "summary", Usage: "YAML summary file, relative to the output directory"},
				},
				Action: BatchAction,
			},
			{
				Name:      "history",
				Usage:     "list indexed documents, or show one by ID",
				ArgsUsage: "[id]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "maximum documents listed"},
				},
				Action: HistoryAction,
			},
		},
	}
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.Bool("quiet") {
		cfg.Log.Level = "error"
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("max-pages") {
		cfg.MaxPages = c.Int("max-pages")
	}
	if c.IsSet("index") {
		cfg.Index = c.String("index")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Log.Logger()
	if err != nil {
		return err
	}

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]interface{})
	}
	c.App.Metadata[metaConfig] = cfg
	c.App.Metadata[metaLogger] = logger
	return nil
}

func teardown(c *cli.Context) error {
	if logger, ok := c.App.Metadata[metaLogger].(*zap.Logger); ok {
		_ = logger.Sync()
	}
	return nil
}

func configFrom(c *cli.Context) config.Config {
	if cfg, ok := c.App.Metadata[metaConfig].(config.Config); ok {
		return cfg
	}
	return config.Default()
}

func loggerFrom(c *cli.Context) *zap.Logger {
	if logger, ok := c.App.Metadata[metaLogger].(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}
