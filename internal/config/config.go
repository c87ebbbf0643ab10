// Package config loads the pdfoutline configuration file.
//
// The file is YAML; every key is optional and falls back to the default:
//
//	max_pages: 100
//	workers: 1
//	format: json
//	safe_output_dir: ""        # "output" next to the executable
//	summary: ""                # YAML summary manifest path, disabled when empty
//	index: ""                  # SQLite index path, disabled when empty
//	languages: [english, japanese, hindi]
//	log:
//	  level: info
//	  format: console          # or json
//	heading:
//	  size_ratio: 1.2
//	title:
//	  vertical: true
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/pdfoutline/layout"
	"github.com/tsawler/pdfoutline/render"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete configuration.
type Config struct {
	MaxPages      int           `yaml:"max_pages"`
	Workers       int           `yaml:"workers"`
	Format        string        `yaml:"format"`
	SafeOutputDir string        `yaml:"safe_output_dir"`
	Summary       string        `yaml:"summary"`
	Index         string        `yaml:"index"`
	Languages     []string      `yaml:"languages"`
	Log           LogConfig     `yaml:"log"`
	Heading       HeadingConfig `yaml:"heading"`
	Title         TitleConfig   `yaml:"title"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HeadingConfig mirrors layout.HeadingConfig.
type HeadingConfig struct {
	MinLength         int     `yaml:"min_length"`
	MaxLength         int     `yaml:"max_length"`
	SentenceLength    int     `yaml:"sentence_length"`
	SizeRatio         float64 `yaml:"size_ratio"`
	MaxTitleCaseWords int     `yaml:"max_title_case_words"`
	TitleCaseShare    float64 `yaml:"title_case_share"`
	MaxUpperLength    int     `yaml:"max_upper_length"`
	MaxOtherWords     int     `yaml:"max_other_words"`
}

// TitleConfig mirrors layout.TitleConfig.
type TitleConfig struct {
	MinMetadataLength int    `yaml:"min_metadata_length"`
	MaxHeadingLength  int    `yaml:"max_heading_length"`
	MinSpanLength     int    `yaml:"min_span_length"`
	Vertical          bool   `yaml:"vertical"`
	VerticalWindow    int    `yaml:"vertical_window"`
	VerticalFragments int    `yaml:"vertical_fragments"`
	VerticalMaxLength int    `yaml:"vertical_max_length"`
	Placeholder       string `yaml:"placeholder"`
}

// Default returns the built-in configuration.
func Default() Config {
	h := layout.DefaultHeadingConfig()
	t := layout.DefaultTitleConfig()
	return Config{
		MaxPages:  100,
		Workers:   1,
		Format:    render.JSON.String(),
		Languages: []string{"english", "japanese", "hindi"},
		Log:       LogConfig{Level: "info", Format: "console"},
		Heading: HeadingConfig{
			MinLength:         h.MinLength,
			MaxLength:         h.MaxLength,
			SentenceLength:    h.SentenceLength,
			SizeRatio:         h.SizeRatio,
			MaxTitleCaseWords: h.MaxTitleCaseWords,
			TitleCaseShare:    h.TitleCaseShare,
			MaxUpperLength:    h.MaxUpperLength,
			MaxOtherWords:     h.MaxOtherWords,
		},
		Title: TitleConfig{
			MinMetadataLength: t.MinMetadataLength,
			MaxHeadingLength:  t.MaxHeadingLength,
			MinSpanLength:     t.MinSpanLength,
			Vertical:          t.Vertical,
			VerticalWindow:    t.VerticalWindow,
			VerticalFragments: t.VerticalFragments,
			VerticalMaxLength: t.VerticalMaxLength,
			Placeholder:       t.Placeholder,
		},
	}
}

// Load reads the file at path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	var problems []string
	if c.MaxPages < 1 {
		problems = append(problems, "max_pages must be at least 1")
	}
	if c.Workers < 1 {
		problems = append(problems, "workers must be at least 1")
	}
	if _, err := render.ParseFormat(c.Format); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("log.level: %v", err))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format must be console or json, got %q", c.Log.Format))
	}
	if c.Heading.MinLength < 0 || c.Heading.MaxLength < c.Heading.MinLength {
		problems = append(problems, "heading.max_length must not be below heading.min_length")
	}
	if c.Heading.SizeRatio <= 0 {
		problems = append(problems, "heading.size_ratio must be positive")
	}
	if c.Title.VerticalFragments > c.Title.VerticalWindow {
		problems = append(problems, "title.vertical_fragments must not exceed title.vertical_window")
	}
	if strings.TrimSpace(c.Title.Placeholder) == "" {
		problems = append(problems, "title.placeholder must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// OutputFormat returns the parsed output format.
func (c Config) OutputFormat() render.Format {
	f, err := render.ParseFormat(c.Format)
	if err != nil {
		return render.JSON
	}
	return f
}

// HeadingConfig converts to the classifier configuration.
func (c Config) HeadingConfig() layout.HeadingConfig {
	h := c.Heading
	return layout.HeadingConfig{
		MinLength:         h.MinLength,
		MaxLength:         h.MaxLength,
		SentenceLength:    h.SentenceLength,
		SizeRatio:         h.SizeRatio,
		MaxTitleCaseWords: h.MaxTitleCaseWords,
		TitleCaseShare:    h.TitleCaseShare,
		MaxUpperLength:    h.MaxUpperLength,
		MaxOtherWords:     h.MaxOtherWords,
	}
}

// TitleConfig converts to the resolver configuration.
func (c Config) TitleConfig() layout.TitleConfig {
	t := c.Title
	return layout.TitleConfig{
		MinMetadataLength: t.MinMetadataLength,
		MaxHeadingLength:  t.MaxHeadingLength,
		MinSpanLength:     t.MinSpanLength,
		Vertical:          t.Vertical,
		VerticalWindow:    t.VerticalWindow,
		VerticalFragments: t.VerticalFragments,
		VerticalMaxLength: t.VerticalMaxLength,
		Placeholder:       t.Placeholder,
	}
}

// Logger builds a zap logger writing to stderr: JSON lines for the json
// format, coloured console output otherwise.
func (l LogConfig) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}

	var zc zap.Config
	if l.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
