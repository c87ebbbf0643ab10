package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/pdfoutline/internal/store"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/reader"
	"github.com/tsawler/pdfoutline/render"
)

// writeInputs creates files with a PDF header in dir.
func writeInputs(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4\n"), 0644))
	}
}

// chapterDoc is a one-page document whose only heading is its argument.
func chapterDoc(heading string) reader.Document {
	return reader.NewMemoryDocument(model.Metadata{},
		reader.PageOf(
			reader.RawSpan{Text: heading, Size: 18},
			reader.RawSpan{Text: "Body text that is long enough to read as a paragraph of prose.", Size: 10},
		))
}

// stubOpener serves chapter documents titled after the file, and fails for
// names listed in broken.
func stubOpener(broken ...string) Opener {
	return func(path string) (reader.Document, error) {
		base := filepath.Base(path)
		for _, b := range broken {
			if b == base {
				return nil, errors.New("malformed xref table")
			}
		}
		return chapterDoc("Chapter 1: " + base), nil
	}
}

func testConfig(t *testing.T) Config {
	t.Helper()
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.InputDir = filepath.Join(root, "input")
	cfg.OutputDir = filepath.Join(root, "output")
	cfg.SafeOutputDir = filepath.Join(root, "safe")
	cfg.Languages = nil
	cfg.Open = stubOpener()
	return cfg
}

func readResult(t *testing.T, path string) model.Result {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var res model.Result
	require.NoError(t, json.Unmarshal(data, &res))
	return res
}

// ============================================================================
// Paths
// ============================================================================

func TestOutputName(t *testing.T) {
	tests := []struct {
		input  string
		format render.Format
		want   string
	}{
		{"/in/report.pdf", render.JSON, "report.json"},
		{"/in/REPORT.PDF", render.JSON, "REPORT.json"},
		{"/in/my.report.pdf", render.YAML, "my.report.yaml"},
		{"paper.pdf", render.Markdown, "paper.md"},
		{"paper.pdf", render.HTML, "paper.html"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputName(tt.input, tt.format))
		})
	}
}

func TestIsNested(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name string
		dir  string
		want bool
	}{
		{"same", root, true},
		{"child", filepath.Join(root, "out"), true},
		{"grandchild", filepath.Join(root, "a", "b"), true},
		{"dotted child", filepath.Join(root, "..out"), true},
		{"sibling", filepath.Join(filepath.Dir(root), "other"), false},
		{"parent", filepath.Dir(root), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsNested(root, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSafeOutputDir(t *testing.T) {
	dir, err := SafeOutputDir("/tmp/custom")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom", dir)

	dir, err = SafeOutputDir("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSafeOutputDir, filepath.Base(dir))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeInputs(t, dir, "b.pdf", "A.PDF", "notes.txt", "scan.Pdf")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.pdf"), 0755))

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "A.PDF"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "scan.Pdf"),
	}, files)
}

func TestDiscoverMissingDirectory(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input directory")
}

// ============================================================================
// Run
// ============================================================================

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	writeInputs(t, cfg.InputDir, "alpha.pdf", "beta.PDF", "readme.txt")

	summary, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Successful)
	assert.Equal(t, 0, summary.Failed)
	require.Len(t, summary.Items, 2)

	item := summary.Items[0]
	assert.Equal(t, filepath.Join(cfg.InputDir, "alpha.pdf"), item.File)
	assert.Equal(t, StatusSuccess, item.Status)
	assert.Equal(t, 1, item.Headings)
	assert.Equal(t, map[string]int{"H1": 1}, item.Levels)
	assert.Equal(t, "Latin", item.Script)
	assert.Equal(t, 1, item.Pages)
	assert.NotEmpty(t, item.Duration)

	res := readResult(t, filepath.Join(cfg.OutputDir, "alpha.json"))
	assert.Equal(t, "Chapter 1: alpha.pdf", res.Title)
	require.Len(t, res.Outline, 1)
	assert.Equal(t, model.H1, res.Outline[0].Level)
	assert.Equal(t, 1, res.Outline[0].Page)

	assert.FileExists(t, filepath.Join(cfg.OutputDir, "beta.json"))
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "readme.json"))
}

func TestRunFailedDocumentIsReported(t *testing.T) {
	cfg := testConfig(t)
	cfg.Open = stubOpener("broken.pdf")
	writeInputs(t, cfg.InputDir, "broken.pdf", "good.pdf")

	summary, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, 1, summary.Failed)

	item := summary.Items[0]
	assert.Equal(t, StatusError, item.Status)
	assert.Contains(t, item.Error, "malformed xref table")
	assert.Equal(t, model.ErrorTitle, item.Title)

	res := readResult(t, filepath.Join(cfg.OutputDir, "broken.json"))
	assert.True(t, res.IsError())
}

func TestRunNoFiles(t *testing.T) {
	cfg := testConfig(t)
	writeInputs(t, cfg.InputDir, "notes.txt")
	core, logs := observer.New(zapcore.WarnLevel)
	cfg.Logger = zap.New(core)

	summary, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Total)
	assert.Empty(t, summary.Items)
	require.Len(t, summary.Warnings, 1)
	assert.Contains(t, summary.Warnings[0], "no PDF files found")
	assert.Equal(t, 1, logs.Len())

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunNestedOutputIsRedirected(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputDir = filepath.Join(cfg.InputDir, "out")
	writeInputs(t, cfg.InputDir, "doc.pdf")
	core, logs := observer.New(zapcore.WarnLevel)
	cfg.Logger = zap.New(core)

	summary, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, cfg.SafeOutputDir, summary.OutputDir)
	assert.FileExists(t, filepath.Join(cfg.SafeOutputDir, "doc.json"))
	assert.NoDirExists(t, cfg.OutputDir)
	assert.Equal(t, 1, logs.FilterMessage("output directory cannot be inside input directory").Len())
}

func TestRunPreservesInputOrderWithWorkers(t *testing.T) {
	cfg := testConfig(t)
	cfg.Workers = 4

	var names []string
	for i := 0; i < 12; i++ {
		names = append(names, fmt.Sprintf("doc%02d.pdf", i))
	}
	writeInputs(t, cfg.InputDir, names...)

	summary, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, summary.Items, len(names))
	for i, name := range names {
		assert.Equal(t, filepath.Join(cfg.InputDir, name), summary.Items[i].File)
		assert.Equal(t, "Chapter 1: "+name, summary.Items[i].Title)
	}
}

func TestRunFormats(t *testing.T) {
	cfg := testConfig(t)
	cfg.Format = render.Markdown
	writeInputs(t, cfg.InputDir, "doc.pdf")

	_, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "doc.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Chapter 1: doc.pdf")
}

func TestRunWritesSummary(t *testing.T) {
	cfg := testConfig(t)
	cfg.SummaryPath = "summary.yaml"
	writeInputs(t, cfg.InputDir, "doc.pdf")

	_, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "summary.yaml"))
	require.NoError(t, err)

	var summary Summary
	require.NoError(t, yaml.Unmarshal(data, &summary))
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, "json", summary.Format)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, StatusSuccess, summary.Items[0].Status)
	assert.Equal(t, 1, summary.Items[0].Headings)
}

func TestRunRecordsIndex(t *testing.T) {
	cfg := testConfig(t)
	cfg.IndexPath = filepath.Join(t.TempDir(), "index.db")
	cfg.Open = stubOpener("bad.pdf")
	writeInputs(t, cfg.InputDir, "bad.pdf", "good.pdf")

	_, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	db, err := store.Open(cfg.IndexPath)
	require.NoError(t, err)
	defer db.Close()

	docs, err := db.ListDocuments(0)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, filepath.Join(cfg.InputDir, "good.pdf"), docs[0].Path)
	assert.Equal(t, store.StatusSuccess, docs[0].Status)
	assert.Equal(t, 1, docs[0].Headings)
	assert.Equal(t, "Latin", docs[0].Script)
	assert.Equal(t, store.StatusError, docs[1].Status)
	assert.Empty(t, docs[1].Script)

	outline, err := db.Headings(docs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Entry{{Text: "Chapter 1: good.pdf", Level: model.H1, Page: 1}}, outline)
}

func TestRunDetectsLanguage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Languages = []string{"english", "japanese"}
	cfg.Open = func(path string) (reader.Document, error) {
		return chapterDoc("第1章 はじめに"), nil
	}
	writeInputs(t, cfg.InputDir, "ja.pdf")

	summary, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "ja", summary.Items[0].Language)
}

func TestRunReportsScript(t *testing.T) {
	headings := map[string]string{
		"hi.pdf": "अध्याय 1 परिचय",
		"zh.pdf": "研究概要",
	}
	cfg := testConfig(t)
	cfg.IndexPath = filepath.Join(t.TempDir(), "index.db")
	cfg.Open = func(path string) (reader.Document, error) {
		return chapterDoc(headings[filepath.Base(path)]), nil
	}
	writeInputs(t, cfg.InputDir, "hi.pdf", "zh.pdf")

	summary, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, summary.Items, 2)

	assert.Equal(t, "Devanagari", summary.Items[0].Script)
	assert.Equal(t, "Han", summary.Items[1].Script)
	for _, item := range summary.Items {
		assert.Empty(t, item.Language, "detection is disabled")
		assert.Equal(t, 1, item.Headings)
	}

	db, err := store.Open(cfg.IndexPath)
	require.NoError(t, err)
	defer db.Close()

	docs, err := db.ListDocuments(0)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Han", docs[0].Script)
	assert.Equal(t, "Devanagari", docs[1].Script)
}

func TestRunFailedDocumentHasNoLevels(t *testing.T) {
	cfg := testConfig(t)
	cfg.Open = stubOpener("broken.pdf")
	writeInputs(t, cfg.InputDir, "broken.pdf")

	summary, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Nil(t, summary.Items[0].Levels)
	assert.Empty(t, summary.Items[0].Script)
}

func TestRunInvalidLanguages(t *testing.T) {
	cfg := testConfig(t)
	cfg.Languages = []string{"english", "elvish"}
	writeInputs(t, cfg.InputDir, "doc.pdf")

	_, err := Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elvish")
}

// ============================================================================
// Environment failures
// ============================================================================

func TestRunOutputDirectoryFailure(t *testing.T) {
	cfg := testConfig(t)
	writeInputs(t, cfg.InputDir, "doc.pdf")

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	cfg.OutputDir = filepath.Join(blocker, "out")

	_, err := Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output directory")
}

func TestRunIndexFailure(t *testing.T) {
	cfg := testConfig(t)
	writeInputs(t, cfg.InputDir, "doc.pdf")
	cfg.IndexPath = filepath.Join(t.TempDir(), "missing", "index.db")

	_, err := Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open index")
}

func TestRunCanceledContext(t *testing.T) {
	cfg := testConfig(t)
	writeInputs(t, cfg.InputDir, "a.pdf", "b.pdf")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := Run(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Failed)
	for _, item := range summary.Items {
		assert.Equal(t, StatusError, item.Status)
		assert.Contains(t, item.Error, "context canceled")
	}
}
