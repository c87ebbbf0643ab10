package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/pdfoutline/format"
	"github.com/tsawler/pdfoutline/render"
)

// DefaultSafeOutputDir is the directory name used, next to the executable,
// when the requested output directory is unusable.
const DefaultSafeOutputDir = "output"

// OutputName returns the output file name for an input file: the base name
// with its extension replaced by the format's extension.
func OutputName(inputPath string, f render.Format) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + f.FileExtension()
}

// IsNested reports whether dir equals root or lies inside it.
func IsNested(root, dir string) (bool, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	rel, err := filepath.Rel(absRoot, absDir)
	if err != nil {
		return false, nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, nil
	}
	return !filepath.IsAbs(rel), nil
}

// SafeOutputDir returns configured, or "output" next to the executable
// when configured is empty.
func SafeOutputDir(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(execPath), DefaultSafeOutputDir), nil
}

// Discover lists the regular files in dir whose extension is .pdf in any
// case, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if format.Detect(entry.Name()) != format.PDF {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
