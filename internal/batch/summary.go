package batch

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Status values for an Item.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Item is the outcome for one input file.
type Item struct {
	File     string         `yaml:"file"`
	Output   string         `yaml:"output,omitempty"`
	Title    string         `yaml:"title"`
	Headings int            `yaml:"headings"`
	Levels   map[string]int `yaml:"levels,omitempty"`
	Pages    int            `yaml:"pages"`
	Language string         `yaml:"language,omitempty"`
	Script   string         `yaml:"script,omitempty"`
	Status   string         `yaml:"status"`
	Error    string         `yaml:"error,omitempty"`
	Warnings []string       `yaml:"warnings,omitempty"`
	Duration string         `yaml:"duration"`

	elapsed time.Duration
}

// Summary describes a whole run.
type Summary struct {
	GeneratedAt string   `yaml:"generated_at"`
	InputDir    string   `yaml:"input_dir"`
	OutputDir   string   `yaml:"output_dir"`
	Format      string   `yaml:"format"`
	Total       int      `yaml:"total"`
	Successful  int      `yaml:"successful"`
	Failed      int      `yaml:"failed"`
	Warnings    []string `yaml:"warnings,omitempty"`
	Items       []Item   `yaml:"results"`
}

// add appends item and updates the counters.
func (s *Summary) add(item Item) {
	s.Total++
	if item.Status == StatusSuccess {
		s.Successful++
	} else {
		s.Failed++
	}
	s.Items = append(s.Items, item)
}

// Write saves the summary as YAML.
func (s *Summary) Write(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("error marshalling summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
