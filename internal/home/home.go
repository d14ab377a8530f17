// Package home manages the briefly home directory layout.
package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the briefly home directory.
	DefaultDirName = ".briefly"

	// PromptsDirName is the subdirectory for prompt template files.
	PromptsDirName = "prompts"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// SummarizeTemplateName is the default summarize template file name.
	SummarizeTemplateName = "summarize.yaml"
)

// defaultSummarizeTemplate seeds a working template on first run so the
// server answers requests before anyone edits anything.
const defaultSummarizeTemplate = `model: gpt-4o-mini
config:
  temperature: 0.4
  max_tokens: 256
prompt: |
  Summarize the following text in 2-3 concise sentences: {{text}}
input:
  text: string
output:
  summary: string
`

// Dir represents the briefly home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.briefly).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// PromptsPath returns the path to the prompts directory.
func (d *Dir) PromptsPath() string {
	return filepath.Join(d.path, PromptsDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// SummarizeTemplatePath returns the path to the summarize template.
func (d *Dir) SummarizeTemplatePath() string {
	return filepath.Join(d.PromptsPath(), SummarizeTemplateName)
}

// EnsureExists creates the home directory and seeds the default summarize
// template if it isn't there yet. An existing template is never overwritten.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.PromptsPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create prompts directory: %w", err)
	}

	tplPath := d.SummarizeTemplatePath()
	if _, err := os.Stat(tplPath); os.IsNotExist(err) {
		if err := os.WriteFile(tplPath, []byte(defaultSummarizeTemplate), 0o644); err != nil {
			return fmt.Errorf("failed to seed summarize template: %w", err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
