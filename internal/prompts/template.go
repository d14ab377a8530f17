// Package prompts provides the on-disk prompt template format and rendering.
//
// A template is a YAML document pairing a prompt string with generation
// parameters:
//
//	model: gpt-4o-mini
//	config:
//	  temperature: 0.4
//	  max_tokens: 256
//	prompt: |
//	  Summarize the following text in 2-3 sentences: {{text}}
//
// The prompt must contain the literal placeholder {{text}}, which is replaced
// with caller input at request time. Templates are re-read from disk on every
// load so edits take effect without restarting the server. The optional
// input/output sections of the file describe the expected shapes for humans
// reading the template; they are carried through unvalidated.
package prompts

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Placeholder is the literal token replaced with caller text during rendering.
const Placeholder = "{{text}}"

// ErrNotFound is returned when the template file does not exist.
var ErrNotFound = errors.New("template file not found")

// ParseError indicates a template file that exists but cannot be used.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid template %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid template %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// GenerationConfig holds per-template generation parameters.
// Unset fields fall back to the completion client's defaults; Temperature is
// a pointer so an explicit 0 in the file is distinct from "not set".
type GenerationConfig struct {
	Temperature *float64 `yaml:"temperature" json:"temperature,omitempty"`
	MaxTokens   int      `yaml:"max_tokens" json:"max_tokens"`
}

// Template is a parsed prompt template. Immutable once parsed.
type Template struct {
	Model  string           `yaml:"model" json:"model,omitempty"`
	Config GenerationConfig `yaml:"config" json:"config"`
	Prompt string           `yaml:"prompt" json:"prompt"`

	// Input and Output document the template's expected shapes.
	// They are informational only and never validated.
	Input  map[string]any `yaml:"input,omitempty" json:"input,omitempty"`
	Output map[string]any `yaml:"output,omitempty" json:"output,omitempty"`
}

// rawTemplate mirrors Template with a pointer config so a missing
// config section is distinguishable from an empty one.
type rawTemplate struct {
	Model  string            `yaml:"model"`
	Config *GenerationConfig `yaml:"config"`
	Prompt string            `yaml:"prompt"`
	Input  map[string]any    `yaml:"input"`
	Output map[string]any    `yaml:"output"`
}

// Load reads and parses the template file at path.
// It returns an error wrapping ErrNotFound if the file does not exist and a
// *ParseError if the file is malformed or missing required fields.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse parses template YAML. The path is used for error reporting only.
func Parse(path string, data []byte) (*Template, error) {
	var raw rawTemplate
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Reason: "not valid YAML", Err: err}
	}
	if strings.TrimSpace(raw.Prompt) == "" {
		return nil, &ParseError{Path: path, Reason: "missing required field: prompt"}
	}
	if raw.Config == nil {
		return nil, &ParseError{Path: path, Reason: "missing required field: config"}
	}

	return &Template{
		Model:  raw.Model,
		Config: *raw.Config,
		Prompt: raw.Prompt,
		Input:  raw.Input,
		Output: raw.Output,
	}, nil
}

// Render substitutes caller text into the template's prompt.
//
// Only the first occurrence of Placeholder is replaced, and the caller text is
// inserted verbatim with no escaping. If the caller text itself contains the
// placeholder token it is not re-scanned. A template without the placeholder
// renders to its prompt text unchanged; that is a documented no-op rather
// than an error, so a fixed prompt can ignore its input.
func (t *Template) Render(text string) string {
	return strings.Replace(t.Prompt, Placeholder, text, 1)
}
