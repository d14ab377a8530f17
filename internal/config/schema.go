package config

import (
	"path/filepath"

	"github.com/brieflyhq/briefly/internal/home"
)

// Config holds briefly configuration.
// Loaded from ./config.yaml or ~/.briefly/config.yaml.
type Config struct {
	Server  ServerCfg  `mapstructure:"server" yaml:"server"`
	OpenAI  OpenAICfg  `mapstructure:"openai" yaml:"openai"`
	Prompts PromptsCfg `mapstructure:"prompts" yaml:"prompts"`
}

// ServerCfg configures the HTTP listener.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// OpenAICfg configures the completion provider.
// Temperature is a pointer so an explicit 0 in the file is distinct from
// "not set".
type OpenAICfg struct {
	APIKey         string   `mapstructure:"api_key" yaml:"api_key"` // Supports ${ENV_VAR} syntax
	Model          string   `mapstructure:"model" yaml:"model"`     // Default model when the template sets none
	Temperature    *float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens      int      `mapstructure:"max_tokens" yaml:"max_tokens"`
	SystemPrompt   string   `mapstructure:"system_prompt" yaml:"system_prompt"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	BaseURL        string   `mapstructure:"base_url" yaml:"base_url"` // Optional API endpoint override
}

// PromptsCfg locates prompt template files.
type PromptsCfg struct {
	// Summarize is the path to the summarize template, re-read per request.
	Summarize string `mapstructure:"summarize" yaml:"summarize"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	temperature := 0.7
	return &Config{
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "3000",
		},
		OpenAI: OpenAICfg{
			APIKey:         "${OPENAI_API_KEY}",
			Model:          "gpt-4o-mini",
			Temperature:    &temperature,
			MaxTokens:      256,
			SystemPrompt:   "You are a helpful assistant that writes concise, faithful summaries.",
			TimeoutSeconds: 120,
		},
		Prompts: PromptsCfg{
			Summarize: defaultSummarizePath(),
		},
	}
}

// defaultSummarizePath points the template at the seeded copy in the briefly
// home directory, so a fresh install works from any working directory. Falls
// back to a checkout-relative path when the home directory is unresolvable.
func defaultSummarizePath() string {
	h, err := home.New("")
	if err != nil {
		return filepath.Join("prompts", "summarize.yaml")
	}
	return h.SummarizeTemplatePath()
}
