package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != "3000" {
		t.Errorf("default port = %q, want 3000", cfg.Server.Port)
	}
	if cfg.OpenAI.APIKey != "${OPENAI_API_KEY}" {
		t.Error("expected openai API key placeholder")
	}
	if cfg.Prompts.Summarize == "" {
		t.Error("expected default summarize template path")
	}
	if cfg.OpenAI.Temperature == nil || *cfg.OpenAI.Temperature != 0.7 {
		t.Errorf("default temperature = %v, want 0.7", cfg.OpenAI.Temperature)
	}

	// The default template path must point at the seeded copy under the
	// briefly home directory, not at the current working directory.
	userHome, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("user home dir: %v", err)
	}
	want := filepath.Join(userHome, ".briefly", "prompts", "summarize.yaml")
	if cfg.Prompts.Summarize != want {
		t.Errorf("default summarize path = %q, want %q", cfg.Prompts.Summarize, want)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		os.Setenv("TEST_API_KEY", "secret123")
		defer os.Unsetenv("TEST_API_KEY")

		result := ResolveEnvVars("${TEST_API_KEY}")
		if result != "secret123" {
			t.Errorf("expected secret123, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestToProviderConfig(t *testing.T) {
	os.Setenv("TEST_OPENAI_KEY", "sk-test-123")
	defer os.Unsetenv("TEST_OPENAI_KEY")

	temperature := 0.2
	cfg := &Config{
		OpenAI: OpenAICfg{
			APIKey:         "${TEST_OPENAI_KEY}",
			Model:          "gpt-4o",
			Temperature:    &temperature,
			MaxTokens:      64,
			TimeoutSeconds: 30,
		},
	}

	pc := cfg.ToProviderConfig()
	if pc.APIKey != "sk-test-123" {
		t.Errorf("APIKey = %q, want resolved env value", pc.APIKey)
	}
	if pc.Model != "gpt-4o" {
		t.Errorf("Model = %q", pc.Model)
	}
	if pc.Timeout.Seconds() != 30 {
		t.Errorf("Timeout = %v, want 30s", pc.Timeout)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		configContent := `
server:
  port: "8181"
openai:
  model: gpt-4o
prompts:
  summarize: /etc/briefly/summarize.yaml
`
		if err := os.WriteFile(configFile, []byte(configContent), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cm, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("NewManager() error = %v", err)
		}

		cfg := cm.Get()
		if cfg.Server.Port != "8181" {
			t.Errorf("port = %q, want 8181", cfg.Server.Port)
		}
		if cfg.OpenAI.Model != "gpt-4o" {
			t.Errorf("model = %q, want gpt-4o", cfg.OpenAI.Model)
		}
		if cfg.Prompts.Summarize != "/etc/briefly/summarize.yaml" {
			t.Errorf("template path = %q", cfg.Prompts.Summarize)
		}
		// Untouched keys keep defaults.
		if cfg.OpenAI.MaxTokens != 256 {
			t.Errorf("max_tokens = %d, want default 256", cfg.OpenAI.MaxTokens)
		}
	})
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	content := string(data)
	for _, want := range []string{"server:", "openai:", "prompts:", "${OPENAI_API_KEY}"} {
		if !strings.Contains(content, want) {
			t.Errorf("written config missing %q:\n%s", want, content)
		}
	}
}
