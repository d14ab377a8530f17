package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAICompleteSuccess(t *testing.T) {
	var payload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("unmarshal body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-test",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "A fox."}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 3, "total_tokens": 15}
		}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{
		APIKey:       "test-key",
		SystemPrompt: "You are a summarizer.",
		BaseURL:      server.URL,
	})

	result, err := client.Complete(context.Background(), &CompletionRequest{
		Prompt:      "Summarize: The quick brown fox",
		Model:       "gpt-4o-mini",
		Temperature: floatPtr(0.4),
		MaxTokens:   128,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if result.Content != "A fox." {
		t.Errorf("Content = %q, want %q", result.Content, "A fox.")
	}
	if result.TotalTokens != 15 {
		t.Errorf("TotalTokens = %d, want 15", result.TotalTokens)
	}
	if result.RequestID == "" {
		t.Error("expected generated RequestID")
	}

	if got, _ := payload["model"].(string); got != "gpt-4o-mini" {
		t.Fatalf("expected model gpt-4o-mini, got %q", got)
	}
	msgs, _ := payload["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected two conversation turns, got %d", len(msgs))
	}
	system, _ := msgs[0].(map[string]any)
	if system["role"] != "system" || system["content"] != "You are a summarizer." {
		t.Errorf("unexpected system turn: %v", system)
	}
	user, _ := msgs[1].(map[string]any)
	if user["role"] != "user" || user["content"] != "Summarize: The quick brown fox" {
		t.Errorf("unexpected user turn: %v", user)
	}
}

func TestOpenAICompleteDefaults(t *testing.T) {
	var payload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "ok"}}],
			"usage": {"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2}
		}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{
		APIKey:      "test-key",
		Model:       "gpt-4o",
		Temperature: floatPtr(0.3),
		MaxTokens:   64,
		BaseURL:     server.URL,
	})

	// Request leaves everything unset; client defaults fill in.
	if _, err := client.Complete(context.Background(), &CompletionRequest{Prompt: "hi"}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if got, _ := payload["model"].(string); got != "gpt-4o" {
		t.Errorf("expected default model gpt-4o, got %q", got)
	}
	if got, _ := payload["temperature"].(float64); got != 0.3 {
		t.Errorf("expected default temperature 0.3, got %v", got)
	}
	if got, _ := payload["max_tokens"].(float64); got != 64 {
		t.Errorf("expected default max_tokens 64, got %v", got)
	}
}

func TestOpenAICompleteExplicitZeroTemperature(t *testing.T) {
	var payload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "ok"}}],
			"usage": {"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2}
		}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})

	// An explicit temperature of 0 selects deterministic sampling and must
	// not be swapped for the client default.
	if _, err := client.Complete(context.Background(), &CompletionRequest{
		Prompt:      "hi",
		Temperature: floatPtr(0),
	}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	got, ok := payload["temperature"].(float64)
	if !ok {
		t.Fatal("temperature missing from wire payload")
	}
	if got != 0 {
		t.Errorf("explicit temperature 0 was sent as %v, want 0", got)
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestOpenAICompleteQuotaExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"You exceeded your current quota, please check your plan and billing details.","type":"insufficient_quota","param":null,"code":"insufficient_quota"}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})

	_, err := client.Complete(context.Background(), &CompletionRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error for insufficient_quota response")
	}
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %T: %v", err, err)
	}
}

func TestOpenAICompleteOtherAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"The server had an error","type":"server_error","param":null,"code":null}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})

	_, err := client.Complete(context.Background(), &CompletionRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("non-quota failure must not classify as quota: %v", err)
	}
}

func TestOpenAIConfigured(t *testing.T) {
	if NewOpenAIClient(OpenAIConfig{}).Configured() {
		t.Error("client without key reports Configured() = true")
	}
	if !NewOpenAIClient(OpenAIConfig{APIKey: "k"}).Configured() {
		t.Error("client with key reports Configured() = false")
	}
}
