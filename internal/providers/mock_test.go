package providers

import (
	"context"
	"errors"
	"testing"
)

func TestMockClient(t *testing.T) {
	t.Run("returns configured response", func(t *testing.T) {
		mock := NewMockClient()
		mock.ResponseText = "A fox."

		result, err := mock.Complete(context.Background(), &CompletionRequest{Prompt: "hi"})
		if err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
		if result.Content != "A fox." {
			t.Errorf("Content = %q", result.Content)
		}
		if mock.Requests() != 1 {
			t.Errorf("Requests() = %d, want 1", mock.Requests())
		}
		if mock.LastRequest().Prompt != "hi" {
			t.Errorf("LastRequest().Prompt = %q", mock.LastRequest().Prompt)
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockClient()
		mock.Err = ErrQuotaExceeded

		_, err := mock.Complete(context.Background(), &CompletionRequest{Prompt: "hi"})
		if !errors.Is(err, ErrQuotaExceeded) {
			t.Fatalf("expected configured error, got %v", err)
		}
	})

	t.Run("unconfigured credential state", func(t *testing.T) {
		mock := NewMockClient()
		mock.Unconfigured = true
		if mock.Configured() {
			t.Error("Configured() = true, want false")
		}
	})
}
