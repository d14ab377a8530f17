// Package providers wraps remote text-generation APIs behind a small client
// interface so handlers and tests can swap implementations.
package providers

import (
	"context"
	"errors"
	"time"
)

// ErrQuotaExceeded marks a provider-reported quota exhaustion: the account
// cannot make further calls until billing or limits are resolved. Callers
// match it with errors.Is to map the condition to a distinct HTTP status.
var ErrQuotaExceeded = errors.New("provider quota exceeded")

// LLMClient issues completion requests against a text-generation API.
type LLMClient interface {
	// Complete sends a single completion request. Failures from the remote
	// call are propagated untouched apart from quota classification; there is
	// no retry or backoff at this layer.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)

	// Configured reports whether the client holds an API credential.
	Configured() bool

	// Name returns the client identifier (e.g. "openai").
	Name() string
}

// CompletionRequest is a request to an LLM. Unset fields fall back to the
// client's construction-time defaults.
type CompletionRequest struct {
	// Prompt is the fully rendered user turn.
	Prompt string `json:"prompt"`

	// Model selection (client default if empty).
	Model string `json:"model,omitempty"`

	// Generation parameters. Temperature is a pointer so an explicit 0
	// (deterministic sampling) is distinct from "not set".
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`

	// RequestID correlates logs across layers; generated if empty.
	RequestID string `json:"-"`
}

// CompletionResult is the response from a completion call.
type CompletionResult struct {
	Content string `json:"content"`

	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	Provider      string        `json:"provider"`
	ModelUsed     string        `json:"model_used"`
	RequestID     string        `json:"request_id"`
	ExecutionTime time.Duration `json:"execution_time"`
}
