package providers

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

const MockClientName = "mock"

// MockClient is an LLMClient for testing.
type MockClient struct {
	// Configurable behavior
	Latency      time.Duration
	ResponseText string
	Err          error // Returned verbatim from Complete when set
	Unconfigured bool  // Makes Configured() report false

	// State
	requestCount atomic.Int64
	lastRequest  atomic.Pointer[CompletionRequest]
}

// NewMockClient creates a new mock client with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{
		ResponseText: "mock response",
	}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// Configured reports the configured credential state.
func (c *MockClient) Configured() bool {
	return !c.Unconfigured
}

// Requests returns how many Complete calls were made.
func (c *MockClient) Requests() int {
	return int(c.requestCount.Load())
}

// LastRequest returns the most recent request, or nil if none was made.
func (c *MockClient) LastRequest() *CompletionRequest {
	return c.lastRequest.Load()
}

// Complete returns the configured response or error.
func (c *MockClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	start := time.Now()
	count := c.requestCount.Add(1)
	c.lastRequest.Store(req)

	if c.Latency > 0 {
		select {
		case <-time.After(c.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if c.Err != nil {
		return nil, c.Err
	}

	return &CompletionResult{
		Content:       c.ResponseText,
		Provider:      MockClientName,
		ModelUsed:     req.Model,
		RequestID:     fmt.Sprintf("mock-%d", count),
		ExecutionTime: time.Since(start),
	}, nil
}
