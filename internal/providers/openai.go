package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	OpenAIName = "openai"

	openAIDefaultModel       = "gpt-4o-mini"
	openAIDefaultTemperature = 0.7
	openAIDefaultMaxTokens   = 256
	openAIDefaultSystem      = "You are a helpful assistant that writes concise, faithful summaries."
)

// OpenAIConfig holds configuration for the OpenAI completion client.
type OpenAIConfig struct {
	APIKey       string
	Model        string   // Default model if the request doesn't set one
	Temperature  *float64 // Default sampling temperature; nil means 0.7, explicit 0 is honored
	MaxTokens    int      // Default output-length cap
	SystemPrompt string  // System turn fixed for the client's lifetime
	Timeout      time.Duration
	BaseURL      string       // Optional (tests)
	HTTPClient   *http.Client // Optional (tests)
}

// OpenAIClient implements LLMClient using the official OpenAI SDK.
//
// Every chat completion carries exactly two turns: the system instruction
// fixed at construction time, and the rendered prompt as the user turn.
// The client adds no retry or backoff of its own; whatever the SDK transport
// does by default is the only retry behavior in the process.
type OpenAIClient struct {
	apiKey       string
	model        string
	temperature  float64
	maxTokens    int
	systemPrompt string
	client       openai.Client
}

// NewOpenAIClient creates a new OpenAI completion client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	temperature := openAIDefaultTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = openAIDefaultMaxTokens
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = openAIDefaultSystem
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		temperature:  temperature,
		maxTokens:    cfg.MaxTokens,
		systemPrompt: cfg.SystemPrompt,
		client:       openai.NewClient(opts...),
	}
}

// Name returns the client identifier.
func (c *OpenAIClient) Name() string {
	return OpenAIName
}

// Configured reports whether an API key is set.
func (c *OpenAIClient) Configured() bool {
	return c.apiKey != ""
}

// DefaultModel returns the model used when a request doesn't set one.
func (c *OpenAIClient) DefaultModel() string {
	return c.model
}

// Complete sends a chat completion request and returns the generated text.
func (c *OpenAIClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	start := time.Now()

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	model := req.Model
	if model == "" {
		model = c.model
	}
	temperature := c.temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(maxTokens)),
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	return &CompletionResult{
		Content:          completion.Choices[0].Message.Content,
		PromptTokens:     int(completion.Usage.PromptTokens),
		CompletionTokens: int(completion.Usage.CompletionTokens),
		TotalTokens:      int(completion.Usage.TotalTokens),
		Provider:         OpenAIName,
		ModelUsed:        model,
		RequestID:        requestID,
		ExecutionTime:    time.Since(start),
	}, nil
}

// mapOpenAIError classifies SDK errors. Quota exhaustion is surfaced as an
// error wrapping ErrQuotaExceeded; everything else is passed through with the
// API message attached. The API signals exhausted quota as HTTP 429 with
// error code "insufficient_quota", distinct from transient rate limiting.
func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == "insufficient_quota" || apiErr.Type == "insufficient_quota" {
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.Message)
		}
		if apiErr.Message != "" {
			return fmt.Errorf("openai error (status %d): %s", apiErr.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("openai error (status %d)", apiErr.StatusCode)
	}
	return err
}
