package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brieflyhq/briefly/internal/api"
	"github.com/brieflyhq/briefly/internal/providers"
	"github.com/brieflyhq/briefly/internal/svcctx"
)

// Error labels and codes of the summarize error envelope. The labels are the
// documented external contract; the codes are what clients branch on.
const (
	errGenerateFailed = "Failed to generate summary"
	errQuotaExceeded  = "OpenAI API Quota Exceeded"

	CodeInvalidRequest    = "invalid_request"
	CodeMissingCredential = "missing_credentials"
	CodeTemplateError     = "template_error"
	CodeQuotaExceeded     = "quota_exceeded"
	CodeUpstreamError     = "upstream_error"
)

// SummarizeRequest is the request body for a summarize call.
type SummarizeRequest struct {
	Text string `json:"text"`
}

// SummarizeResponse is the success envelope for a summarize call.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// SummarizeEndpoint handles POST /api/summarize.
//
// Each request is a single pass: validate input, load the template fresh from
// disk, render the caller text into it, invoke the completion client once,
// and respond. Any failure short-circuits to the error envelope; quota
// exhaustion maps to 402 and everything else to 500.
type SummarizeEndpoint struct{}

func (e *SummarizeEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/summarize", e.handler
}

func (e *SummarizeEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Summarize text
//	@Description	Render the caller text into the summarize prompt template and generate a summary
//	@Tags			summarize
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SummarizeRequest	true	"Text to summarize"
//	@Success		200		{object}	SummarizeResponse
//	@Failure		402		{object}	ErrorResponse	"Provider quota exhausted"
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/summarize [post]
func (e *SummarizeEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := svcctx.LoggerFrom(ctx)

	// ValidateInput
	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		e.fail(w, logger, http.StatusInternalServerError, CodeInvalidRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		e.fail(w, logger, http.StatusInternalServerError, CodeInvalidRequest, "missing required field: text")
		return
	}

	llm := svcctx.LLMFrom(ctx)
	if llm == nil || !llm.Configured() {
		e.fail(w, logger, http.StatusInternalServerError, CodeMissingCredential, "OpenAI API key is not configured")
		return
	}

	// LoadTemplate: re-read from disk so template edits apply immediately.
	loader := svcctx.TemplatesFrom(ctx)
	if loader == nil {
		e.fail(w, logger, http.StatusInternalServerError, CodeTemplateError, "template loader not initialized")
		return
	}
	tpl, err := loader.Load()
	if err != nil {
		e.fail(w, logger, http.StatusInternalServerError, CodeTemplateError, err.Error())
		return
	}

	// Render + Invoke
	result, err := llm.Complete(ctx, &providers.CompletionRequest{
		Prompt:      tpl.Render(req.Text),
		Model:       tpl.Model,
		Temperature: tpl.Config.Temperature,
		MaxTokens:   tpl.Config.MaxTokens,
	})
	if err != nil {
		if errors.Is(err, providers.ErrQuotaExceeded) {
			if logger != nil {
				logger.Error("summarize failed: provider quota exhausted", "error", err)
			}
			writeJSON(w, http.StatusPaymentRequired, ErrorResponse{
				Error:   errQuotaExceeded,
				Code:    CodeQuotaExceeded,
				Message: err.Error(),
			})
			return
		}
		e.fail(w, logger, http.StatusInternalServerError, CodeUpstreamError, err.Error())
		return
	}

	if logger != nil {
		logger.Info("summary generated",
			"request_id", result.RequestID,
			"model", result.ModelUsed,
			"total_tokens", result.TotalTokens,
		)
	}
	writeJSON(w, http.StatusOK, SummarizeResponse{Summary: result.Content})
}

// fail logs and writes the generic failure envelope.
func (e *SummarizeEndpoint) fail(w http.ResponseWriter, logger *slog.Logger, status int, code, message string) {
	if logger != nil {
		logger.Error("summarize failed", "code", code, "message", message)
	}
	writeJSON(w, status, ErrorResponse{
		Error:   errGenerateFailed,
		Code:    code,
		Message: message,
	})
}

func (e *SummarizeEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize [text]",
		Short: "Summarize text via the running server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp SummarizeResponse
			if err := client.Post(cmd.Context(), "/api/summarize", SummarizeRequest{Text: args[0]}, &resp); err != nil {
				return err
			}
			fmt.Println(resp.Summary)
			return nil
		},
	}
}
