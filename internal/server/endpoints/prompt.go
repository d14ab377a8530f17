package endpoints

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/brieflyhq/briefly/internal/api"
	"github.com/brieflyhq/briefly/internal/prompts"
	"github.com/brieflyhq/briefly/internal/svcctx"
)

// PromptResponse describes the currently active summarize template.
type PromptResponse struct {
	Path     string           `json:"path"`
	Template *prompts.Template `json:"template"`
}

// GetPromptEndpoint handles GET /api/prompt.
// The template is loaded fresh from disk, so the response always reflects the
// file's current contents.
type GetPromptEndpoint struct{}

func (e *GetPromptEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/prompt", e.handler
}

func (e *GetPromptEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary	Show the active prompt template
//	@Tags		summarize
//	@Produce	json
//	@Success	200	{object}	PromptResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/api/prompt [get]
func (e *GetPromptEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	loader := svcctx.TemplatesFrom(r.Context())
	if loader == nil {
		writeError(w, http.StatusInternalServerError, "template loader not initialized")
		return
	}

	tpl, err := loader.Load()
	if err != nil {
		if errors.Is(err, prompts.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, PromptResponse{Path: loader.Path(), Template: tpl})
}

func (e *GetPromptEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Show the active prompt template",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp PromptResponse
			if err := client.Get(cmd.Context(), "/api/prompt", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
