package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/brieflyhq/briefly/internal/api"
	"github.com/brieflyhq/briefly/internal/prompts"
	"github.com/brieflyhq/briefly/internal/svcctx"
)

// HealthResponse is the response for the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary	Check server health
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health [get]
func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/health", &resp); err != nil {
				return err
			}
			fmt.Printf("Status: %s\n", resp.Status)
			return nil
		},
	}
}

// StatusResponse is the detailed status response.
type StatusResponse struct {
	Server   string         `json:"server"`
	Provider ProviderStatus `json:"provider"`
	Template TemplateStatus `json:"template"`
}

// ProviderStatus shows the completion provider state.
type ProviderStatus struct {
	Name       string `json:"name"`
	Credential string `json:"credential"` // "configured" or "missing"
}

// TemplateStatus shows whether the active template loads cleanly.
type TemplateStatus struct {
	Path   string `json:"path"`
	Status string `json:"status"` // "ok", "not_found", "invalid"
	Model  string `json:"model,omitempty"`
}

// StatusEndpoint handles GET /status.
type StatusEndpoint struct{}

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/status", e.handler
}

func (e *StatusEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary	Get detailed server status
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	StatusResponse
//	@Router		/status [get]
func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{Server: "running"}

	if llm := svcctx.LLMFrom(r.Context()); llm != nil {
		resp.Provider.Name = llm.Name()
		if llm.Configured() {
			resp.Provider.Credential = "configured"
		} else {
			resp.Provider.Credential = "missing"
		}
	} else {
		resp.Provider.Credential = "not_initialized"
	}

	if loader := svcctx.TemplatesFrom(r.Context()); loader != nil {
		resp.Template.Path = loader.Path()
		tpl, err := loader.Load()
		switch {
		case err == nil:
			resp.Template.Status = "ok"
			resp.Template.Model = tpl.Model
		case errors.Is(err, prompts.ErrNotFound):
			resp.Template.Status = "not_found"
		default:
			resp.Template.Status = "invalid"
		}
	} else {
		resp.Template.Status = "not_initialized"
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp StatusResponse
			if err := client.Get(cmd.Context(), "/status", &resp); err != nil {
				return err
			}
			fmt.Printf("Server: %s\n", resp.Server)
			fmt.Printf("Provider:\n")
			fmt.Printf("  Name:       %s\n", resp.Provider.Name)
			fmt.Printf("  Credential: %s\n", resp.Provider.Credential)
			fmt.Printf("Template:\n")
			fmt.Printf("  Path:   %s\n", resp.Template.Path)
			fmt.Printf("  Status: %s\n", resp.Template.Status)
			if resp.Template.Model != "" {
				fmt.Printf("  Model:  %s\n", resp.Template.Model)
			}
			return nil
		},
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the standard error envelope. Clients branch on Code,
// never on Message wording.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// writeError writes a JSON error response with just an error label.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
