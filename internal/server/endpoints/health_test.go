package endpoints

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brieflyhq/briefly/internal/providers"
	"github.com/brieflyhq/briefly/internal/svcctx"
)

func doGet(t *testing.T, ep interface {
	Route() (string, string, http.HandlerFunc)
}, svcs *svcctx.Services) *httptest.ResponseRecorder {
	t.Helper()

	_, path, handler := ep.Route()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if svcs != nil {
		req = req.WithContext(svcctx.WithServices(context.Background(), svcs))
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doGet(t, &HealthEndpoint{}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}

func TestStatus(t *testing.T) {
	t.Run("configured provider and valid template", func(t *testing.T) {
		svcs := newServices(t, providers.NewMockClient(), foxTemplate)
		rec := doGet(t, &StatusEndpoint{}, svcs)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp StatusResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Server != "running" {
			t.Errorf("server = %q", resp.Server)
		}
		if resp.Provider.Credential != "configured" {
			t.Errorf("credential = %q", resp.Provider.Credential)
		}
		if resp.Template.Status != "ok" {
			t.Errorf("template status = %q", resp.Template.Status)
		}
		if resp.Template.Model != "gpt-4o-mini" {
			t.Errorf("template model = %q", resp.Template.Model)
		}
	})

	t.Run("missing credential and template", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.Unconfigured = true
		svcs := newServices(t, mock, "")
		rec := doGet(t, &StatusEndpoint{}, svcs)

		var resp StatusResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Provider.Credential != "missing" {
			t.Errorf("credential = %q", resp.Provider.Credential)
		}
		if resp.Template.Status != "not_found" {
			t.Errorf("template status = %q", resp.Template.Status)
		}
	})
}

func TestGetPrompt(t *testing.T) {
	t.Run("valid template", func(t *testing.T) {
		svcs := newServices(t, providers.NewMockClient(), foxTemplate)
		rec := doGet(t, &GetPromptEndpoint{}, svcs)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
		}
		var resp PromptResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Template == nil {
			t.Fatal("expected template in response")
		}
		if resp.Template.Prompt != "Summarize: {{text}}" {
			t.Errorf("prompt = %q", resp.Template.Prompt)
		}
	})

	t.Run("missing template file", func(t *testing.T) {
		svcs := newServices(t, providers.NewMockClient(), "")
		rec := doGet(t, &GetPromptEndpoint{}, svcs)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
