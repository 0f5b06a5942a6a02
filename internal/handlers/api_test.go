package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ternarybob/aperio/internal/common"
)

func TestHealthHandler(t *testing.T) {
	handler := NewAPIHandler(common.NewDefaultConfig())
	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	response := decodeResponse(t, rec)
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "aperio" {
		t.Errorf("Expected service 'aperio', got %v", response["service"])
	}
	if response["model"] != "gemini-3-pro-preview" {
		t.Errorf("Expected default Gemini model, got %v", response["model"])
	}
	if int(response["dpi"].(float64)) != 300 {
		t.Errorf("Expected dpi 300, got %v", response["dpi"])
	}
}

func TestHealthHandler_ClaudeProvider(t *testing.T) {
	config := common.NewDefaultConfig()
	config.LLM.DefaultProvider = common.LLMProviderClaude

	handler := NewAPIHandler(config)
	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthHandler(rec, req)

	response := decodeResponse(t, rec)
	if response["model"] != config.Claude.Model {
		t.Errorf("Expected Claude model %q, got %v", config.Claude.Model, response["model"])
	}
}

func TestVersionHandler(t *testing.T) {
	handler := NewAPIHandler(common.NewDefaultConfig())
	req := httptest.NewRequest("GET", "/api/version", nil)
	rec := httptest.NewRecorder()

	handler.VersionHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	response := decodeResponse(t, rec)
	for _, key := range []string{"version", "build", "git_commit"} {
		if _, ok := response[key]; !ok {
			t.Errorf("Expected %q key in version response", key)
		}
	}
}

func TestNotFoundHandler(t *testing.T) {
	handler := NewAPIHandler(common.NewDefaultConfig())
	req := httptest.NewRequest("GET", "/api/nope", nil)
	rec := httptest.NewRecorder()

	handler.NotFoundHandler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}

	response := decodeResponse(t, rec)
	if response["path"] != "/api/nope" {
		t.Errorf("Expected path in response, got %v", response["path"])
	}
}
