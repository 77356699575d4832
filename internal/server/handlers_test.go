package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raaihank/redact-sentinel/internal/config"
	"github.com/raaihank/redact-sentinel/internal/logger"
	"github.com/raaihank/redact-sentinel/internal/redact"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.GetDefaults()
	cfg.Cache.Enabled = false

	srv, err := New(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}

func postRedact(t *testing.T, srv *Server, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/redact", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleRedact(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Success", func(t *testing.T) {
		rec := postRedact(t, srv, map[string]interface{}{
			"text":       "Contact John Smith at john.smith@email.com or call 555-123-4567. Used Neumann U87 microphone.",
			"mode":       "replace",
			"categories": []string{"names", "emails", "phones"},
		})

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}

		var result redact.Result
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		want := "Contact [NAME] at [EMAIL] or call [PHONE]. Used Neumann U87 microphone."
		if result.RedactedText != want {
			t.Errorf("got %q, want %q", result.RedactedText, want)
		}
		if result.Metadata.TotalRedacted != 3 {
			t.Errorf("total redacted = %d, want 3", result.Metadata.TotalRedacted)
		}
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		rec := postRedact(t, srv, map[string]interface{}{
			"text": "short",
			"mode": "replace",
		})

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}

		var errResp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
			t.Fatalf("failed to decode error: %v", err)
		}
		if errResp.Kind != string(redact.ErrorKindValidation) {
			t.Errorf("kind = %q, want %q", errResp.Kind, redact.ErrorKindValidation)
		}
		if errResp.Message == "" {
			t.Error("error message empty")
		}
	})

	t.Run("UnsupportedMode", func(t *testing.T) {
		rec := postRedact(t, srv, map[string]interface{}{
			"text": "this text is long enough to pass",
			"mode": "scramble",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("MalformedBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/redact", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("PreserveDefaultsToTrue", func(t *testing.T) {
		rec := postRedact(t, srv, map[string]interface{}{
			"text":       "Mixing on Pro Tools with the house engineer today",
			"mode":       "replace",
			"categories": []string{"names"},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}

		var result redact.Result
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if result.Metadata.TotalRedacted != 0 {
			t.Errorf("domain term redacted with default preservation: %q", result.RedactedText)
		}
	})
}

func TestHandleVocabulary(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/vocabulary", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Terms []string `json:"terms"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Terms) == 0 {
		t.Error("vocabulary empty")
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestCanonicalConfigDeterministic(t *testing.T) {
	cfg := redact.Config{
		Mode:                redact.ModeMask,
		Categories:          []redact.Category{redact.CategoryNames, redact.CategoryEmails},
		PreserveDomainTerms: true,
		Whitelist:           []string{"Smith Recording Studio"},
	}

	if canonicalConfig(cfg) != canonicalConfig(cfg) {
		t.Error("canonical config not deterministic")
	}

	other := cfg
	other.Mode = redact.ModeHash
	if canonicalConfig(cfg) == canonicalConfig(other) {
		t.Error("different configs canonicalize identically")
	}
}
