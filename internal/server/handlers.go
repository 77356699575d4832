package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/raaihank/redact-sentinel/internal/redact"
	"github.com/raaihank/redact-sentinel/internal/websocket"
	"go.uber.org/zap"
)

// redactRequest is the wire shape of a redaction call.
type redactRequest struct {
	Text               string                 `json:"text"`
	Mode               string                 `json:"mode,omitempty"`
	Categories         []string               `json:"categories,omitempty"`
	PreserveAudioTerms *bool                  `json:"preserve_audio_terms,omitempty"`
	CustomPatterns     []redact.CustomPattern `json:"custom_patterns,omitempty"`
	Whitelist          []string               `json:"whitelist,omitempty"`
}

// errorResponse is the wire shape of a failed call.
type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// handleRedact decodes a request, runs the engine (or serves a cached
// result) and relays the outcome unmodified.
func (s *Server) handleRedact(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := getRequestID(r.Context())
	log := s.logger.WithRequestID(requestID)

	r.Body = http.MaxBytesReader(w, r.Body, s.config.Server.MaxBodyBytes)

	var req redactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, &redact.Error{
			Kind:    redact.ErrorKindValidation,
			Message: "malformed request body: " + err.Error(),
		})
		return
	}

	cfg := req.toConfig()

	// Cache lookup: the engine is deterministic, so identical requests can
	// be replayed from cache.
	var cacheKey string
	if s.cache != nil {
		cacheKey = s.cache.Key(req.Text, canonicalConfig(cfg))
		if payload, err := s.cache.Get(r.Context(), cacheKey); err == nil && payload != nil {
			s.broadcastFromPayload(requestID, payload, time.Since(start), true)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(payload)
			return
		}
	}

	result, err := s.engine.Redact(req.Text, cfg)
	if err != nil {
		var engineErr *redact.Error
		if errors.As(err, &engineErr) {
			writeError(w, http.StatusBadRequest, engineErr)
			return
		}
		log.Error("Redaction failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, &redact.Error{
			Kind:    "internal_error",
			Message: "redaction failed",
		})
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		log.Error("Failed to marshal result", zap.Error(err))
		writeError(w, http.StatusInternalServerError, &redact.Error{
			Kind:    "internal_error",
			Message: "failed to encode result",
		})
		return
	}

	if s.cache != nil {
		if err := s.cache.Set(r.Context(), cacheKey, payload); err != nil {
			log.Debug("Result cache store failed", zap.Error(err))
		}
	}

	s.wsHub.BroadcastEvent(websocket.Event{
		Type:      websocket.EventTypeRedaction,
		Timestamp: time.Now(),
		RequestID: requestID,
		Data: websocket.RedactionEvent{
			RequestID:        requestID,
			Mode:             string(result.Metadata.Mode),
			CountsByCategory: result.Metadata.CountsByCategory,
			TotalRedacted:    result.Metadata.TotalRedacted,
			OriginalLength:   result.Metadata.OriginalLength,
			RedactedLength:   result.Metadata.RedactedLength,
			ProcessingMS:     float64(time.Since(start).Nanoseconds()) / 1e6,
		},
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// handleVocabulary lists the built-in protected terms.
func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"terms": redact.Vocabulary(),
		"extra": s.config.Redaction.ExtraVocabulary,
	})
}

// toConfig converts the wire request into an engine config.
// preserve_audio_terms defaults to true when omitted.
func (req *redactRequest) toConfig() redact.Config {
	preserve := true
	if req.PreserveAudioTerms != nil {
		preserve = *req.PreserveAudioTerms
	}

	categories := make([]redact.Category, 0, len(req.Categories))
	for _, c := range req.Categories {
		categories = append(categories, redact.Category(c))
	}

	return redact.Config{
		Mode:                redact.Mode(req.Mode),
		Categories:          categories,
		PreserveDomainTerms: preserve,
		CustomPatterns:      req.CustomPatterns,
		Whitelist:           req.Whitelist,
	}
}

// canonicalConfig flattens a config into a deterministic cache-key string.
func canonicalConfig(cfg redact.Config) string {
	var b strings.Builder
	b.WriteString(string(cfg.Mode))
	b.WriteByte('|')
	for _, c := range cfg.Categories {
		b.WriteString(string(c))
		b.WriteByte(',')
	}
	b.WriteByte('|')
	if cfg.PreserveDomainTerms {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	b.WriteByte('|')
	for _, p := range cfg.CustomPatterns {
		b.WriteString(p.Name)
		b.WriteByte('\x00')
		b.WriteString(p.Pattern)
		b.WriteByte('\x00')
		b.WriteString(p.Replacement)
		b.WriteByte(',')
	}
	b.WriteByte('|')
	for _, wl := range cfg.Whitelist {
		b.WriteString(wl)
		b.WriteByte(',')
	}
	return b.String()
}

// broadcastFromPayload emits a redaction event for a cache hit by decoding
// the cached result.
func (s *Server) broadcastFromPayload(requestID string, payload []byte, elapsed time.Duration, cacheHit bool) {
	var result redact.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return
	}

	s.wsHub.BroadcastEvent(websocket.Event{
		Type:      websocket.EventTypeRedaction,
		Timestamp: time.Now(),
		RequestID: requestID,
		Data: websocket.RedactionEvent{
			RequestID:        requestID,
			Mode:             string(result.Metadata.Mode),
			CountsByCategory: result.Metadata.CountsByCategory,
			TotalRedacted:    result.Metadata.TotalRedacted,
			OriginalLength:   result.Metadata.OriginalLength,
			RedactedLength:   result.Metadata.RedactedLength,
			CacheHit:         cacheHit,
			ProcessingMS:     float64(elapsed.Nanoseconds()) / 1e6,
		},
	})
}

// writeError writes a structured failure. Callers never receive partially
// redacted text alongside an error.
func writeError(w http.ResponseWriter, status int, err *redact.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{
		Kind:    string(err.Kind),
		Message: err.Message,
	})
}
