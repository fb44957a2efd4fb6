// Package server is the browser-facing proxy that forwards quiz generation
// requests to the Anthropic API, keeping the API key out of page JavaScript.
package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const defaultUpstreamBaseURL = "https://api.anthropic.com"

const anthropicVersion = "2023-06-01"

// Config holds proxy server settings.
type Config struct {
	// UpstreamBaseURL overrides the Anthropic API base URL. Tests point it
	// at a local stub.
	UpstreamBaseURL string

	// Client is the HTTP client used for upstream calls. Defaults to a
	// client with a 60s timeout.
	Client *http.Client
}

// Server proxies Anthropic message requests for the browser frontend.
type Server struct {
	upstream string
	client   *http.Client
}

// New creates a Server with the given config.
func New(cfg Config) *Server {
	upstream := cfg.UpstreamBaseURL
	if upstream == "" {
		upstream = defaultUpstreamBaseURL
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Server{upstream: upstream, client: client}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Post("/api/anthropic/messages", s.handleMessages)
	r.Get("/health", s.handleHealth)

	return r
}

// The browser payload is the caller's API key plus the Anthropic request
// body; the key moves into a header and the rest is forwarded verbatim.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var apiKey string
	if raw, ok := fields["apiKey"]; ok {
		_ = json.Unmarshal(raw, &apiKey)
		delete(fields, "apiKey")
	}
	if apiKey == "" {
		writeError(w, http.StatusBadRequest, "API key is required")
		return
	}

	forward, err := json.Marshal(fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode upstream request")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost,
		s.upstream+"/v1/messages", bytes.NewReader(forward))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build upstream request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("proxy error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Proxy server error",
			"message": err.Error(),
		})
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to read upstream response")
		return
	}
	if resp.StatusCode >= 400 {
		log.Printf("anthropic API error: %d %s", resp.StatusCode, data)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
