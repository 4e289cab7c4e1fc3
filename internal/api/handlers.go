package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/maltedev/product-scraper/internal/config"
	"github.com/maltedev/product-scraper/internal/scraper"
)

type Handlers struct {
	scraper      scraper.Scraper
	service      config.ServiceConfig
	maxBodyBytes int64
	logger       *slog.Logger
}

func NewHandlers(s scraper.Scraper, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		scraper:      s,
		service:      cfg.Service,
		maxBodyBytes: cfg.Server.MaxBodyBytes,
		logger:       logger.With("component", "api"),
	}
}

// ScrapeRequest is the body of POST /scrape. URL is decoded loosely so a
// non-string value is reported as an invalid URL, not a bad body.
type ScrapeRequest struct {
	URL any `json:"url"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// Scrape handles product extraction requests
func (h *Handlers) Scrape(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var rawURL string
	switch v := req.URL.(type) {
	case nil:
	case string:
		rawURL = v
	default:
		err := fmt.Errorf("%w: url must be a string, got %T", scraper.ErrInvalidURL, v)
		h.logger.Warn("scrape rejected", "error", err)
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if rawURL == "" {
		h.respondError(w, http.StatusBadRequest, "url required")
		return
	}

	result, err := h.scraper.Scrape(r.Context(), rawURL)
	switch {
	case err == nil:
		h.respondJSON(w, http.StatusOK, result)
	case errors.Is(err, scraper.ErrMissingURL):
		h.respondError(w, http.StatusBadRequest, "url required")
	case errors.Is(err, scraper.ErrExtractionFailed):
		h.respondError(w, http.StatusUnprocessableEntity, "Could not extract details")
	default:
		h.logger.Error("scrape failed", "url", rawURL, "error", err)
		h.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// Health reports service identity
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, HealthResponse{
		OK:      true,
		Service: h.service.Name,
		Version: h.service.Version,
	})
}

// Helper methods
func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
