package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/maltedev/product-scraper/internal/models"
	"github.com/maltedev/product-scraper/internal/monitoring"
	"github.com/maltedev/product-scraper/internal/parser"
)

// Service fetches a product page, runs the extraction chains over it and
// gates the result. Each call is independent; the service holds no
// per-request state.
type Service struct {
	fetcher   Fetcher
	parser    parser.Parser
	publisher Publisher
	metrics   *monitoring.Metrics
	logger    *slog.Logger
}

// NewService wires a scrape service. publisher may be nil, in which case
// results are not announced.
func NewService(f Fetcher, p parser.Parser, publisher Publisher, metrics *monitoring.Metrics, logger *slog.Logger) *Service {
	return &Service{
		fetcher:   f,
		parser:    p,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger.With("component", "scraper"),
	}
}

// Scrape returns the usable record for rawURL. Errors match ErrMissingURL,
// ErrInvalidURL, ErrFetchFailed or ErrExtractionFailed.
func (s *Service) Scrape(ctx context.Context, rawURL string) (*models.ExtractionResult, error) {
	target, err := ValidateURL(rawURL)
	if err != nil {
		s.metrics.IncScrape("", monitoring.OutcomeInvalidInput)
		return nil, err
	}

	start := time.Now()
	markup, err := s.fetcher.Fetch(ctx, target)
	s.metrics.ObserveFetch(time.Since(start))
	if err != nil {
		s.metrics.IncScrape("", monitoring.OutcomeFetchFailed)
		s.logger.Warn("failed to fetch page", "url", target, "error", err)
		if !errors.Is(err, ErrFetchFailed) {
			err = fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
		return nil, err
	}

	return s.Extract(ctx, models.ExtractionRequest{URL: target, Markup: markup})
}

// Extract runs the chains over markup already in hand and applies the
// usability gate.
func (s *Service) Extract(ctx context.Context, req models.ExtractionRequest) (*models.ExtractionResult, error) {
	extracted, prov := s.parser.Extract(req)
	s.metrics.ObserveProvenance(prov)

	result, err := Assemble(extracted)
	if err != nil {
		s.metrics.IncScrape(prov.Strategy, monitoring.OutcomeUnusable)
		s.logger.Info("no usable product details", "url", req.URL, "strategy", prov.Strategy)
		return nil, err
	}

	s.metrics.IncScrape(prov.Strategy, monitoring.OutcomeSuccess)
	s.logger.Info("extracted product",
		"url", req.URL,
		"strategy", prov.Strategy,
		"fields", prov.Matched(),
		"name_from", prov.Name,
		"price_from", prov.Price,
		"image_from", prov.Image,
		"variants_from", prov.Variants,
	)

	if s.publisher != nil {
		if err := s.publisher.PublishProductScraped(ctx, req.URL, result, prov); err != nil {
			s.logger.Error("failed to publish scrape event", "url", req.URL, "error", err)
		}
	}

	return result, nil
}

// ValidateURL checks that rawURL is an absolute http(s) URL with a host.
// Only the empty string counts as missing; a blank one is invalid.
func ValidateURL(rawURL string) (string, error) {
	if rawURL == "" {
		return "", ErrMissingURL
	}
	rawURL = strings.TrimSpace(rawURL)

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	return u.String(), nil
}
