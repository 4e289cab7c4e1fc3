package scraper

import (
	"context"
	"errors"

	"github.com/maltedev/product-scraper/internal/fetcher"
	"github.com/maltedev/product-scraper/internal/models"
)

var (
	ErrMissingURL       = errors.New("url required")
	ErrInvalidURL       = errors.New("invalid URL")
	ErrFetchFailed      = fetcher.ErrFetchFailed
	ErrExtractionFailed = errors.New("could not extract details")
)

type Scraper interface {
	Scrape(ctx context.Context, url string) (*models.ExtractionResult, error)
}

// Fetcher returns the markup behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Publisher announces usable results to downstream consumers.
type Publisher interface {
	PublishProductScraped(ctx context.Context, url string, result *models.ExtractionResult, prov models.Provenance) error
}
