package parser

import (
	"github.com/maltedev/product-scraper/internal/models"
)

type Parser interface {
	Extract(req models.ExtractionRequest) (models.ExtractionResult, models.Provenance)
}

// ProductParser routes each request to a strategy set by host and runs
// every field chain of that set. It holds no mutable state and is safe
// for concurrent use.
type ProductParser struct {
	strategies []*StrategySet
	fallback   *StrategySet
}

// NewProductParser returns a parser with the Amazon strategy and the
// generic fallback.
func NewProductParser() *ProductParser {
	return &ProductParser{
		strategies: []*StrategySet{NewAmazonStrategy()},
		fallback:   NewGenericStrategy(),
	}
}

// Select returns the strategy set used for rawURL.
func (p *ProductParser) Select(rawURL string) *StrategySet {
	return SelectStrategy(rawURL, p.strategies, p.fallback)
}

// Extract runs each field's chain independently. Fields no candidate
// matched stay absent.
func (p *ProductParser) Extract(req models.ExtractionRequest) (models.ExtractionResult, models.Provenance) {
	set := p.Select(req.URL)
	page := NewPage(req)

	result := models.NewExtractionResult()
	prov := models.Provenance{Strategy: set.Name}

	if name, from, ok := FirstMatch(page, set.Title); ok {
		result.Name = &name
		prov.Name = from
	}

	if price, from, ok := FirstMatch(page, set.Price); ok {
		result.Price = &price
		prov.Price = from
	}

	if image, from, ok := FirstMatch(page, set.Image); ok {
		result.Image = &image
		prov.Image = from
	}

	if variants, from, ok := FirstMatch(page, set.Variants); ok {
		result.Variants = append(result.Variants, variants...)
		prov.Variants = from
	}

	return result, prov
}
