package scraper

import (
	"fmt"

	"github.com/maltedev/product-scraper/internal/models"
)

// Assemble applies the usability gate: a record needs a name or a price.
// Any other combination of present and absent fields is a valid result.
func Assemble(result models.ExtractionResult) (*models.ExtractionResult, error) {
	if result.Variants == nil {
		result.Variants = make([]string, 0)
	}

	if !result.IsUsable() {
		return nil, fmt.Errorf("%w: no name or price found", ErrExtractionFailed)
	}

	return &result, nil
}
