package parser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maltedev/product-scraper/internal/models"
)

func TestProductParser_Select(t *testing.T) {
	p := NewProductParser()

	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.amazon.com/dp/B09B8V1LZ3", StrategyAmazon},
		{"https://www.amazon.co.uk/dp/B09B8V1LZ3?th=1", StrategyAmazon},
		{"https://WWW.AMAZON.DE/dp/B09B8V1LZ3", StrategyAmazon},
		{"https://smile.amazon.com/gp/product/B09B8V1LZ3", StrategyAmazon},
		{"https://shop.example.com/amazon.html", StrategyGeneric},
		{"https://amazonia.example.com/item", StrategyGeneric},
		{"https://www.etsy.com/listing/1", StrategyGeneric},
		{"not a url", StrategyGeneric},
		{"", StrategyGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.Select(tt.url).Name)
		})
	}
}

func TestProductParser_ExtractIsIdempotent(t *testing.T) {
	req := models.ExtractionRequest{
		URL: "https://www.amazon.com/dp/B09B8V1LZ3",
		Markup: `<span id="productTitle"> Echo Dot </span>
			<span class="a-offscreen">$49.99</span>
			"hiRes":"https://m.media-amazon.com/images/I/a.jpg"
			"color_name":"Charcoal"`,
	}
	p := NewProductParser()

	first, firstProv := p.Extract(req)
	second, secondProv := p.Extract(req)

	assert.Equal(t, first, second)
	assert.Equal(t, firstProv, secondProv)
	assert.Equal(t, "Echo Dot", *first.Name)
	assert.Equal(t, 49.99, *first.Price)
	assert.Equal(t, []string{"Color: Charcoal"}, first.Variants)
}

func TestProductParser_ConcurrentExtract(t *testing.T) {
	p := NewProductParser()
	req := models.ExtractionRequest{
		URL:    "https://shop.example.com/p/1",
		Markup: `<head><meta property="og:title" content="Lamp"></head><body>$12.00</body>`,
	}
	expected, _ := p.Extract(req)

	var wg sync.WaitGroup
	results := make([]models.ExtractionResult, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = p.Extract(req)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, expected, r)
	}
}

func TestProductParser_EmptyMarkup(t *testing.T) {
	for _, url := range []string{"https://www.amazon.com/dp/X", "https://example.com"} {
		result, prov := NewProductParser().Extract(models.ExtractionRequest{URL: url})
		assert.Nil(t, result.Name)
		assert.Nil(t, result.Price)
		assert.Nil(t, result.Image)
		assert.Equal(t, []string{}, result.Variants)
		assert.Zero(t, prov.Matched())
	}
}
