package parser

import "regexp"

const (
	StrategyAmazon = "amazon"

	amazonHostMarker = "amazon."
)

var (
	amazonTitlePattern = regexp.MustCompile(`(?i)<span[^>]*id=["']productTitle["'][^>]*>([^<]+)</span>`)

	amazonPriceToPayPattern  = regexp.MustCompile(`(?i)"priceToPay"[^}]*"amount"\s*:\s*([0-9.]+)`)
	amazonPriceAmountPattern = regexp.MustCompile(`(?i)"price"\s*:\s*\{[^}]*"amount"\s*:\s*([0-9.]+)`)
	amazonOffscreenPattern   = regexp.MustCompile(`(?i)<span[^>]*class=["']a-offscreen["'][^>]*>\$([0-9.,]+)</span>`)

	amazonHiResPattern   = regexp.MustCompile(`(?i)"hiRes":"(https:[^"]+)"`)
	amazonLargePattern   = regexp.MustCompile(`(?i)"large":"(https:[^"]+)"`)
	amazonLandingPattern = regexp.MustCompile(`(?i)<img[^>]*id=["']landingImage["'][^>]*data-old-hires=["'](https:[^"']+)["']`)

	amazonDimensionValuesPattern = regexp.MustCompile(`(?i)"dimensionValuesDisplayData"\s*:\s*(\{[^}]+\})`)
	amazonColorNamePattern       = regexp.MustCompile(`(?i)"color_name"\s*:\s*"([^"]+)"`)
	amazonStyleNamePattern       = regexp.MustCompile(`(?i)"style_name"\s*:\s*"([^"]+)"`)
)

// NewAmazonStrategy builds the chains for Amazon product pages on any
// marketplace domain.
func NewAmazonStrategy() *StrategySet {
	return &StrategySet{
		Name:    StrategyAmazon,
		Matches: HostContains(amazonHostMarker),
		Title: []Candidate[string]{
			Pattern("product_title", amazonTitlePattern, CleanText),
		},
		Price: []Candidate[float64]{
			Numeric(Pattern("price_to_pay", amazonPriceToPayPattern)),
			Numeric(Pattern("price_amount", amazonPriceAmountPattern)),
			Numeric(Pattern("offscreen_price", amazonOffscreenPattern)),
		},
		Image: []Candidate[string]{
			Pattern("hires_image", amazonHiResPattern, DecodeEscapes),
			Pattern("large_image", amazonLargePattern, DecodeEscapes),
			Pattern("landing_image", amazonLandingPattern),
		},
		Variants: []Candidate[[]string]{
			DimensionValues("dimension_values", amazonDimensionValuesPattern),
			ColorAndStyle("color_style", amazonColorNamePattern, amazonStyleNamePattern),
		},
	}
}
