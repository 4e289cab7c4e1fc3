package parser

import "regexp"

const StrategyGeneric = "generic"

// Dollar amount with optional thousands groups and optional cents.
var genericPricePattern = regexp.MustCompile(`\$([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{2})?)`)

// NewGenericStrategy builds the chains used for every site without a
// dedicated strategy. It never yields variants.
func NewGenericStrategy() *StrategySet {
	return &StrategySet{
		Name:    StrategyGeneric,
		Matches: func(string) bool { return true },
		Title: []Candidate[string]{
			MetaProperty("og_title", "og:title", CleanText),
		},
		Price: []Candidate[float64]{
			Numeric(VisiblePattern("dollar_amount", genericPricePattern)),
		},
		Image: []Candidate[string]{
			MetaProperty("og_image", "og:image", DecodeEscapes),
		},
	}
}
