package models

// ExtractionRequest is one page to extract from: the URL it was fetched
// from and the markup the fetch returned.
type ExtractionRequest struct {
	URL    string
	Markup string
}

// ExtractionResult is the normalized product record. Absent fields stay nil
// and encode as null; Variants is never nil.
type ExtractionResult struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Image    *string  `json:"image"`
	Variants []string `json:"variants"`
}

// NewExtractionResult returns an empty result with a non-nil variants list.
func NewExtractionResult() ExtractionResult {
	return ExtractionResult{
		Variants: make([]string, 0),
	}
}

// IsUsable reports whether the record carries a name or a price.
func (r *ExtractionResult) IsUsable() bool {
	return r.Name != nil || r.Price != nil
}

// Provenance records which strategy set ran and which candidate supplied
// each field. An empty field name means no candidate matched.
type Provenance struct {
	Strategy string `json:"strategy"`
	Name     string `json:"name,omitempty"`
	Price    string `json:"price,omitempty"`
	Image    string `json:"image,omitempty"`
	Variants string `json:"variants,omitempty"`
}

// Matched returns the number of fields some candidate supplied.
func (p Provenance) Matched() int {
	n := 0
	for _, field := range []string{p.Name, p.Price, p.Image, p.Variants} {
		if field != "" {
			n++
		}
	}
	return n
}
