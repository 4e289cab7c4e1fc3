package parser

import (
	"encoding/json"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	escapedAmpersand = `\u0026`
	escapedQuote     = `\u0022`
)

// Matches ASCII whitespace plus Unicode space separators such as NBSP,
// which product titles pick up from templating.
var whitespacePattern = regexp.MustCompile(`[\s\p{Z}\x{FEFF}]+`)

// CleanText collapses every whitespace run into a single space and trims
// the ends.
func CleanText(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// ParsePrice strips thousands separators and parses the remainder as a
// decimal. Malformed or non-finite input reports false.
func ParsePrice(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// DecodeEscapes turns escaped ampersands from script literals back into
// plain ampersands.
func DecodeEscapes(s string) string {
	return strings.ReplaceAll(s, escapedAmpersand, "&")
}

// KV is one entry of a decoded fragment, kept in source order.
type KV struct {
	Key   string
	Value string
}

// DecodeFragment unescapes encoded quotes in a captured JSON-like fragment
// and decodes it as a flat object. It reports false when the fragment is
// not valid JSON, is not an object, or holds a nested object or array.
// Duplicate keys keep their first position and their last value.
func DecodeFragment(s string) ([]KV, bool) {
	dec := json.NewDecoder(strings.NewReader(strings.ReplaceAll(s, escapedQuote, `"`)))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, false
	}

	entries := make([]KV, 0)
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := tok.(string)
		if !ok {
			return nil, false
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, false
		}
		value, ok := scalarText(tok)
		if !ok {
			return nil, false
		}

		if i, seen := index[key]; seen {
			entries[i].Value = value
			continue
		}
		index[key] = len(entries)
		entries = append(entries, KV{Key: key, Value: value})
	}

	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}

	return entries, true
}

func scalarText(tok json.Token) (string, bool) {
	switch v := tok.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	case nil:
		return "null", true
	default:
		return "", false
	}
}
