package parser

import (
	"fmt"
	"regexp"
)

// DimensionValues locates an embedded axis-name to value fragment and emits
// one "Axis: Value" descriptor per entry in fragment order. A fragment that
// is missing or does not decode is no match. A fragment that decodes to no
// entries still matches, with no descriptors.
func DimensionValues(name string, re *regexp.Regexp) Candidate[[]string] {
	return Candidate[[]string]{
		Name: name,
		Match: func(p *Page) ([]string, bool) {
			m := re.FindStringSubmatch(p.Markup)
			if len(m) < 2 {
				return nil, false
			}

			entries, ok := DecodeFragment(m[1])
			if !ok {
				return nil, false
			}

			variants := make([]string, 0, len(entries))
			for _, e := range entries {
				variants = append(variants, fmt.Sprintf("%s: %s", e.Key, e.Value))
			}
			return variants, true
		},
	}
}

// ColorAndStyle looks for standalone color and style values and emits
// "Color: X" then "Configuration: Y" for whichever are present.
func ColorAndStyle(name string, colorRe, styleRe *regexp.Regexp) Candidate[[]string] {
	color := Pattern("color_name", colorRe, CleanText)
	style := Pattern("style_name", styleRe, CleanText)

	return Candidate[[]string]{
		Name: name,
		Match: func(p *Page) ([]string, bool) {
			variants := make([]string, 0, 2)
			if v, ok := color.Match(p); ok {
				variants = append(variants, "Color: "+v)
			}
			if v, ok := style.Match(p); ok {
				variants = append(variants, "Configuration: "+v)
			}
			return variants, len(variants) > 0
		},
	}
}
