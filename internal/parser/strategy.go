package parser

import (
	"net/url"
	"strings"
)

// StrategySet holds the candidate chains for one kind of site.
type StrategySet struct {
	Name     string
	Matches  func(host string) bool
	Title    []Candidate[string]
	Price    []Candidate[float64]
	Image    []Candidate[string]
	Variants []Candidate[[]string]
}

// HostContains matches hosts containing marker, ignoring case.
func HostContains(marker string) func(host string) bool {
	marker = strings.ToLower(marker)
	return func(host string) bool {
		return strings.Contains(strings.ToLower(host), marker)
	}
}

// SelectStrategy returns the first set in sets whose host predicate accepts
// the URL's host, or fallback. A URL that does not parse has no host and
// always gets fallback.
func SelectStrategy(rawURL string, sets []*StrategySet, fallback *StrategySet) *StrategySet {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return fallback
	}

	host := u.Hostname()
	for _, set := range sets {
		if set.Matches != nil && set.Matches(host) {
			return set
		}
	}
	return fallback
}
