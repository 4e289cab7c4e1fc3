package parser

import (
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/maltedev/product-scraper/internal/models"
)

// Page wraps the markup of one extraction request. The DOM is parsed at
// most once, on first use, so pattern-only chains never pay for it.
type Page struct {
	URL    string
	Markup string

	once sync.Once
	doc  *goquery.Document
}

func NewPage(req models.ExtractionRequest) *Page {
	return &Page{URL: req.URL, Markup: req.Markup}
}

// Document returns the parsed DOM, or false if the markup could not be parsed.
func (p *Page) Document() (*goquery.Document, bool) {
	p.once.Do(func() {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.Markup))
		if err == nil {
			p.doc = doc
		}
	})
	return p.doc, p.doc != nil
}

// VisibleText returns the text of the body with script, style and template
// content left out. Falls back to the raw markup when there is no DOM.
func (p *Page) VisibleText() string {
	doc, ok := p.Document()
	if !ok {
		return p.Markup
	}

	var b strings.Builder
	doc.Find("body").Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			collectText(&b, n)
		}
	})
	return b.String()
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Template:
			return
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
}

// Candidate is one extraction rule for a field. Its priority is its
// position in the chain. Match never fails loudly: anything it cannot
// capture or normalize is reported as no match.
type Candidate[T any] struct {
	Name  string
	Match func(p *Page) (T, bool)
}

// FirstMatch evaluates the chain in order and returns the value of the
// first candidate that matches, along with that candidate's name.
func FirstMatch[T any](p *Page, chain []Candidate[T]) (T, string, bool) {
	for _, c := range chain {
		if v, ok := c.Match(p); ok {
			return v, c.Name, true
		}
	}
	var zero T
	return zero, "", false
}

// Pattern captures the first submatch of re in the raw markup and passes it
// through the normalizers in order. An empty result is no match.
func Pattern(name string, re *regexp.Regexp, normalize ...func(string) string) Candidate[string] {
	return Candidate[string]{
		Name: name,
		Match: func(p *Page) (string, bool) {
			m := re.FindStringSubmatch(p.Markup)
			if len(m) < 2 {
				return "", false
			}
			return apply(m[1], normalize)
		},
	}
}

// VisiblePattern is Pattern evaluated against the page's visible text.
func VisiblePattern(name string, re *regexp.Regexp, normalize ...func(string) string) Candidate[string] {
	return Candidate[string]{
		Name: name,
		Match: func(p *Page) (string, bool) {
			m := re.FindStringSubmatch(p.VisibleText())
			if len(m) < 2 {
				return "", false
			}
			return apply(m[1], normalize)
		},
	}
}

// MetaProperty reads the content of the first <meta property="..."> tag
// whose property equals prop, compared case-insensitively. Tags with empty
// content are skipped.
func MetaProperty(name, prop string, normalize ...func(string) string) Candidate[string] {
	return Candidate[string]{
		Name: name,
		Match: func(p *Page) (string, bool) {
			doc, ok := p.Document()
			if !ok {
				return "", false
			}

			var (
				content string
				found   bool
			)
			doc.Find("meta[property]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
				if !strings.EqualFold(strings.TrimSpace(s.AttrOr("property", "")), prop) {
					return true
				}
				content, found = apply(s.AttrOr("content", ""), normalize)
				return !found
			})
			return content, found
		},
	}
}

// Numeric turns a text candidate into a price candidate. Text that does not
// parse as a number is no match, so the chain moves on.
func Numeric(c Candidate[string]) Candidate[float64] {
	return Candidate[float64]{
		Name: c.Name,
		Match: func(p *Page) (float64, bool) {
			text, ok := c.Match(p)
			if !ok {
				return 0, false
			}
			return ParsePrice(text)
		},
	}
}

func apply(v string, normalize []func(string) string) (string, bool) {
	for _, fn := range normalize {
		v = fn(v)
	}
	return v, v != ""
}
