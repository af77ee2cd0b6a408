// Package scan inspects rendered HTML for the elements the beacon would
// consider LCP candidates. It backs the scan command, which previews what
// a measurement run will look at and helps seed metadata rows by hand.
//
// This is tooling, not the serving path: the optimizer itself never parses
// the page into a DOM.
package scan

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/speedkit/lcpboost/pkg/beacon"
)

// Candidate is one element the beacon would observe.
type Candidate struct {
	Tag    string `json:"tag" yaml:"tag"`
	Src    string `json:"src,omitempty" yaml:"src,omitempty"`
	Srcset string `json:"srcset,omitempty" yaml:"srcset,omitempty"`
}

// inline style background-image url(...), first occurrence
var bgURLRe = regexp.MustCompile(`url\(\s*['"]?([^'")]+)['"]?\s*\)`)

// Candidates lists elements matching the candidate selectors in document
// order, capped at max (0 = no cap). Only elements referencing an image
// resource are reported; bare text candidates carry nothing to preload.
func Candidates(doc string, selectors []string, max int) ([]Candidate, error) {
	if len(selectors) == 0 {
		selectors = beacon.DefaultElements
	}
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}

	var out []Candidate
	d.Find(strings.Join(selectors, ",")).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if max > 0 && len(out) >= max {
			return false
		}
		c := Candidate{Tag: goquery.NodeName(s)}
		c.Src, _ = s.Attr("src")
		c.Srcset, _ = s.Attr("srcset")
		if c.Tag == "picture" {
			// The <picture> itself has no src; report its fallback <img>.
			c.Src, _ = s.Find("img").First().Attr("src")
		}
		if c.Src == "" && c.Srcset == "" {
			if style, ok := s.Attr("style"); ok {
				c.Src = backgroundURL(style)
			}
		}
		if c.Src == "" && c.Srcset == "" {
			return true
		}
		out = append(out, c)
		return true
	})
	return out, nil
}

// backgroundURL pulls the first url(...) out of an inline style value.
func backgroundURL(style string) string {
	m := bgURLRe.FindStringSubmatch(style)
	if m == nil {
		return ""
	}
	return m[1]
}
