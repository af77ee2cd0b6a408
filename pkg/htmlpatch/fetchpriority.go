// Package htmlpatch performs anchored text surgery on rendered HTML. It
// never round-trips the document through a parser: every edit is a single
// bounded substitution at a located anchor, so a failed match leaves the
// page byte-identical.
package htmlpatch

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/speedkit/lcpboost/models"
)

// Patcher adds fetchpriority="high" to the <img> tag serving the LCP
// element. Only img, img-srcset and picture descriptors map to an actual
// <img> tag; background variants are skipped unmodified.
type Patcher struct{}

// Patch returns doc with fetchpriority="high" added to the first <img>
// whose src attribute equals lcp.Src. A tag that already carries a
// fetchpriority attribute is left alone, so Patch is idempotent and safe
// to run on already-optimized pages. No match is a silent no-op.
func (p Patcher) Patch(doc string, lcp *models.LCPElement) string {
	if lcp == nil || lcp.Src == "" || !patchableType(lcp.Type) {
		return doc
	}
	loc := imgTagPattern(lcp.Src).FindStringIndex(doc)
	if loc == nil {
		return doc
	}
	tag := doc[loc[0]:loc[1]]
	if hasAttr(tag, "fetchpriority") {
		return doc
	}
	const open = len("<img")
	return doc[:loc[0]] + tag[:open] + ` fetchpriority="high"` + tag[open:] + doc[loc[1]:]
}

func patchableType(t string) bool {
	switch t {
	case models.TypeImg, models.TypeImgSrcset, models.TypePicture:
		return true
	}
	return false
}

// imgTagPattern anchors on the exact quoted src value, either quote style,
// with arbitrary attributes before and after. The tag name and attribute
// name match case-insensitively; the URL itself stays exact. src must
// follow whitespace so data-src and friends never match.
func imgTagPattern(src string) *regexp.Regexp {
	q := regexp.QuoteMeta(src)
	return regexp.MustCompile(`(?i:<img)\s(?:[^>]*\s)?(?i:src)\s*=\s*(?:"` + q + `"|'` + q + `')[^>]*>`)
}

// hasAttr re-reads the single matched tag with the html tokenizer so
// attribute detection survives odd spacing, casing and quoting instead of
// guessing with another regex.
func hasAttr(tag, name string) bool {
	z := html.NewTokenizer(strings.NewReader(tag))
	if t := z.Next(); t != html.StartTagToken && t != html.SelfClosingTagToken {
		return false
	}
	for _, a := range z.Token().Attr {
		if strings.EqualFold(a.Key, name) {
			return true
		}
	}
	return false
}
