// Package preload synthesizes <link rel="preload"> markup for a page's LCP
// element from the descriptor the measurement beacon stored.
package preload

import (
	"html"
	"strings"

	"github.com/speedkit/lcpboost/models"
)

// Result holds the synthesized markup and the URLs it references. Tags is
// the concatenation of all hints with no separator. Sources keeps emission
// order and is not deduplicated; the exclusion extractor handles that.
type Result struct {
	Tags    string
	Sources []string
}

// Builder turns an LCP descriptor into preload hints. The zero value is
// ready to use.
type Builder struct{}

// Build returns the preload hints for lcp. A nil descriptor or an unknown
// type yields an empty Result: callers treat missing LCP data as a no-op,
// never as an error.
func (b Builder) Build(lcp *models.LCPElement) Result {
	if lcp == nil {
		return Result{}
	}
	switch lcp.Type {
	case models.TypeImg:
		return Result{
			Tags:    hint(attr{"href", lcp.Src}),
			Sources: []string{lcp.Src},
		}
	case models.TypeImgSrcset:
		return Result{
			Tags: hint(
				attr{"href", lcp.Src},
				attr{"imagesrcset", lcp.Srcset},
				attr{"imagesizes", lcp.Sizes},
			),
			Sources: []string{lcp.Src},
		}
	case models.TypeBgImgSet:
		return b.buildBackgroundSet(lcp)
	case models.TypeBgImg:
		return b.buildBackgroundList(lcp)
	case models.TypePicture:
		return b.buildPicture(lcp)
	default:
		return Result{}
	}
}

// buildBackgroundSet emits a single hint whose imagesrcset carries every
// URL of the image-set, letting the browser pick the density it wants.
func (b Builder) buildBackgroundSet(lcp *models.LCPElement) Result {
	if len(lcp.BgSet) == 0 {
		return Result{}
	}
	srcs := make([]string, 0, len(lcp.BgSet))
	for _, s := range lcp.BgSet {
		srcs = append(srcs, s.Src)
	}
	return Result{
		Tags:    hint(attr{"imagesrcset", strings.Join(srcs, ",")}),
		Sources: srcs,
	}
}

// buildBackgroundList emits one hint per background URL.
func (b Builder) buildBackgroundList(lcp *models.LCPElement) Result {
	var tags strings.Builder
	srcs := make([]string, 0, len(lcp.BgSet))
	for _, s := range lcp.BgSet {
		tags.WriteString(hint(attr{"href", s.Src}))
		srcs = append(srcs, s.Src)
	}
	return Result{Tags: tags.String(), Sources: srcs}
}

// buildPicture emits one hint per <source>, chaining media conditions so
// the ranges partition the viewport width axis, plus a trailing hint for
// the fallback src covering the open-ended upper range the picture's own
// <img> serves.
//
// A source without a max-width clause carries the last known bound
// forward to the next source unchanged.
func (b Builder) buildPicture(lcp *models.LCPElement) Result {
	var tags strings.Builder
	var srcs []string
	var prevMax *float64
	for _, s := range lcp.Sources {
		media := chainMedia(s.Media, prevMax)
		tags.WriteString(hint(attr{"href", s.Srcset}, attr{"media", media}))
		srcs = append(srcs, s.Srcset)
		if w, ok := maxWidth(s.Media); ok {
			bound := w
			prevMax = &bound
		}
	}
	if prevMax != nil {
		tags.WriteString(hint(attr{"href", lcp.Src}, attr{"media", openEndedMedia(*prevMax)}))
		srcs = append(srcs, lcp.Src)
	}
	return Result{Tags: tags.String(), Sources: srcs}
}

type attr struct {
	name  string
	value string
}

// hint renders one preload link. Attribute values are HTML-escaped: URLs
// and media strings come from beacon submissions and cannot be trusted to
// be attribute-safe.
func hint(attrs ...attr) string {
	var b strings.Builder
	b.WriteString(`<link rel="preload" as="image"`)
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.value))
		b.WriteByte('"')
	}
	b.WriteString(` fetchpriority="high">`)
	return b.String()
}
