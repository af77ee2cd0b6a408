// Package exclusions derives lazy-load exclusion paths from stored
// measurement rows. The lazy-loading subsystem matches excluded resources
// by URL path component, so everything here reduces to paths.
package exclusions

import (
	"net/url"
	"strings"

	"github.com/speedkit/lcpboost/models"
	"github.com/speedkit/lcpboost/pkg/preload"
)

// Paths converts source URLs to their path components, leading slash
// stripped, deduplicated in first-seen order. Unparsable URLs and URLs
// without a path are skipped silently.
func Paths(sources []string) []string {
	seen := make(map[string]struct{}, len(sources))
	var out []string
	for _, s := range sources {
		u, err := url.Parse(s)
		if err != nil {
			continue
		}
		p := strings.TrimPrefix(u.Path, "/")
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Add returns list extended with every exclusion path the row implies:
// the LCP preload sources plus all above-the-fold element sources.
// Duplicates are dropped; a nil row returns list as-is.
func Add(list []string, row *models.PerformanceRow) []string {
	if row == nil {
		return list
	}
	var srcs []string
	if row.LCP != nil {
		srcs = append(srcs, preload.Builder{}.Build(row.LCP).Sources...)
	}
	for _, el := range row.Viewport {
		srcs = append(srcs, elementSources(el)...)
	}
	merged := make([]string, 0, len(list)+len(srcs))
	merged = append(merged, list...)
	merged = append(merged, Paths(srcs)...)
	return dedupe(merged)
}

// elementSources enumerates the resource URLs one above-the-fold element
// references, per descriptor type.
func elementSources(el models.ATFElement) []string {
	switch el.Type {
	case models.TypeImg, models.TypeImgSrcset:
		if el.Src == "" {
			return nil
		}
		return []string{el.Src}
	case models.TypeBgImg, models.TypeBgImgSet:
		srcs := make([]string, 0, len(el.BgSet))
		for _, s := range el.BgSet {
			srcs = append(srcs, s.Src)
		}
		return srcs
	case models.TypePicture:
		srcs := make([]string, 0, len(el.Sources)+1)
		for _, s := range el.Sources {
			srcs = append(srcs, s.Srcset)
		}
		if el.Src != "" {
			srcs = append(srcs, el.Src)
		}
		return srcs
	default:
		return nil
	}
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	var out []string
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
