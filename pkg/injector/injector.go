// Package injector wires the LCP optimization pipeline for one rendered
// page: gate checks, page identity, metadata lookup, preload injection,
// fetchpriority patching, and the beacon fallback. Every collaborator is
// injected; the package holds no mutable state and every call is a pure
// function of its inputs.
package injector

import (
	"strings"

	"github.com/speedkit/lcpboost/models"
	"github.com/speedkit/lcpboost/pkg/beacon"
	"github.com/speedkit/lcpboost/pkg/exclusions"
	"github.com/speedkit/lcpboost/pkg/htmlpatch"
	"github.com/speedkit/lcpboost/pkg/options"
	"github.com/speedkit/lcpboost/pkg/preload"
)

// RowSource looks up the stored measurement for a page identity. A miss is
// (nil, nil); lookup failures are treated the same as misses downstream.
type RowSource interface {
	GetRow(url string, isMobile bool) (*models.PerformanceRow, error)
}

// Gate is the external eligibility decision for a request. Allowed covers
// request-level eligibility; Bypassed is the per-response kill switch
// (non-cacheable responses and the like).
type Gate interface {
	Allowed() bool
	Bypassed() bool
}

// StaticGate is a fixed Gate, used by the CLI and in tests.
type StaticGate struct {
	Allow  bool
	Bypass bool
}

func (g StaticGate) Allowed() bool  { return g.Allow }
func (g StaticGate) Bypassed() bool { return g.Bypass }

// Probe checks that a file exists on the serving filesystem; the beacon is
// only injected when its asset is actually there.
type Probe interface {
	Exists(path string) bool
}

// Request identifies the page being served.
type Request struct {
	Path     string
	IsMobile bool // device detection outcome, not the row key flag
}

// Optimizer is the entry point for LCP post-processing. All fields are
// read-only after construction; a single Optimizer serves concurrent
// requests.
type Optimizer struct {
	HomeURL          string
	Store            RowSource
	Options          options.Provider
	Gate             Gate
	Probe            Probe
	Beacon           beacon.Config
	BeaconScriptPath string // filesystem location of the beacon asset

	builder preload.Builder
	patcher htmlpatch.Patcher
}

// Optimize post-processes one rendered page. Whatever goes wrong, the
// returned HTML is valid: every missing precondition skips its step and
// falls through to returning the input untouched.
func (o *Optimizer) Optimize(doc string, req Request) string {
	if o.Gate != nil && (!o.Gate.Allowed() || o.Gate.Bypassed()) {
		return doc
	}

	url := o.PageURL(req.Path)
	mobile := o.MobileKey(req)

	row, err := o.Store.GetRow(url, mobile)
	if err != nil {
		row = nil
	}
	if row == nil {
		return o.injectBeacon(doc, url, mobile)
	}
	if !row.HasLCP() {
		return doc
	}
	if !htmlpatch.HasTitleClose(doc) {
		return doc
	}

	res := o.builder.Build(row.LCP)
	out := htmlpatch.InsertAfterTitle(doc, res.Tags)
	return o.patcher.Patch(out, row.LCP)
}

// Exclusions returns list extended with the lazy-load exclusion paths for
// the given page identity. A missing row or lookup failure leaves list
// unchanged.
func (o *Optimizer) Exclusions(list []string, req Request) []string {
	row, err := o.Store.GetRow(o.PageURL(req.Path), o.MobileKey(req))
	if err != nil || row == nil {
		return list
	}
	return exclusions.Add(list, row)
}

// PageURL combines the site home URL with the request path and strips any
// trailing slash, matching the identity the beacon reports.
func (o *Optimizer) PageURL(path string) string {
	base := strings.TrimSuffix(o.HomeURL, "/")
	if path == "" || path == "/" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimSuffix(base+path, "/")
}

// MobileKey reports whether the request maps to the mobile row. The split
// only exists when the site detects mobile requests AND caches them AND
// keeps separate mobile cache files; otherwise everyone shares the desktop
// row.
func (o *Optimizer) MobileKey(req Request) bool {
	if !req.IsMobile || o.Options == nil {
		return false
	}
	return o.Options.Bool(options.KeyCacheMobile, false) &&
		o.Options.Bool(options.KeyDoCachingMobileFiles, false)
}

func (o *Optimizer) injectBeacon(doc, pageURL string, isMobile bool) string {
	if o.Probe == nil || !o.Probe.Exists(o.BeaconScriptPath) {
		return doc
	}
	snippet, err := o.Beacon.Snippet(pageURL, isMobile)
	if err != nil {
		return doc
	}
	return htmlpatch.InsertBeforeBodyClose(doc, snippet)
}
