// Package beacon builds the measurement snippet injected into pages that
// have no stored LCP data yet. The snippet is an inline configuration
// script plus an async loader for the beacon asset; the asset itself is an
// opaque static file.
package beacon

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/speedkit/lcpboost/pkg/options"
)

// Filter names accepted by the override registry.
const (
	FilterWidthThreshold  = "beacon_width_threshold"
	FilterHeightThreshold = "beacon_height_threshold"
	FilterElements        = "beacon_elements"
)

// Default viewport thresholds the beacon uses to decide what counts as
// above the fold.
const (
	MobileWidth   = 393
	MobileHeight  = 830
	DesktopWidth  = 1920
	DesktopHeight = 1080
)

// DefaultElements lists the selectors the beacon observes as LCP
// candidates.
var DefaultElements = []string{"img", "video", "picture", "p", "main", "div", "li", "svg"}

// Payload is the configuration object serialized into the inline script.
// Key names are part of the beacon wire contract.
type Payload struct {
	AjaxURL         string `json:"ajax_url"`
	Nonce           string `json:"nonce"`
	URL             string `json:"url"`
	IsMobile        bool   `json:"is_mobile"`
	Elements        string `json:"elements"`
	WidthThreshold  int    `json:"width_threshold"`
	HeightThreshold int    `json:"height_threshold"`
}

// TokenSource mints one-time security tokens for beacon submissions.
type TokenSource func() string

// Config carries the collaborators needed to build the snippet.
type Config struct {
	ScriptURL string // URL the async loader tag references
	AjaxURL   string // endpoint the beacon posts measurements to
	Tokens    TokenSource
	Filters   *options.Filters
}

// Snippet returns the inline config script followed by the async loader
// tag for one page identity. Threshold and selector defaults pass through
// the filter registry; overrides of the wrong type fall back silently.
func (c Config) Snippet(pageURL string, isMobile bool) (string, error) {
	width, height := DesktopWidth, DesktopHeight
	if isMobile {
		width, height = MobileWidth, MobileHeight
	}
	width = c.Filters.Int(FilterWidthThreshold, width)
	height = c.Filters.Int(FilterHeightThreshold, height)
	elements := c.Filters.Strings(FilterElements, DefaultElements)

	tokens := c.Tokens
	if tokens == nil {
		tokens = NewNonce
	}

	payload := Payload{
		AjaxURL:         c.AjaxURL,
		Nonce:           tokens(),
		URL:             pageURL,
		IsMobile:        isMobile,
		Elements:        strings.Join(elements, ", "),
		WidthThreshold:  width,
		HeightThreshold: height,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("<script>window.lcpBeaconConfig = ")
	b.Write(data)
	b.WriteString(";</script>")
	b.WriteString(`<script src="`)
	b.WriteString(html.EscapeString(c.ScriptURL))
	b.WriteString(`" async></script>`)
	return b.String(), nil
}
