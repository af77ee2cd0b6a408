// Package models defines the data structures shared across the optimizer:
// beacon-reported element descriptors, stored measurement rows, and runtime
// configuration.
package models

// Element types the measurement beacon reports. The type determines which
// of the descriptor fields are populated; consumers switch on it
// exhaustively and never read fields outside their type.
const (
	TypeImg       = "img"        // plain <img src>
	TypeImgSrcset = "img-srcset" // <img srcset sizes>
	TypeBgImgSet  = "bg-img-set" // CSS image-set() background
	TypeBgImg     = "bg-img"     // CSS background-image url() list
	TypePicture   = "picture"    // <picture> with <source> children
)

// PictureSource is one <source> entry of a picture element. Media is a CSS
// media-feature string that may contain a max-width clause.
type PictureSource struct {
	Srcset string `json:"srcset"`
	Media  string `json:"media,omitempty"`
}

// BackgroundSource is one URL of a CSS background-image value.
type BackgroundSource struct {
	Src string `json:"src"`
}

// LCPElement describes the page's largest-contentful-paint candidate as
// measured in the browser.
type LCPElement struct {
	Type    string             `json:"type"`
	Src     string             `json:"src,omitempty"`
	Srcset  string             `json:"srcset,omitempty"`  // img-srcset only
	Sizes   string             `json:"sizes,omitempty"`   // img-srcset only
	BgSet   []BackgroundSource `json:"bg_set,omitempty"`  // bg-img, bg-img-set
	Sources []PictureSource    `json:"sources,omitempty"` // picture only
}

// ATFElement describes one above-the-fold element. Same shape as
// LCPElement, but it is only ever used to enumerate resource URLs for the
// lazy-load exclusion list.
type ATFElement struct {
	Type    string             `json:"type"`
	Src     string             `json:"src,omitempty"`
	Srcset  string             `json:"srcset,omitempty"`
	Sizes   string             `json:"sizes,omitempty"`
	BgSet   []BackgroundSource `json:"bg_set,omitempty"`
	Sources []PictureSource    `json:"sources,omitempty"`
}
