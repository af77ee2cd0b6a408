package models

// StatusNotFound is the sentinel the store keeps for a field the beacon
// reported no data for. A decoded row maps it to a nil LCP / nil Viewport.
const StatusNotFound = "not found"

// PerformanceRow is one stored measurement, keyed by (URL, IsMobile).
// Absence of a row and a row with a nil LCP are distinct states: the first
// triggers the beacon fallback, the second is a plain no-op.
type PerformanceRow struct {
	URL      string       `json:"url"`
	IsMobile bool         `json:"is_mobile"`
	LCP      *LCPElement  `json:"lcp,omitempty"`
	Viewport []ATFElement `json:"viewport,omitempty"`
}

// HasLCP reports whether the row carries usable LCP data.
func (r *PerformanceRow) HasLCP() bool {
	return r != nil && r.LCP != nil && r.LCP.Type != ""
}
