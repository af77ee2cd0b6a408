package preload

import (
	"regexp"
	"strconv"
)

// maxWidthRe matches the max-width clause of a media condition. The number
// may be fractional.
var maxWidthRe = regexp.MustCompile(`max-width\s*:\s*(\d+(?:\.\d+)?)px`)

// maxWidth extracts the max-width bound from a media condition string.
func maxWidth(media string) (float64, bool) {
	m := maxWidthRe.FindStringSubmatch(media)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// chainMedia returns the effective media condition for a picture source
// given the previous source's upper bound. The lower bound sits 0.1px above
// the previous upper bound so adjacent ranges never overlap at the
// boundary pixel.
func chainMedia(media string, prev *float64) string {
	if prev == nil {
		return media
	}
	return "(min-width: " + formatPx(*prev+0.1) + "px) and " + media
}

// openEndedMedia covers the viewport range above the last known bound; it
// is the condition of the trailing hint emitted for the picture fallback.
func openEndedMedia(prev float64) string {
	return "(min-width: " + formatPx(prev+0.1) + "px)"
}

// formatPx renders a pixel value without trailing zeros (600.1, not
// 600.100000).
func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
