package htmlpatch

import "regexp"

var (
	titleCloseRe = regexp.MustCompile(`(?i)</title\s*>`)
	bodyCloseRe  = regexp.MustCompile(`(?i)</body\s*>`)
)

// HasTitleClose reports whether doc contains a closing </title> tag, the
// only anchor the preload injection considers safe.
func HasTitleClose(doc string) bool {
	return titleCloseRe.MatchString(doc)
}

// InsertAfterTitle places markup immediately after the first closing
// </title> tag (case-insensitive, whitespace before > tolerated). Exactly
// one substitution; without the anchor the document comes back unchanged.
func InsertAfterTitle(doc, markup string) string {
	loc := titleCloseRe.FindStringIndex(doc)
	if loc == nil {
		return doc
	}
	return doc[:loc[1]] + markup + doc[loc[1]:]
}

// InsertBeforeBodyClose places markup immediately before the first closing
// </body> tag. Exactly one substitution; no anchor, no injection.
func InsertBeforeBodyClose(doc, markup string) string {
	loc := bodyCloseRe.FindStringIndex(doc)
	if loc == nil {
		return doc
	}
	return doc[:loc[0]] + markup + doc[loc[0]:]
}
