package htmlpatch

import "testing"

func TestInsertAfterTitle(t *testing.T) {
	doc := `<head><title>Home</title><meta charset="utf-8"></head>`

	got := InsertAfterTitle(doc, "<link>")

	want := `<head><title>Home</title><link><meta charset="utf-8"></head>`
	if got != want {
		t.Errorf("InsertAfterTitle = %q, want %q", got, want)
	}
}

func TestInsertAfterTitle_CaseAndWhitespace(t *testing.T) {
	tests := []struct {
		doc  string
		want string
	}{
		{`<TITLE>x</TITLE><p>`, `<TITLE>x</TITLE><link><p>`},
		{`<title>x</title ><p>`, `<title>x</title ><link><p>`},
		{"<title>x</title\n><p>", "<title>x</title\n><link><p>"},
	}
	for _, tt := range tests {
		if got := InsertAfterTitle(tt.doc, "<link>"); got != tt.want {
			t.Errorf("InsertAfterTitle(%q) = %q, want %q", tt.doc, got, tt.want)
		}
	}
}

func TestInsertAfterTitle_NoAnchor(t *testing.T) {
	doc := `<head><meta charset="utf-8"></head>`

	if got := InsertAfterTitle(doc, "<link>"); got != doc {
		t.Errorf("InsertAfterTitle without anchor = %q, want unchanged", got)
	}
}

func TestInsertAfterTitle_FirstOccurrenceOnly(t *testing.T) {
	doc := `<title>a</title><svg><title>b</title></svg>`

	got := InsertAfterTitle(doc, "<link>")

	want := `<title>a</title><link><svg><title>b</title></svg>`
	if got != want {
		t.Errorf("InsertAfterTitle = %q, want first anchor only", got)
	}
}

func TestInsertBeforeBodyClose(t *testing.T) {
	doc := `<body><p>hi</p></body></html>`

	got := InsertBeforeBodyClose(doc, "<script></script>")

	want := `<body><p>hi</p><script></script></body></html>`
	if got != want {
		t.Errorf("InsertBeforeBodyClose = %q, want %q", got, want)
	}
}

func TestInsertBeforeBodyClose_NoAnchor(t *testing.T) {
	doc := `<p>fragment without body</p>`

	if got := InsertBeforeBodyClose(doc, "<script></script>"); got != doc {
		t.Errorf("InsertBeforeBodyClose without anchor = %q, want unchanged", got)
	}
}

func TestHasTitleClose(t *testing.T) {
	if !HasTitleClose("<title>x</title>") {
		t.Error("HasTitleClose = false, want true")
	}
	if HasTitleClose("<p>no title here</p>") {
		t.Error("HasTitleClose = true, want false")
	}
}
