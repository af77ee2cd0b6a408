package htmlpatch

import (
	"strings"
	"testing"

	"github.com/speedkit/lcpboost/models"
)

func lcpImg(src string) *models.LCPElement {
	return &models.LCPElement{Type: models.TypeImg, Src: src}
}

func TestPatch_AddsFetchPriority(t *testing.T) {
	var p Patcher
	doc := `<body><img class="hero" src="/img/hero.jpg" alt="x"></body>`

	got := p.Patch(doc, lcpImg("/img/hero.jpg"))

	want := `<body><img fetchpriority="high" class="hero" src="/img/hero.jpg" alt="x"></body>`
	if got != want {
		t.Errorf("Patch = %q, want %q", got, want)
	}
}

func TestPatch_SingleQuotedSrc(t *testing.T) {
	var p Patcher
	doc := `<img src='/img/hero.jpg'>`

	got := p.Patch(doc, lcpImg("/img/hero.jpg"))

	if !strings.Contains(got, `fetchpriority="high"`) {
		t.Errorf("single-quoted src not patched: %q", got)
	}
}

func TestPatch_Idempotent(t *testing.T) {
	var p Patcher
	doc := `<img src="/img/hero.jpg">`

	once := p.Patch(doc, lcpImg("/img/hero.jpg"))
	twice := p.Patch(once, lcpImg("/img/hero.jpg"))

	if twice != once {
		t.Errorf("second pass changed output:\nonce:  %q\ntwice: %q", once, twice)
	}
	if n := strings.Count(twice, "fetchpriority"); n != 1 {
		t.Errorf("fetchpriority count = %d, want 1", n)
	}
}

func TestPatch_ExistingAttributeWins(t *testing.T) {
	var p Patcher
	tests := []string{
		`<img fetchpriority="low" src="/img/hero.jpg">`,
		`<img FETCHPRIORITY='high' src="/img/hero.jpg">`,
		`<img fetchpriority=auto src="/img/hero.jpg">`,
	}
	for _, doc := range tests {
		if got := p.Patch(doc, lcpImg("/img/hero.jpg")); got != doc {
			t.Errorf("Patch(%q) = %q, want unchanged", doc, got)
		}
	}
}

func TestPatch_FirstMatchOnly(t *testing.T) {
	var p Patcher
	doc := `<img src="/img/hero.jpg"><img src="/img/hero.jpg">`

	got := p.Patch(doc, lcpImg("/img/hero.jpg"))

	want := `<img fetchpriority="high" src="/img/hero.jpg"><img src="/img/hero.jpg">`
	if got != want {
		t.Errorf("Patch = %q, want only the first tag patched", got)
	}
}

func TestPatch_NoMatch(t *testing.T) {
	var p Patcher
	doc := `<img src="/img/other.jpg">`

	if got := p.Patch(doc, lcpImg("/img/hero.jpg")); got != doc {
		t.Errorf("Patch = %q, want unchanged on miss", got)
	}
}

func TestPatch_ExactSrcOnly(t *testing.T) {
	var p Patcher
	doc := `<img src="/img/hero.jpg?v=2">`

	if got := p.Patch(doc, lcpImg("/img/hero.jpg")); got != doc {
		t.Errorf("Patch matched a different URL: %q", got)
	}
}

func TestPatch_DataSrcDoesNotMatch(t *testing.T) {
	var p Patcher
	doc := `<img data-src="/img/hero.jpg" src="/img/blank.gif">`

	if got := p.Patch(doc, lcpImg("/img/hero.jpg")); got != doc {
		t.Errorf("Patch matched data-src: %q", got)
	}
}

// Background descriptors never correspond to an <img> tag, even when one
// with the same URL happens to exist.
func TestPatch_BackgroundTypesSkipped(t *testing.T) {
	var p Patcher
	doc := `<img src="/img/hero.jpg">`

	for _, typ := range []string{models.TypeBgImg, models.TypeBgImgSet} {
		lcp := &models.LCPElement{Type: typ, Src: "/img/hero.jpg"}
		if got := p.Patch(doc, lcp); got != doc {
			t.Errorf("type %s patched the document: %q", typ, got)
		}
	}
}

func TestPatch_PictureTypePatchesFallbackImg(t *testing.T) {
	var p Patcher
	doc := `<picture><source srcset="/img/s.jpg"><img src="/img/full.jpg"></picture>`
	lcp := &models.LCPElement{Type: models.TypePicture, Src: "/img/full.jpg"}

	got := p.Patch(doc, lcp)

	if !strings.Contains(got, `<img fetchpriority="high" src="/img/full.jpg">`) {
		t.Errorf("picture fallback img not patched: %q", got)
	}
}

func TestPatch_RegexMetacharactersInURL(t *testing.T) {
	var p Patcher
	doc := `<img src="/img/hero(1).jpg">`

	got := p.Patch(doc, lcpImg("/img/hero(1).jpg"))

	if !strings.Contains(got, `fetchpriority="high"`) {
		t.Errorf("URL with metacharacters not patched: %q", got)
	}
}

func TestPatch_UppercaseTag(t *testing.T) {
	var p Patcher
	doc := `<IMG SRC="/img/hero.jpg">`

	got := p.Patch(doc, lcpImg("/img/hero.jpg"))

	want := `<IMG fetchpriority="high" SRC="/img/hero.jpg">`
	if got != want {
		t.Errorf("Patch = %q, want %q", got, want)
	}
}
