package preload

import (
	"reflect"
	"strings"
	"testing"

	"github.com/speedkit/lcpboost/models"
)

func TestBuild_NilDescriptor(t *testing.T) {
	var b Builder
	got := b.Build(nil)
	if got.Tags != "" {
		t.Errorf("Tags = %q, want empty", got.Tags)
	}
	if len(got.Sources) != 0 {
		t.Errorf("Sources = %v, want none", got.Sources)
	}
}

func TestBuild_UnknownType(t *testing.T) {
	var b Builder
	got := b.Build(&models.LCPElement{Type: "iframe", Src: "/x.png"})
	if got.Tags != "" || len(got.Sources) != 0 {
		t.Errorf("unknown type produced %+v, want empty result", got)
	}
}

func TestBuild_Img(t *testing.T) {
	var b Builder
	got := b.Build(&models.LCPElement{Type: models.TypeImg, Src: "https://example.com/hero.webp"})

	want := `<link rel="preload" as="image" href="https://example.com/hero.webp" fetchpriority="high">`
	if got.Tags != want {
		t.Errorf("Tags = %q, want %q", got.Tags, want)
	}
	if !reflect.DeepEqual(got.Sources, []string{"https://example.com/hero.webp"}) {
		t.Errorf("Sources = %v, want single hero.webp", got.Sources)
	}
}

func TestBuild_ImgSrcset(t *testing.T) {
	var b Builder
	got := b.Build(&models.LCPElement{
		Type:   models.TypeImgSrcset,
		Src:    "/img/hero.jpg",
		Srcset: "/img/hero-480.jpg 480w, /img/hero-960.jpg 960w",
		Sizes:  "(max-width: 600px) 480px, 960px",
	})

	want := `<link rel="preload" as="image" href="/img/hero.jpg"` +
		` imagesrcset="/img/hero-480.jpg 480w, /img/hero-960.jpg 960w"` +
		` imagesizes="(max-width: 600px) 480px, 960px" fetchpriority="high">`
	if got.Tags != want {
		t.Errorf("Tags = %q, want %q", got.Tags, want)
	}
	if !reflect.DeepEqual(got.Sources, []string{"/img/hero.jpg"}) {
		t.Errorf("Sources = %v, want [/img/hero.jpg]", got.Sources)
	}
}

func TestBuild_BackgroundSet(t *testing.T) {
	var b Builder
	got := b.Build(&models.LCPElement{
		Type: models.TypeBgImgSet,
		BgSet: []models.BackgroundSource{
			{Src: "/bg/low.png"},
			{Src: "/bg/high.png"},
		},
	})

	want := `<link rel="preload" as="image" imagesrcset="/bg/low.png,/bg/high.png" fetchpriority="high">`
	if got.Tags != want {
		t.Errorf("Tags = %q, want %q", got.Tags, want)
	}
	if !reflect.DeepEqual(got.Sources, []string{"/bg/low.png", "/bg/high.png"}) {
		t.Errorf("Sources = %v, want both background URLs", got.Sources)
	}
}

func TestBuild_BackgroundSet_Empty(t *testing.T) {
	var b Builder
	got := b.Build(&models.LCPElement{Type: models.TypeBgImgSet})
	if got.Tags != "" || len(got.Sources) != 0 {
		t.Errorf("empty bg_set produced %+v, want empty result", got)
	}
}

func TestBuild_BackgroundList(t *testing.T) {
	var b Builder
	got := b.Build(&models.LCPElement{
		Type: models.TypeBgImg,
		BgSet: []models.BackgroundSource{
			{Src: "/bg/a.png"},
			{Src: "/bg/b.png"},
		},
	})

	if n := strings.Count(got.Tags, "<link "); n != 2 {
		t.Fatalf("hint count = %d, want 2 (tags: %q)", n, got.Tags)
	}
	want := `<link rel="preload" as="image" href="/bg/a.png" fetchpriority="high">` +
		`<link rel="preload" as="image" href="/bg/b.png" fetchpriority="high">`
	if got.Tags != want {
		t.Errorf("Tags = %q, want %q", got.Tags, want)
	}
}

// The canonical partition case: two bounded sources plus a fallback give
// three hints covering 0-600, 600.1-900 and 900.1-up.
func TestBuild_Picture_PartitionsViewport(t *testing.T) {
	var b Builder
	got := b.Build(&models.LCPElement{
		Type: models.TypePicture,
		Src:  "/img/full.jpg",
		Sources: []models.PictureSource{
			{Srcset: "/img/small.jpg", Media: "(max-width: 600px)"},
			{Srcset: "/img/medium.jpg", Media: "(max-width: 900px)"},
		},
	})

	want := `<link rel="preload" as="image" href="/img/small.jpg" media="(max-width: 600px)" fetchpriority="high">` +
		`<link rel="preload" as="image" href="/img/medium.jpg" media="(min-width: 600.1px) and (max-width: 900px)" fetchpriority="high">` +
		`<link rel="preload" as="image" href="/img/full.jpg" media="(min-width: 900.1px)" fetchpriority="high">`
	if got.Tags != want {
		t.Errorf("Tags = %q, want %q", got.Tags, want)
	}

	wantSources := []string{"/img/small.jpg", "/img/medium.jpg", "/img/full.jpg"}
	if !reflect.DeepEqual(got.Sources, wantSources) {
		t.Errorf("Sources = %v, want %v", got.Sources, wantSources)
	}
}

// A source without a max-width clause keeps the previous bound for the
// source after it.
func TestBuild_Picture_CarriesLastMaxWidthForward(t *testing.T) {
	var b Builder
	got := b.Build(&models.LCPElement{
		Type: models.TypePicture,
		Src:  "/img/full.jpg",
		Sources: []models.PictureSource{
			{Srcset: "/img/small.jpg", Media: "(max-width: 600px)"},
			{Srcset: "/img/dark.jpg", Media: "(prefers-color-scheme: dark)"},
			{Srcset: "/img/medium.jpg", Media: "(max-width: 900px)"},
		},
	})

	if !strings.Contains(got.Tags, `media="(min-width: 600.1px) and (prefers-color-scheme: dark)"`) {
		t.Errorf("second hint did not chain from 600px bound: %q", got.Tags)
	}
	// The third source still chains from 600, not from the unbounded one.
	if !strings.Contains(got.Tags, `media="(min-width: 600.1px) and (max-width: 900px)"`) {
		t.Errorf("third hint did not carry the 600px bound forward: %q", got.Tags)
	}
	if !strings.Contains(got.Tags, `media="(min-width: 900.1px)"`) {
		t.Errorf("missing open-ended fallback hint: %q", got.Tags)
	}
}

// No source ever had a max-width: no bound is known, so no fallback hint.
func TestBuild_Picture_NoMaxWidthNoFallbackHint(t *testing.T) {
	var b Builder
	got := b.Build(&models.LCPElement{
		Type: models.TypePicture,
		Src:  "/img/full.jpg",
		Sources: []models.PictureSource{
			{Srcset: "/img/dark.jpg", Media: "(prefers-color-scheme: dark)"},
		},
	})

	if n := strings.Count(got.Tags, "<link "); n != 1 {
		t.Errorf("hint count = %d, want 1 (tags: %q)", n, got.Tags)
	}
	if !reflect.DeepEqual(got.Sources, []string{"/img/dark.jpg"}) {
		t.Errorf("Sources = %v, want only the source srcset", got.Sources)
	}
}

func TestBuild_Picture_FractionalMaxWidth(t *testing.T) {
	var b Builder
	got := b.Build(&models.LCPElement{
		Type: models.TypePicture,
		Src:  "/img/full.jpg",
		Sources: []models.PictureSource{
			{Srcset: "/img/small.jpg", Media: "(max-width: 599.5px)"},
		},
	})

	if !strings.Contains(got.Tags, `media="(min-width: 599.6px)"`) {
		t.Errorf("fractional bound not chained: %q", got.Tags)
	}
}

// Beacon-supplied URLs end up inside attribute values and must not be able
// to break out of them.
func TestBuild_EscapesHostileValues(t *testing.T) {
	var b Builder
	got := b.Build(&models.LCPElement{
		Type: models.TypeImg,
		Src:  `/x.png" onload="alert(1)`,
	})

	if strings.Contains(got.Tags, `" onload="`) {
		t.Errorf("unescaped attribute breakout: %q", got.Tags)
	}
	if !strings.Contains(got.Tags, "&#34;") {
		t.Errorf("quote not escaped: %q", got.Tags)
	}
}
