package preload

import "testing"

func TestMaxWidth(t *testing.T) {
	tests := []struct {
		media string
		want  float64
		ok    bool
	}{
		{"(max-width: 600px)", 600, true},
		{"(max-width:600px)", 600, true},
		{"(max-width: 599.5px)", 599.5, true},
		{"screen and (max-width: 1024px)", 1024, true},
		{"(min-width: 600px)", 0, false},
		{"", 0, false},
		{"(max-width: 600em)", 0, false},
	}
	for _, tt := range tests {
		got, ok := maxWidth(tt.media)
		if ok != tt.ok || got != tt.want {
			t.Errorf("maxWidth(%q) = (%v, %v), want (%v, %v)", tt.media, got, ok, tt.want, tt.ok)
		}
	}
}

func TestChainMedia(t *testing.T) {
	if got := chainMedia("(max-width: 600px)", nil); got != "(max-width: 600px)" {
		t.Errorf("first source media = %q, want unchanged", got)
	}

	prev := 600.0
	want := "(min-width: 600.1px) and (max-width: 900px)"
	if got := chainMedia("(max-width: 900px)", &prev); got != want {
		t.Errorf("chained media = %q, want %q", got, want)
	}
}

func TestFormatPx(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{600.1, "600.1"},
		{900.1, "900.1"},
		{599.6, "599.6"},
		{1920, "1920"},
	}
	for _, tt := range tests {
		if got := formatPx(tt.in); got != tt.want {
			t.Errorf("formatPx(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
