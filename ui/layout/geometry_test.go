package layout

import (
	"image"
	"testing"
)

func TestParseGeometry(t *testing.T) {
	cases := []struct {
		in   string
		want image.Rectangle
		ok   bool
	}{
		{"480x900+100+50", image.Rect(100, 50, 580, 950), true},
		{" 20x10+-5+-7 ", image.Rect(-5, -7, 15, 3), true},
		{"0x10+0+0", image.Rectangle{}, false},
		{"480x900", image.Rectangle{}, false},
		{"", image.Rectangle{}, false},
	}
	for _, c := range cases {
		got, ok := ParseGeometry(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseGeometry(%q) = %v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestFormatGeometry_RoundTrip(t *testing.T) {
	r := image.Rect(-3, 4, 97, 204)
	got, ok := ParseGeometry(FormatGeometry(r))
	if !ok || got != r {
		t.Fatalf("round trip %v -> %v", r, got)
	}
}

func TestCentered(t *testing.T) {
	if got := Centered(1920, 1080, 480, 900); got != image.Rect(720, 90, 1200, 990) {
		t.Fatalf("Centered = %v", got)
	}
}

func TestSurfaceSize(t *testing.T) {
	if w, h := SurfaceSize(480, 900, 120, 4); w != 472 || h != 772 {
		t.Fatalf("SurfaceSize = %dx%d", w, h)
	}
	if w, h := SurfaceSize(5, 5, 120, 4); w != 1 || h != 1 {
		t.Fatalf("tiny window should clamp to 1x1, got %dx%d", w, h)
	}
}
