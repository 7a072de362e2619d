package surface

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/draw"
)

type blitRecorder struct {
	calls int
	last  *image.RGBA
	pix0  color.RGBA
}

func (r *blitRecorder) Blit(img *image.RGBA) {
	r.calls++
	r.last = img
	r.pix0 = img.RGBAAt(0, 0)
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestComposite_StretchesToSurface(t *testing.T) {
	b := New(100, 100, color.Black, WithScaler(draw.NearestNeighbor))
	red := color.RGBA{0xff, 0, 0, 0xff}
	view := b.Composite(solid(10, 20, red), 40, 30)
	if view.Rect.Dx() != 40 || view.Rect.Dy() != 30 {
		t.Fatalf("view size %v", view.Rect)
	}
	if view.Stride != 40*4 || len(view.Pix) != 40*30*4 {
		t.Fatalf("view must be contiguous: stride=%d len=%d", view.Stride, len(view.Pix))
	}
	for _, p := range []image.Point{{0, 0}, {39, 29}, {20, 15}} {
		if got := view.RGBAAt(p.X, p.Y); got != red {
			t.Fatalf("pixel %v = %v, want red", p, got)
		}
	}
}

func TestComposite_ClearsPreviousFrame(t *testing.T) {
	bg := color.RGBA{0x10, 0x20, 0x30, 0xff}
	b := New(50, 50, bg, WithScaler(draw.NearestNeighbor), WithKeepAspect(true))
	b.Composite(solid(50, 50, color.RGBA{0xff, 0xff, 0xff, 0xff}), 50, 50)
	// A tall frame letterboxed into a square leaves the sides as background.
	view := b.Composite(solid(10, 50, color.RGBA{0, 0xff, 0, 0xff}), 50, 50)
	if got := view.RGBAAt(0, 25); got != bg {
		t.Fatalf("left border = %v, want background %v", got, bg)
	}
	if got := view.RGBAAt(25, 25); got != (color.RGBA{0, 0xff, 0, 0xff}) {
		t.Fatalf("centre = %v, want green", got)
	}
}

func TestComposite_ReusesBackBuffer(t *testing.T) {
	b := New(64, 64, color.Black)
	v1 := b.Composite(solid(8, 8, color.RGBA{1, 2, 3, 0xff}), 64, 64)
	v2 := b.Composite(solid(8, 8, color.RGBA{4, 5, 6, 0xff}), 32, 16)
	if &v1.Pix[0] != &v2.Pix[0] {
		t.Fatalf("composites must share the back buffer")
	}
	if b.Composites() != 2 {
		t.Fatalf("composites = %d", b.Composites())
	}
}

func TestComposite_ClampsToAllocatedSize(t *testing.T) {
	b := New(20, 10, color.Black)
	view := b.Composite(nil, 500, 500)
	if view.Rect.Dx() != 20 || view.Rect.Dy() != 10 {
		t.Fatalf("view %v should be clamped to 20x10", view.Rect)
	}
	view = b.Composite(nil, 0, -3)
	if view.Rect.Dx() != 1 || view.Rect.Dy() != 1 {
		t.Fatalf("view %v should be at least 1x1", view.Rect)
	}
	if got := view.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 0xff}) {
		t.Fatalf("nil source should leave background, got %v", got)
	}
}

func TestRender_BlitsOnce(t *testing.T) {
	b := New(30, 30, color.Black, WithScaler(draw.NearestNeighbor))
	rec := &blitRecorder{}
	blue := color.RGBA{0, 0, 0xff, 0xff}
	b.Render(rec, solid(3, 3, blue), 30, 30)
	if rec.calls != 1 || rec.pix0 != blue {
		t.Fatalf("calls=%d pix0=%v", rec.calls, rec.pix0)
	}
}

func TestFitRect(t *testing.T) {
	cases := []struct {
		vw, vh, fw, fh int
		want           image.Rectangle
	}{
		{100, 100, 50, 100, image.Rect(25, 0, 75, 100)},
		{200, 100, 100, 100, image.Rect(50, 0, 150, 100)},
		{100, 200, 100, 100, image.Rect(0, 50, 100, 150)},
		{100, 100, 0, 10, image.Rect(0, 0, 100, 100)},
	}
	for _, c := range cases {
		if got := FitRect(c.vw, c.vh, c.fw, c.fh); got != c.want {
			t.Fatalf("FitRect(%d,%d,%d,%d) = %v, want %v", c.vw, c.vh, c.fw, c.fh, got, c.want)
		}
	}
}

func TestScalerByName(t *testing.T) {
	if ScalerByName("nearest") != draw.NearestNeighbor {
		t.Fatalf("nearest not mapped")
	}
	if ScalerByName("bogus") != draw.ApproxBiLinear {
		t.Fatalf("fallback should be bilinear")
	}
}
