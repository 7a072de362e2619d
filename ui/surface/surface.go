// Package surface implements the off-screen buffer frames are composited into
// before being handed to the visible widget in a single blit.
package surface

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Target is the visible surface. Blit receives a fully composed image and must
// show it in one step. The image is only valid for the duration of the call.
type Target interface {
	Blit(img *image.RGBA)
}

// DoubleBuffer is an off-screen RGBA buffer allocated once at the largest
// expected visible size and reused for every composite.
// It is not safe for concurrent use; the UI thread owns it.
type DoubleBuffer struct {
	back       *image.RGBA
	bg         image.Uniform
	scaler     draw.Scaler
	keepAspect bool
	composites uint64
}

// Option configures a DoubleBuffer.
type Option func(*DoubleBuffer)

// WithScaler selects the interpolation used when drawing frames.
func WithScaler(s draw.Scaler) Option {
	return func(b *DoubleBuffer) {
		if s != nil {
			b.scaler = s
		}
	}
}

// WithKeepAspect letterboxes frames instead of stretching them to the surface.
func WithKeepAspect(keep bool) Option {
	return func(b *DoubleBuffer) { b.keepAspect = keep }
}

// ScalerByName maps a config name to a scaler; unknown names get bilinear.
func ScalerByName(name string) draw.Scaler {
	switch name {
	case "nearest":
		return draw.NearestNeighbor
	case "catmullrom":
		return draw.CatmullRom
	default:
		return draw.ApproxBiLinear
	}
}

// New allocates the back buffer at maxW x maxH.
func New(maxW, maxH int, bg color.Color, opts ...Option) *DoubleBuffer {
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	if bg == nil {
		bg = color.Black
	}
	b := &DoubleBuffer{
		back:   image.NewRGBA(image.Rect(0, 0, maxW, maxH)),
		bg:     image.Uniform{C: bg},
		scaler: draw.ApproxBiLinear,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// MaxSize returns the dimensions the buffer was allocated with.
func (b *DoubleBuffer) MaxSize() image.Point { return b.back.Rect.Size() }

// SetBackground changes the clear colour used by subsequent composites.
func (b *DoubleBuffer) SetBackground(c color.Color) {
	if c != nil {
		b.bg = image.Uniform{C: c}
	}
}

// SetScaler replaces the interpolation used by subsequent composites.
func (b *DoubleBuffer) SetScaler(s draw.Scaler) { WithScaler(s)(b) }

// SetKeepAspect switches between letterboxing and stretching.
func (b *DoubleBuffer) SetKeepAspect(keep bool) { b.keepAspect = keep }

// Composites returns how many frames have been composed.
func (b *DoubleBuffer) Composites() uint64 { return b.composites }

// Composite clears a w x h region of the back buffer, draws src scaled into it
// and returns that region. w and h are clamped to the allocated size. The
// returned image shares the back buffer's memory and has a tight stride.
func (b *DoubleBuffer) Composite(src image.Image, w, h int) *image.RGBA {
	view := b.view(w, h)
	draw.Draw(view, view.Rect, &b.bg, image.Point{}, draw.Src)
	if src != nil {
		sb := src.Bounds()
		if !sb.Empty() {
			dst := view.Rect
			if b.keepAspect {
				dst = FitRect(view.Rect.Dx(), view.Rect.Dy(), sb.Dx(), sb.Dy())
			}
			b.scaler.Scale(view, dst, src, sb, draw.Over, nil)
		}
	}
	b.composites++
	return view
}

// Render composites src at w x h and blits the result to t in one call.
func (b *DoubleBuffer) Render(t Target, src image.Image, w, h int) {
	view := b.Composite(src, w, h)
	if t != nil {
		t.Blit(view)
	}
}

// view reinterprets the head of the back buffer as a w x h image with stride
// w*4 so targets can upload it as one contiguous block.
func (b *DoubleBuffer) view(w, h int) *image.RGBA {
	size := b.back.Rect.Size()
	w = min(max(w, 1), size.X)
	h = min(max(h, 1), size.Y)
	return &image.RGBA{
		Pix:    b.back.Pix[:w*h*4],
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
}

// FitRect returns the largest rectangle with the frame's aspect ratio centred
// in a viewW x viewH area.
func FitRect(viewW, viewH, frameW, frameH int) image.Rectangle {
	if frameW <= 0 || frameH <= 0 || viewW <= 0 || viewH <= 0 {
		return image.Rect(0, 0, max(viewW, 0), max(viewH, 0))
	}
	scale := math.Min(float64(viewW)/float64(frameW), float64(viewH)/float64(frameH))
	w := int(math.Round(float64(frameW) * scale))
	h := int(math.Round(float64(frameH) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	x := (viewW - w) / 2
	y := (viewH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}
