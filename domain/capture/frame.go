package capture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"sync/atomic"
	"time"
)

// minEncodedSize is the size of the smallest valid PNG: signature plus IHDR.
const minEncodedSize = 8 + 25

// Frame is an immutable decoded bitmap plus its pixel dimensions. Its pixel
// buffer is pooled; the owner calls Release once the frame is no longer shown.
type Frame struct {
	img        *image.RGBA
	sequence   uint64
	capturedAt time.Time
	released   atomic.Bool
}

// Image returns the decoded pixels. Callers must not modify them.
func (f *Frame) Image() *image.RGBA {
	if f == nil {
		return nil
	}
	return f.img
}

func (f *Frame) Width() int {
	if f == nil || f.img == nil {
		return 0
	}
	return f.img.Rect.Dx()
}

func (f *Frame) Height() int {
	if f == nil || f.img == nil {
		return 0
	}
	return f.img.Rect.Dy()
}

// Sequence is the capture sequence number assigned by the loop (0 when decoded standalone).
func (f *Frame) Sequence() uint64 {
	if f == nil {
		return 0
	}
	return f.sequence
}

// CapturedAt is when the bytes behind this frame finished arriving.
func (f *Frame) CapturedAt() time.Time {
	if f == nil {
		return time.Time{}
	}
	return f.capturedAt
}

// Release hands the pixel buffer back to the pool. Safe to call more than once;
// the frame must not be used afterwards.
func (f *Frame) Release() {
	if f == nil || !f.released.CompareAndSwap(false, true) {
		return
	}
	RecycleFrame(f.img)
	f.img = nil
}

// DecodeFrame turns encoded still-image bytes (PNG or JPEG) into a Frame.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < minEncodedSize {
		return nil, newError(ErrDecode, "decode", fmt.Errorf("%d bytes is shorter than any valid image", len(data)))
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, newError(ErrDecode, "decode", err)
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, newError(ErrDecode, "decode", errors.New("image has no pixels"))
	}
	dst := acquireFrame(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
	return &Frame{img: dst}, nil
}

// NewFrame wraps an already-decoded image. The pixels are copied into a pooled buffer.
func NewFrame(src image.Image) *Frame {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	dst := acquireFrame(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
	return &Frame{img: dst}
}

func (f *Frame) stamp(seq uint64, at time.Time) *Frame {
	f.sequence = seq
	f.capturedAt = at
	return f
}
