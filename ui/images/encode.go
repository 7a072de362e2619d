// Package images holds the PNG encoding used to hand composed frames to
// widgets that only accept encoded image data.
package images

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"
)

type bufferPool struct{ p sync.Pool }

func (b *bufferPool) Get() *png.EncoderBuffer {
	if v, ok := b.p.Get().(*png.EncoderBuffer); ok {
		return v
	}
	return nil
}

func (b *bufferPool) Put(buf *png.EncoderBuffer) { b.p.Put(buf) }

var sharedPool = &bufferPool{}

// Encoder PNG-encodes images into a reused byte buffer. Not safe for
// concurrent use; each widget owns one.
type Encoder struct {
	enc png.Encoder
	buf bytes.Buffer
}

// NewEncoder returns an encoder tuned for per-frame use (fast compression).
func NewEncoder() *Encoder {
	return &Encoder{enc: png.Encoder{CompressionLevel: png.BestSpeed, BufferPool: sharedPool}}
}

// Encode returns the PNG bytes of img. The slice is only valid until the next
// call to Encode.
func (e *Encoder) Encode(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("encode png: nil image")
	}
	e.buf.Reset()
	if err := e.enc.Encode(&e.buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return e.buf.Bytes(), nil
}

// Placeholder returns a w x h opaque image of one colour, used
// before the first frame arrives.
func Placeholder(w, h int, r, g, b uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, 0xff
	}
	return img
}

// WritePNG writes img to path with default compression.
func WritePNG(path string, img image.Image) error {
	e := &Encoder{enc: png.Encoder{CompressionLevel: png.DefaultCompression, BufferPool: sharedPool}}
	data, err := e.Encode(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
