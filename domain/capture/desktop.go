package capture

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/vova616/screenshot"
)

// DesktopSource grabs the local primary screen instead of a device. It exists
// for trying the mirror window without a phone attached; the bytes it returns
// are PNG like adb's, so the rest of the pipeline cannot tell the difference.
type DesktopSource struct {
	// Rect limits the grab to part of the screen; empty means the whole screen.
	Rect image.Rectangle
	// Region, when set, is consulted on every capture and overrides Rect.
	// The region picker in the Tk window updates it while mirroring.
	Region func() image.Rectangle
}

var desktopEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

func (s *DesktopSource) Capture(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, newError(ErrCancelled, "desktop grab", err)
	}
	var (
		img *image.RGBA
		err error
	)
	rect := s.Rect
	if s.Region != nil {
		rect = s.Region()
	}
	if rect.Empty() {
		img, err = screenshot.CaptureScreen()
	} else {
		img, err = screenshot.CaptureRect(rect)
	}
	if err != nil {
		return nil, newError(ErrCaptureIO, "desktop grab", err)
	}
	var buf bytes.Buffer
	if err := desktopEncoder.Encode(&buf, img); err != nil {
		return nil, newError(ErrCaptureIO, "desktop encode", err)
	}
	return buf.Bytes(), nil
}
