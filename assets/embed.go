package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/png"
)

// IconPNG is the window icon.
//
//go:embed icon.png
var IconPNG []byte

// Icon decodes the embedded window icon.
func Icon() (image.Image, error) {
	if len(IconPNG) == 0 {
		return nil, fmt.Errorf("embedded icon.png is empty")
	}
	img, err := png.Decode(bytes.NewReader(IconPNG))
	if err != nil {
		return nil, fmt.Errorf("decode icon: %w", err)
	}
	return img, nil
}
