// Package layout converts between Tk geometry strings and rectangles and
// derives the mirror surface size from the window size.
package layout

import (
	"fmt"
	"image"
	"regexp"
	"strconv"
	"strings"
)

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y".
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// ParseGeometry parses a Tk geometry string into a rectangle in screen coordinates.
func ParseGeometry(g string) (image.Rectangle, bool) {
	m := geomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}

// FormatGeometry is the inverse of ParseGeometry.
func FormatGeometry(r image.Rectangle) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
}

// Centered returns a w x h rectangle centred on a screen of the given size.
func Centered(screenW, screenH, w, h int) image.Rectangle {
	w, h = max(w, 1), max(h, 1)
	x, y := (screenW-w)/2, (screenH-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// SurfaceSize is the area left for the mirror once the control rows
// (reservedH pixels) and padding are taken from a window of winW x winH.
func SurfaceSize(winW, winH, reservedH, pad int) (int, int) {
	w := winW - 2*pad
	h := winH - reservedH - 2*pad
	return max(w, 1), max(h, 1)
}
