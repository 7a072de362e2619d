// Package palette holds the light and dark colours shared by both display
// backends. It does not touch Tk, so the ebiten backend can use it too.
package palette

import "image/color"

// Snapshot represents resolved colors for one mode.
type Snapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

var (
	light = Snapshot{
		AppBg:     "#f7f9fb",
		Surface:   "#ffffff",
		Border:    "#d0d7de",
		Primary:   "#2563eb",
		Danger:    "#dc2626",
		Accent:    "#10b981",
		Text:      "#1e293b",
		TextMuted: "#64748b",
	}
	dark = Snapshot{
		AppBg:     "#0f172a",
		Surface:   "#1e293b",
		Border:    "#334155",
		Primary:   "#3b82f6",
		Danger:    "#ef4444",
		Accent:    "#10b981",
		Text:      "#f1f5f9",
		TextMuted: "#94a3b8",
	}
)

var darkMode bool

// Current returns colors for the current dark/light mode.
func Current() Snapshot {
	if darkMode {
		return dark
	}
	return light
}

// SetDark selects the mode.
func SetDark(isDark bool) { darkMode = isDark }

// IsDark reports the current mode.
func IsDark() bool { return darkMode }

// SurfaceColor is the clear colour for the mirror surface. It follows the
// window background so letterbox bars blend in.
func SurfaceColor() color.RGBA {
	return Hex(Current().AppBg)
}

// Hex parses "#rrggbb"; anything else yields opaque black.
func Hex(s string) color.RGBA {
	c := color.RGBA{A: 0xff}
	if len(s) != 7 || s[0] != '#' {
		return c
	}
	var v [3]uint8
	for i := range v {
		hi, ok1 := nibble(s[1+2*i])
		lo, ok2 := nibble(s[2+2*i])
		if !ok1 || !ok2 {
			return c
		}
		v[i] = hi<<4 | lo
	}
	c.R, c.G, c.B = v[0], v[1], v[2]
	return c
}

func nibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
