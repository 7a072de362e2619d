package view

import (
	"image"
	"log/slog"

	"github.com/soocke/droidcast-go/ui/images"
	"github.com/soocke/droidcast-go/ui/layout"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	// controlsHeight is the vertical space taken by the rows above the mirror.
	controlsHeight = 64
	surfacePad     = 4
)

// MirrorView shows composed frames in a label. Each Blit encodes the frame,
// swaps a new photo into the label and deletes the previous one, so the
// label never shows a partially drawn frame.
type MirrorView struct {
	label  *LabelWidget
	photo  *Img
	enc    *images.Encoder
	logger *slog.Logger

	fallbackW, fallbackH int
}

// NewMirrorView creates the label at row and lets it take the remaining space.
func NewMirrorView(row int, w, h int, logger *slog.Logger) *MirrorView {
	v := &MirrorView{enc: images.NewEncoder(), logger: logger, fallbackW: w, fallbackH: h}
	sw, sh := v.SurfaceSize()
	data, err := v.enc.Encode(images.Placeholder(sw, sh, 0, 0, 0))
	if err == nil {
		v.photo = NewPhoto(Data(data))
	}
	if v.photo != nil {
		v.label = Label(Image(v.photo), Borderwidth(0))
	} else {
		v.label = Label(Borderwidth(0))
	}
	Grid(v.label, Row(row), Column(0), Columnspan(4), Sticky("nsew"), Padx(surfacePad), Pady(surfacePad))
	GridRowConfigure(App, row, Weight(1))
	return v
}

// Blit implements surface.Target.
func (v *MirrorView) Blit(img *image.RGBA) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	data, err := v.enc.Encode(img)
	if err != nil {
		if v.logger != nil {
			v.logger.Error("frame encode failed", "error", err)
		}
		return
	}
	next := NewPhoto(Data(data))
	v.label.Configure(Image(next))
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = next
}

// SurfaceSize derives the drawable area from the current window geometry.
func (v *MirrorView) SurfaceSize() (int, int) {
	w, h := v.fallbackW, v.fallbackH
	if r, ok := layout.ParseGeometry(WmGeometry(App)); ok {
		w, h = r.Dx(), r.Dy()
	}
	return layout.SurfaceSize(w, h, controlsHeight, surfacePad)
}
