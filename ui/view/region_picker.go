package view

import (
	"image"
	"log/slog"
	"sync/atomic"

	"github.com/soocke/droidcast-go/config"
	"github.com/soocke/droidcast-go/ui/layout"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// RegionPicker is a see-through window the operator drags and resizes over
// the part of the desktop to mirror when the desktop source is selected.
// Region is read by the capture worker, so the rectangle is kept atomically.
type RegionPicker struct {
	logger  *slog.Logger
	cfg     *config.Config
	cfgPath string
	screen  image.Rectangle
	region  atomic.Value // image.Rectangle
	win     *ToplevelWidget
}

// NewRegionPicker seeds the region from cfg. screen is the desktop bounds used
// to place the picker.
func NewRegionPicker(cfg *config.Config, cfgPath string, screen image.Rectangle, logger *slog.Logger) *RegionPicker {
	v := &RegionPicker{logger: logger, cfg: cfg, cfgPath: cfgPath, screen: screen}
	if cfg != nil {
		v.region.Store(cfg.Region())
	} else {
		v.region.Store(image.Rectangle{})
	}
	return v
}

// OpenOrFocus shows the picker, or brings an open one back to the front.
func (v *RegionPicker) OpenOrFocus() {
	if v.win != nil {
		WmDeiconify(v.win.Window)
		Focus(v.win)
		return
	}
	win := App.Toplevel(Borderwidth(2), Background("#008080"))
	win.WmTitle("Mirror Region")
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.destroy)
	v.win = win
	start := v.Region()
	if start.Empty() {
		start = layout.Centered(v.screen.Dx(), v.screen.Dy(), v.screen.Dx()*2/3, v.screen.Dy()*5/9)
	}
	WmGeometry(win.Window, layout.FormatGeometry(start))
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-transparentcolor", "#008080")
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 1, Weight(1))
	left := win.Frame(Width(4), Background("#FFFFFF"))
	Grid(left, Row(0), Column(0), Sticky("ns"))
	center := win.Frame(Background("#008080"))
	Grid(center, Row(0), Column(1), Sticky("nsew"))
	right := win.Frame(Width(4), Background("#FFFFFF"))
	Grid(right, Row(0), Column(2), Sticky("ns"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Columnspan(3), Sticky("we"))
	confirm := win.Button(Txt("Confirm [Enter]"), Command(v.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.destroy))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	clear := win.Button(Txt("Whole Screen"), Command(v.Clear))
	Grid(clear, In(controls), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.destroy))
}

// Region returns the selected rectangle; empty means the whole screen.
func (v *RegionPicker) Region() image.Rectangle {
	r, _ := v.region.Load().(image.Rectangle)
	return r
}

// Clear goes back to mirroring the whole screen.
func (v *RegionPicker) Clear() {
	v.store(image.Rectangle{})
	v.destroy()
}

func (v *RegionPicker) confirm() {
	if v.win == nil {
		return
	}
	if rect, ok := layout.ParseGeometry(WmGeometry(v.win.Window)); ok {
		v.store(rect)
	}
	v.destroy()
}

func (v *RegionPicker) store(r image.Rectangle) {
	v.region.Store(r)
	if v.cfg == nil {
		return
	}
	v.cfg.SetRegion(r)
	if err := v.cfg.Save(v.cfgPath); err != nil && v.logger != nil {
		v.logger.Error("config save failed", "error", err)
	}
}

func (v *RegionPicker) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}
