package view

import (
	"log/slog"
	"strings"

	"github.com/soocke/droidcast-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel is the settings window. It edits a copy of the config and, on
// Apply, validates it, writes it back, saves it and calls onApply.
type ConfigPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	onApply  func(*config.Config)
	editable bool

	win      *ToplevelWidget
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget
}

func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApply func(*config.Config)) *ConfigPanel {
	return &ConfigPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApply: onApply, editable: true}
}

// OpenOrFocus shows the settings window, creating it on first use.
func (v *ConfigPanel) OpenOrFocus() {
	if v.win != nil {
		WmDeiconify(v.win.Window)
		Focus(v.win)
		return
	}
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("Settings")
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.close)
	v.win = win
	v.widgets = make(map[string]*TextWidget)
	row := 0
	for _, f := range config.EditableFields {
		lbl := win.Label(Txt(f.Label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := win.Text(Height(1), Width(24))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		value, _ := v.cfg.Get(f.Key)
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[f.Key] = w
		row++
	}
	v.applyBtn = win.Button(Txt("Apply Changes"), Command(v.ApplyChanges))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	v.SetEditable(v.editable)
}

// SetEditable enables or disables the form; settings are locked while mirroring.
func (v *ConfigPanel) SetEditable(enabled bool) {
	v.editable = enabled
	if v.win == nil {
		return
	}
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		w.Configure(State(state))
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *ConfigPanel) ApplyChanges() {
	if v.cfg == nil || !v.editable {
		return
	}
	cfg := *v.cfg
	for _, f := range config.EditableFields {
		w := v.widgets[f.Key]
		if w == nil {
			continue
		}
		if err := cfg.Set(f.Key, strings.Join(w.Get("1.0", END), "")); err != nil {
			if v.logger != nil {
				v.logger.Warn("setting ignored", "key", f.Key, "error", err)
			}
			// keep the previous value for this field
			prev, _ := v.cfg.Get(f.Key)
			_ = cfg.Set(f.Key, prev)
		}
	}
	if err := cfg.Validate(); err != nil {
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	if v.onApply != nil {
		v.onApply(v.cfg)
	}
	v.close()
}

func (v *ConfigPanel) close() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
		v.widgets = nil
		v.applyBtn = nil
	}
}
