package view

import (
	"log/slog"
	"time"

	"github.com/soocke/droidcast-go/config"
	"github.com/soocke/droidcast-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions wired by the app.
type Handlers struct {
	Toggle   func()
	Region   func() // nil hides the region button
	Settings func()
	Exit     func()
}

// RootView composes the window: a control row, a status row and the mirror.
type RootView struct {
	cfg    *config.Config
	logger *slog.Logger

	Session *SessionStats
	Mirror  *MirrorView

	statusLbl *TLabelWidget
	toggleBtn *TButtonWidget
	settings  *ConfigPanel
}

func NewRootView(cfg *config.Config, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, logger: logger}
}

// Build lays out the widgets. settings may be nil.
func (rv *RootView) Build(h Handlers, settings *ConfigPanel) {
	rv.settings = settings

	bar := Frame()
	Grid(bar, Row(0), Column(0), Columnspan(4), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	rv.toggleBtn = TButton(Style(theme.StylePrimaryButton), Txt("Start"), Command(h.Toggle))
	Grid(rv.toggleBtn, In(bar), Row(0), Column(0), Sticky("w"), Padx("0.2m"))
	col := 1
	if h.Region != nil {
		regionBtn := Button(Txt("Region"), Command(h.Region))
		Grid(regionBtn, In(bar), Row(0), Column(col), Sticky("w"), Padx("0.2m"))
		col++
	}
	settingsBtn := Button(Txt("Settings"), Command(h.Settings))
	Grid(settingsBtn, In(bar), Row(0), Column(col), Sticky("w"), Padx("0.2m"))
	exitBtn := TButton(Style(theme.StyleDangerButton), Txt("Exit"), Command(h.Exit))
	Grid(exitBtn, In(bar), Row(0), Column(col+1), Sticky("e"), Padx("0.2m"))
	GridColumnConfigure(bar.Window, col+1, Weight(1))

	status := Frame()
	Grid(status, Row(1), Column(0), Columnspan(4), Sticky("we"), Padx("0.3m"))
	rv.Session = NewSessionStats(status, 0, 0)
	rv.statusLbl = TLabel(Style(theme.StyleStatusLabel), Txt("idle"), Anchor("w"))
	Grid(rv.statusLbl, In(status), Row(0), Column(2), Sticky("we"), Padx("0.2m"))
	GridColumnConfigure(status.Window, 2, Weight(1))
	GridColumnConfigure(App, 0, Weight(1))

	rv.Mirror = NewMirrorView(2, rv.cfg.WindowW, rv.cfg.WindowH, rv.logger)
}

// SetSession implements presenter.StatusView.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv != nil {
		rv.Session.Set(session, total)
	}
}

// SetStatus implements presenter.StatusView.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.statusLbl != nil {
		rv.statusLbl.Configure(Txt(text))
	}
}

// ConfigEditable implements presenter.LifecycleView: settings are editable
// only while stopped, and the toggle button names the next action.
func (rv *RootView) ConfigEditable(b bool) {
	if rv == nil {
		return
	}
	if rv.settings != nil {
		rv.settings.SetEditable(b)
	}
	if rv.toggleBtn != nil {
		if b {
			rv.toggleBtn.Configure(Txt("Start"))
		} else {
			rv.toggleBtn.Configure(Txt("Stop"))
		}
	}
}
