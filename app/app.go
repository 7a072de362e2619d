package app

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/vova616/screenshot"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/droidcast-go/assets"
	"github.com/soocke/droidcast-go/config"
	"github.com/soocke/droidcast-go/ui/layout"
	"github.com/soocke/droidcast-go/ui/palette"
	"github.com/soocke/droidcast-go/ui/theme"
	"github.com/soocke/droidcast-go/ui/view"
)

// tick is the Tk-side drain period; frames arrive at most every capture interval.
const tick = 16 * time.Millisecond

// Run opens the configured display backend and blocks until the window closes
// or ctx is cancelled. The capture session is always stopped and joined
// before Run returns.
func Run(ctx context.Context, cfg *config.Config, cfgPath string, logger *slog.Logger) error {
	if cfg.UI == config.UIEbiten {
		return runEbiten(ctx, cfg, logger)
	}
	a := &tkApp{ctx: ctx, cfg: cfg, cfgPath: cfgPath, logger: logger}
	a.start()
	App.Wait()
	return nil
}

type tkApp struct {
	ctx      context.Context
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	c        *AppContainer
	notifier *view.MessageNotifier
	afterID  string
	exited   bool
}

func (a *tkApp) start() {
	App.WmTitle("droidcast")
	App.IconPhoto(NewPhoto(Data(assets.IconPNG)))
	screen := screenBounds(a.logger)
	WmGeometry(App, layout.FormatGeometry(layout.Centered(screen.Dx(), screen.Dy(), a.cfg.WindowW, a.cfg.WindowH)))
	WmProtocol(App, "WM_DELETE_WINDOW", a.exit)
	theme.Apply(a.cfg.DarkMode)

	region := view.NewRegionPicker(a.cfg, a.cfgPath, screen, a.logger)
	settings := view.NewConfigPanel(a.cfg, a.cfgPath, a.logger, a.applyConfig)
	root := view.NewRootView(a.cfg, a.logger)
	root.Build(view.Handlers{
		Toggle:   a.toggle,
		Region:   region.OpenOrFocus,
		Settings: settings.OpenOrFocus,
		Exit:     a.exit,
	}, settings)

	a.notifier = &view.MessageNotifier{Title: "droidcast", Logger: a.logger}
	a.c = BuildContainer(ContainerDeps{
		Config:     a.cfg,
		Logger:     a.logger,
		View:       root.Mirror,
		Notifier:   a.notifier,
		Lifecycle:  root,
		Status:     root,
		Region:     region.Region,
		Background: palette.SurfaceColor(),
	})
	a.c.Loop.Schedule = a.schedule

	if a.cfg.AutoStart {
		a.toggle()
	}
	a.schedule()
}

func (a *tkApp) schedule() {
	// TclAfter keeps every callback on Tk's event loop thread.
	a.afterID = TclAfter(tick, a.update)
}

func (a *tkApp) update() {
	if a.ctx.Err() != nil {
		a.exit()
		return
	}
	a.c.Loop.Tick()
}

func (a *tkApp) toggle() {
	if err := a.c.Mirror.Toggle(a.ctx); err != nil {
		a.notifier.Notify(err)
	}
}

func (a *tkApp) applyConfig(cfg *config.Config) {
	if cfg.DarkMode != palette.IsDark() {
		theme.Apply(cfg.DarkMode)
		a.c.Surface.SetBackground(palette.SurfaceColor())
	}
	if err := a.c.ApplyConfig(cfg); err != nil {
		a.notifier.Notify(err)
	}
}

func (a *tkApp) exit() {
	if a.exited {
		return
	}
	a.exited = true
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.c.Mirror.Close()
	Destroy(App)
}

// screenBounds returns the primary screen rectangle, or 1920x1080 when it
// cannot be queried.
func screenBounds(logger *slog.Logger) image.Rectangle {
	r, err := screenshot.ScreenRect()
	if err != nil || r.Empty() {
		if logger != nil && err != nil {
			logger.Warn("screen size unavailable", "error", err)
		}
		return image.Rect(0, 0, 1920, 1080)
	}
	return r
}
