package app

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/soocke/droidcast-go/config"
	"github.com/soocke/droidcast-go/domain/capture"
	"github.com/soocke/droidcast-go/ui/model"
	"github.com/soocke/droidcast-go/ui/presenter"
	"github.com/soocke/droidcast-go/ui/surface"
)

// ContainerDeps are the display-specific pieces a backend supplies.
type ContainerDeps struct {
	Config     *config.Config
	Logger     *slog.Logger
	View       presenter.MirrorView
	Notifier   presenter.Notifier
	Lifecycle  presenter.LifecycleView // optional
	Status     presenter.StatusView    // optional
	Region     func() image.Rectangle  // optional, desktop source only
	Background color.Color
}

// AppContainer assembles models, the capture pipeline and the presenters.
type AppContainer struct {
	Config  *config.Config
	Logger  *slog.Logger
	Capture *model.CaptureModel
	Session *model.SessionModel
	Surface *surface.DoubleBuffer

	Mirror           *presenter.MirrorPresenter
	SessionPresenter *presenter.SessionPresenter
	Loop             *presenter.Loop

	region func() image.Rectangle
}

// BuildContainer constructs all components. It has no side effects beyond
// allocating the surface; nothing starts until the presenter is started.
func BuildContainer(d ContainerDeps) *AppContainer {
	cfg := d.Config
	c := &AppContainer{Config: cfg, Logger: d.Logger, region: d.Region}
	c.Capture = &model.CaptureModel{}
	c.Session = model.NewSessionModel()
	c.Surface = surface.New(cfg.MaxSurfaceW, cfg.MaxSurfaceH, d.Background,
		surface.WithScaler(surface.ScalerByName(cfg.Scaler)),
		surface.WithKeepAspect(cfg.KeepAspect),
	)
	c.Mirror = presenter.NewMirrorPresenter(presenter.MirrorDeps{
		Source:    capture.SourceFromConfig(cfg, d.Region),
		Loop:      capture.LoopOptionsFromConfig(cfg),
		View:      d.View,
		Surface:   c.Surface,
		Notifier:  d.Notifier,
		Model:     c.Capture,
		Lifecycle: d.Lifecycle,
		Logger:    d.Logger,
	})
	if d.Status != nil {
		c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.Capture, c.Mirror, d.Status)
	}
	c.Loop = presenter.NewLoop(c.Mirror, c.SessionPresenter, nil)
	return c
}

// ApplyConfig pushes edited settings into the pipeline. Source changes take
// effect on the next start; the presenter refuses them while mirroring.
func (c *AppContainer) ApplyConfig(cfg *config.Config) error {
	c.Config = cfg
	c.Surface.SetScaler(surface.ScalerByName(cfg.Scaler))
	c.Surface.SetKeepAspect(cfg.KeepAspect)
	if err := c.Mirror.Reconfigure(capture.SourceFromConfig(cfg, c.region), capture.LoopOptionsFromConfig(cfg)); err != nil {
		return err
	}
	c.Mirror.Redraw()
	return nil
}
