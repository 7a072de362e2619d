package app

import (
	"context"
	"image"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/soocke/droidcast-go/assets"
	"github.com/soocke/droidcast-go/config"
	"github.com/soocke/droidcast-go/ui/ebitenview"
	"github.com/soocke/droidcast-go/ui/palette"
)

func runEbiten(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	palette.SetDark(cfg.DarkMode)
	if icon, err := assets.Icon(); err == nil {
		ebiten.SetWindowIcon([]image.Image{icon})
	}
	g := ebitenview.NewGame(ctx, "droidcast", cfg.WindowW, cfg.WindowH, palette.SurfaceColor(), logger)
	c := BuildContainer(ContainerDeps{
		Config:     cfg,
		Logger:     logger,
		View:       g,
		Notifier:   g,
		Background: palette.SurfaceColor(),
	})
	g.SetController(c.Mirror)
	if cfg.AutoStart {
		if err := c.Mirror.Start(ctx); err != nil {
			g.Notify(err)
		}
	}
	defer c.Mirror.Close()
	return g.Run()
}
