// Package ebitenview is the alternative display backend: an ebiten game whose
// Update drives the presenter and whose Draw shows the last composed frame.
package ebitenview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const noticeDuration = 6 * time.Second

// Controller is the presenter side the game drives from Update.
type Controller interface {
	Drain()
	Toggle(ctx context.Context) error
	Close()
	Status() string
}

// Game implements ebiten.Game, surface.Target and presenter.Notifier. All of
// its methods run on ebiten's game goroutine.
type Game struct {
	ctrl   Controller
	ctx    context.Context
	logger *slog.Logger
	bg     color.Color
	title  string

	frame *ebiten.Image
	w, h  int

	notice      string
	noticeUntil time.Time
	closed      bool
}

func NewGame(ctx context.Context, title string, w, h int, bg color.Color, logger *slog.Logger) *Game {
	if ctx == nil {
		ctx = context.Background()
	}
	if bg == nil {
		bg = color.Black
	}
	return &Game{ctx: ctx, title: title, w: w, h: h, bg: bg, logger: logger}
}

// SetController attaches the presenter; it is created after the game because
// it renders into it.
func (g *Game) SetController(c Controller) { g.ctrl = c }

// Run opens the window and blocks until it is closed. Must be called from the
// main goroutine.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.w, g.h)
	ebiten.SetWindowTitle(g.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (g *Game) Update() error {
	if g.ctrl == nil {
		return nil
	}
	if g.ctx.Err() != nil || ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.shutdown()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if err := g.ctrl.Toggle(g.ctx); err != nil {
			g.Notify(err)
		}
	}
	g.ctrl.Drain()
	return nil
}

func (g *Game) shutdown() {
	if g.closed {
		return
	}
	g.closed = true
	g.ctrl.Close()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)
	if g.frame != nil {
		screen.DrawImage(g.frame, nil)
	}
	lines := "space: start/stop  esc: quit"
	if g.ctrl != nil {
		lines = g.ctrl.Status() + "\n" + lines
	}
	if n := g.activeNotice(time.Now()); n != "" {
		lines += "\n" + n
	}
	ebitenutil.DebugPrint(screen, lines)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.w, g.h = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// SurfaceSize implements presenter.MirrorView.
func (g *Game) SurfaceSize() (int, int) { return max(g.w, 1), max(g.h, 1) }

// Blit implements surface.Target. The image has a tight stride, so it can be
// uploaded with a single WritePixels.
func (g *Game) Blit(img *image.RGBA) {
	if img == nil {
		return
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if g.frame == nil || g.frame.Bounds().Dx() != w || g.frame.Bounds().Dy() != h {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(w, h)
	}
	g.frame.WritePixels(img.Pix)
}

// Notify implements presenter.Notifier by showing the error as overlay text
// for a few seconds.
func (g *Game) Notify(err error) {
	if err == nil {
		return
	}
	if g.logger != nil {
		g.logger.Error("notify", "error", err)
	}
	g.notice = fmt.Sprintf("error: %v", err)
	g.noticeUntil = time.Now().Add(noticeDuration)
}

func (g *Game) activeNotice(now time.Time) string {
	if g.notice == "" || now.After(g.noticeUntil) {
		return ""
	}
	return g.notice
}
