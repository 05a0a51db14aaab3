// Package window renders a particle field in an ebiten window.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/field"
	"github.com/san-kum/backdrop/internal/frame"
	"github.com/san-kum/backdrop/internal/input"
	"github.com/san-kum/backdrop/internal/metrics"
)

var (
	ColBg   = color.NRGBA{R: 11, G: 16, B: 32, A: 255}
	ColSpot = color.NRGBA{R: 59, G: 130, B: 246, A: 255}
)

const (
	spotlightRadius = 600
	spotlightAlpha  = 0.2
	wheelStep       = 40
	parallaxRate    = -0.05
	fadeRate        = 0.01
	titleScale      = 4
)

type Game struct {
	cfg     *config.Config
	field   *field.Field
	queue   *frame.Queue
	tracker *input.Tracker
	host    *Host
	surface *Surface
	metrics *metrics.Set

	clock     func() time.Time
	spot      *ebiten.Image
	title     *ebiten.Image
	paused    bool
	showHUD   bool
	lastMouse [2]int
}

func NewGame(cfg *config.Config, rng *rand.Rand) (*Game, error) {
	f, err := field.New(cfg.Params(), rng)
	if err != nil {
		return nil, err
	}
	q := frame.NewQueue()
	surf := NewSurface(ColBg)
	set := metrics.Default()
	f.AddObserver(set)
	return &Game{
		cfg:       cfg,
		field:     f,
		queue:     q,
		tracker:   input.NewTracker(q),
		host:      NewHost(surf),
		surface:   surf,
		metrics:   set,
		clock:     time.Now,
		showHUD:   true,
		lastMouse: [2]int{-1, -1},
	}, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, rng *rand.Rand) error {
	g, err := NewGame(cfg, rng)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowSize(cfg.Render.Width, cfg.Render.Height)
	ebiten.SetWindowTitle("backdrop")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Render.FPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Close unmounts the field and stops input tracking.
func (g *Game) Close() {
	g.field.Unmount()
	g.tracker.Close()
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	if mx, my := ebiten.CursorPosition(); mx != g.lastMouse[0] || my != g.lastMouse[1] {
		g.lastMouse = [2]int{mx, my}
		g.tracker.Move(float64(mx), float64(my))
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.tracker.ScrollBy(-dy * wheelStep)
	}

	if g.field.State() == field.Stopped && !g.paused {
		g.mount()
	}
	g.queue.Pump(g.clock())
	return nil
}

func (g *Game) mount() {
	err := g.field.Mount(g.host, g.queue)
	switch {
	case errors.Is(err, field.ErrNoSurface):
		// wait for Layout
	case err != nil:
		log.Printf("window: mount: %v", err)
	default:
		w, h := g.field.Bounds()
		log.Printf("window: mounted %d particles on %dx%d", g.field.Len(), w, h)
	}
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.field.Unmount()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColBg)
	if img := g.surface.Image(); img != nil && g.field.State() == field.Running {
		screen.DrawImage(img, nil)
	}

	p := g.tracker.State()
	if g.tracker.Commits() > 0 {
		g.drawSpotlight(screen, p)
	}
	g.drawTitle(screen, p)

	if g.showHUD {
		vals := g.metrics.Values()
		status := "RUNNING"
		if g.paused {
			status = "PAUSED"
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("backdrop  %s\n%d particles  %.0f links\nTPS %.0f  FPS %.0f",
			status, g.field.Len(), vals["links"], ebiten.ActualTPS(), ebiten.ActualFPS()), 10, 10)
		_, h := g.host.Viewport()
		ebitenutil.DebugPrintAt(screen, "SPACE: Pause  H: HUD  Q: Quit", 10, h-20)
	}
}

func (g *Game) drawSpotlight(screen *ebiten.Image, p input.Pointer) {
	if g.spot == nil {
		g.spot = ebiten.NewImageFromImage(radialGradient(glowSize*2, ColSpot))
	}
	d := float64(2 * spotlightRadius)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(d/float64(glowSize*2), d/float64(glowSize*2))
	op.GeoM.Translate(p.X-d/2, p.Y-d/2)
	op.ColorScale.ScaleAlpha(spotlightAlpha)
	screen.DrawImage(g.spot, op)
}

func (g *Game) drawTitle(screen *ebiten.Image, p input.Pointer) {
	fade := p.Fade(fadeRate)
	if fade <= 0 {
		return
	}
	const text = "PARTICLE FIELD"
	if g.title == nil {
		g.title = ebiten.NewImage(len(text)*6, 16)
		ebitenutil.DebugPrint(g.title, text)
	}
	w, h := g.host.Viewport()
	tw, th := g.title.Bounds().Dx()*titleScale, g.title.Bounds().Dy()*titleScale
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(titleScale, titleScale)
	op.GeoM.Translate(float64(w-tw)/2, float64(h-th)/2+p.Parallax(parallaxRate))
	op.ColorScale.ScaleAlpha(float32(fade))
	screen.DrawImage(g.title, op)
}

// Layout follows the window size so the field always covers it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.host.layout(outsideWidth, outsideHeight)
	g.tracker.SetScrollLimit(float64(outsideHeight))
	return outsideWidth, outsideHeight
}
