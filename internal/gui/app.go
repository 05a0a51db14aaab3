// Package gui renders a particle field in a raylib window.
package gui

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/field"
	"github.com/san-kum/backdrop/internal/frame"
	"github.com/san-kum/backdrop/internal/input"
	"github.com/san-kum/backdrop/internal/metrics"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(11, 16, 32, 255)
	ColSpot    = rl.NewColor(59, 130, 246, 51) // 20% blue
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(148, 163, 184, 255)
	ColTextDim = rl.NewColor(71, 85, 105, 255)
	ColAccent  = rl.NewColor(147, 197, 253, 255)
)

const (
	spotlightRadius = 600
	wheelStep       = 40
	parallaxRate    = -0.05
	fadeRate        = 0.01
)

type App struct {
	cfg     *config.Config
	field   *field.Field
	queue   *frame.Queue
	tracker *input.Tracker
	host    *Host
	surface *Surface
	metrics *metrics.Set
	links   *metrics.Links

	glow    rl.Texture2D
	paused  bool
	showHUD bool
	quit    bool
}

// initWindow opens a resizable window sized from the config, sets the target FPS, and disables the default exit key.
func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Render.Width), int32(cfg.Render.Height), "backdrop")
	rl.SetTargetFPS(int32(cfg.Render.FPS))
	rl.SetExitKey(0)
}

// NewApp builds the field and its window host. The window must already be open.
func NewApp(cfg *config.Config, rng *rand.Rand) (*App, error) {
	f, err := field.New(cfg.Params(), rng)
	if err != nil {
		return nil, err
	}

	// Generate Glow Texture
	img := rl.GenImageGradientRadial(64, 64, 0.0, rl.White, rl.NewColor(255, 255, 255, 0))
	glow := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(glow, rl.FilterBilinear)

	q := frame.NewQueue()
	surf := NewSurface(ColBg, glow)
	set := metrics.Default()
	links, _ := set.Get("links").(*metrics.Links)
	f.AddObserver(set)

	return &App{
		cfg:     cfg,
		field:   f,
		queue:   q,
		tracker: input.NewTracker(q),
		host:    NewHost(surf),
		surface: surf,
		metrics: set,
		links:   links,
		glow:    glow,
		showHUD: true,
	}, nil
}

// Run opens the window, mounts the field and blocks until the window is closed.
func Run(cfg *config.Config, rng *rand.Rand) error {
	initWindow(cfg)
	defer rl.CloseWindow()

	app, err := NewApp(cfg, rng)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.field.Mount(app.host, app.queue); err != nil {
		return fmt.Errorf("mount: %w", err)
	}
	w, h := app.field.Bounds()
	log.Printf("gui: mounted %d particles on %dx%d", app.field.Len(), w, h)
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

// Close unmounts the field and releases GPU resources.
func (a *App) Close() {
	a.field.Unmount()
	a.tracker.Close()
	rl.UnloadTexture(a.glow)
}

func (a *App) Update() {
	a.host.poll()
	_, h := a.host.Viewport()
	a.tracker.SetScrollLimit(float64(h))

	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.togglePause()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.showHUD = !a.showHUD
	}

	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		pos := rl.GetMousePosition()
		a.tracker.Move(float64(pos.X), float64(pos.Y))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.tracker.ScrollBy(float64(-wheel) * wheelStep)
	}
}

func (a *App) togglePause() {
	if a.paused {
		a.paused = false
		if err := a.field.Mount(a.host, a.queue); err != nil {
			log.Printf("gui: remount: %v", err)
		}
		return
	}
	a.paused = true
	a.field.Unmount()
}

func (a *App) Draw() {
	rl.BeginDrawing()
	if a.field.State() != field.Running {
		rl.ClearBackground(ColBg)
	}

	// the field clears and draws inside its frame callback
	a.queue.Pump(time.Now())

	p := a.tracker.State()
	if a.tracker.Commits() > 0 {
		rl.BeginBlendMode(rl.BlendAdditive)
		rl.DrawCircleGradient(int32(p.X), int32(p.Y), spotlightRadius, ColSpot, rl.NewColor(0, 0, 0, 0))
		rl.EndBlendMode()
	}

	a.drawTitle(p)
	if a.showHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) drawTitle(p input.Pointer) {
	fade := float32(p.Fade(fadeRate))
	if fade <= 0 {
		return
	}
	w, h := a.host.Viewport()
	title := "PARTICLE FIELD"
	size := int32(48)
	tw := rl.MeasureText(title, size)
	y := int32(float64(h)/2-float64(size)/2) + int32(p.Parallax(parallaxRate))
	rl.DrawText(title, int32(w)/2-tw/2, y, size, rl.Fade(ColSelect, fade))
}

func (a *App) DrawHUD() {
	a.drawText("backdrop", 30, 30, 24, ColSelect)

	status := "RUNNING"
	col := ColSelect
	if a.paused {
		status = "PAUSED"
		col = ColTextDim
	}
	w, h := a.host.Viewport()
	a.drawText(status, w-130, 30, 16, col)

	a.DrawTelemetry(30, h-140)
	vals := a.metrics.Values()
	a.drawText(fmt.Sprintf("%d particles  %.0f links  %dx%d", a.field.Len(), vals["links"], w, h), 30, h-60, 14, ColText)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, h-36, 14, ColTextDim)
	a.drawText("[SPACE] PAUSE  [H] HUD  [Q] QUIT", w-330, h-36, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), color)
}

// DrawTelemetry plots the link count window as a line strip scaled to its
// own range, with the latest count beside it.
func (a *App) DrawTelemetry(x, y int) {
	if a.links == nil || len(a.links.History()) < 2 {
		return
	}
	const stripW, stripH = 400, 60

	norm := a.links.Normalized()
	points := make([]rl.Vector2, len(norm))
	dx := float32(stripW) / float32(len(norm)-1)
	for i, v := range norm {
		points[i] = rl.NewVector2(float32(x)+float32(i)*dx, float32(y+stripH)-float32(v)*stripH)
	}

	rl.DrawLineStrip(points, ColAccent)
	lo, hi := a.links.Range()
	a.drawText(fmt.Sprintf("links: %d (%.0f-%.0f)", a.links.Last(), lo, hi), x+stripW+10, y+stripH-10, 14, ColText)
}
