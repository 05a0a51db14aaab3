package main

import (
	"math/rand"
	"time"

	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/export"
	"github.com/san-kum/backdrop/internal/field"
	"github.com/san-kum/backdrop/internal/frame"
	"github.com/san-kum/backdrop/internal/metrics"
	"github.com/san-kum/backdrop/internal/surface"
	"github.com/san-kum/backdrop/internal/viz"
)

// epoch is the synthetic clock origin for headless runs, so link hues are
// reproducible.
var epoch = time.Unix(0, 0)

type benchResult struct {
	Frames    uint64
	Elapsed   time.Duration
	MeanLinks float64
	PeakLinks int
	Links     []float64
}

func (r benchResult) FramesPerSec() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Elapsed.Seconds()
}

// runHeadless mounts a field on host and pumps frames on a synthetic clock
// spaced by the configured frame interval.
func runHeadless(cfg *config.Config, rng *rand.Rand, host field.Host, frames int, observers ...field.Observer) (*field.Field, error) {
	f, err := field.New(cfg.Params(), rng)
	if err != nil {
		return nil, err
	}
	for _, o := range observers {
		f.AddObserver(o)
	}
	q := frame.NewQueue()
	if err := f.Mount(host, q); err != nil {
		return nil, err
	}
	now := epoch
	for i := 0; i < frames; i++ {
		now = now.Add(cfg.FrameInterval())
		q.Pump(now)
	}
	return f, nil
}

func benchmark(cfg *config.Config, rng *rand.Rand, frames int) (benchResult, error) {
	links := metrics.NewLinks(frames)
	host := surface.NewHeadless(surface.NewDiscard(0, 0), cfg.Render.Width, cfg.Render.Height)

	start := time.Now()
	f, err := runHeadless(cfg, rng, host, frames, links)
	if err != nil {
		return benchResult{}, err
	}
	elapsed := time.Since(start)
	f.Unmount()

	return benchResult{
		Frames:    f.Frames(),
		Elapsed:   elapsed,
		MeanLinks: links.Value(),
		PeakLinks: links.Peak(),
		Links:     links.History(),
	}, nil
}

// snapshot renders frames and returns the last one as SVG.
func snapshot(cfg *config.Config, rng *rand.Rand, frames int) (string, error) {
	rec := surface.NewRecorder(0, 0)
	host := surface.NewHeadless(rec, cfg.Render.Width, cfg.Render.Height)
	f, err := runHeadless(cfg, rng, host, frames)
	if err != nil {
		return "", err
	}
	defer f.Unmount()

	bg := viz.GetTheme(cfg.Render.Theme).Background
	w, h := rec.Size()
	return export.FrameToSVG(rec.Ops(), w, h, bg), nil
}

// snapshotBraille renders frames through the terminal surface and returns
// its canvas as SVG.
func snapshotBraille(cfg *config.Config, rng *rand.Rand, frames int) (string, error) {
	surf := viz.NewBrailleSurface(cfg.Render.CellW, cfg.Render.CellH)
	surf.SetTheme(viz.GetTheme(cfg.Render.Theme).Colors())
	host := viz.NewTermHost(surf)
	host.SetCells(cfg.Render.Width/cfg.Render.CellW, cfg.Render.Height/cfg.Render.CellH)

	f, err := runHeadless(cfg, rng, host, frames)
	if err != nil {
		return "", err
	}
	defer f.Unmount()
	return export.CanvasToSVG(surf.Canvas(), 4), nil
}
