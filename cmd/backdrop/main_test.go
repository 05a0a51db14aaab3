package main

import (
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/backdrop/internal/config"
	"github.com/spf13/cobra"
)

func parsed(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := newRootCmd()
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return cmd
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(parsed(t))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Field.Count != 60 {
		t.Errorf("expected 60 particles, got %d", cfg.Field.Count)
	}
	if cfg.Render.FPS != config.DefaultFPS {
		t.Errorf("expected %d fps, got %d", config.DefaultFPS, cfg.Render.FPS)
	}
}

func TestLoadConfigFlagsOverridePreset(t *testing.T) {
	cfg, err := loadConfig(parsed(t, "--preset", "calm", "--count", "12", "--fps", "30", "--seed", "7"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Field.Count != 12 {
		t.Errorf("expected flag count 12, got %d", cfg.Field.Count)
	}
	if cfg.Field.MaxSpeed != 0.3 {
		t.Errorf("expected calm speed 0.3, got %f", cfg.Field.MaxSpeed)
	}
	if cfg.Render.FPS != 30 || cfg.Seed != 7 {
		t.Errorf("unexpected fps %d seed %d", cfg.Render.FPS, cfg.Seed)
	}
}

func TestLoadConfigUnknownPreset(t *testing.T) {
	_, err := loadConfig(parsed(t, "--preset", "nope"))
	if !errors.Is(err, errUnknownPreset) {
		t.Errorf("expected errUnknownPreset, got %v", err)
	}
}

func TestLoadConfigRejectsTooMany(t *testing.T) {
	if _, err := loadConfig(parsed(t, "--count", "5000")); err == nil {
		t.Error("expected error for count above the cap")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backdrop.yaml")
	cfg := config.DefaultConfig()
	cfg.Field.Count = 42
	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := loadConfig(parsed(t, "--config", path))
	if err != nil {
		t.Fatal(err)
	}
	if got.Field.Count != 42 {
		t.Errorf("expected 42 from file, got %d", got.Field.Count)
	}
}

func TestParseCounts(t *testing.T) {
	got, err := parseCounts(" 30, 60,,120 ")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 30 || got[2] != 120 {
		t.Errorf("unexpected counts %v", got)
	}
	if _, err := parseCounts("a,b"); err == nil {
		t.Error("expected error for non-numeric count")
	}
	if _, err := parseCounts(""); err == nil {
		t.Error("expected error for empty list")
	}
}

func TestBenchmark(t *testing.T) {
	cfg := config.DefaultConfig()
	res, err := benchmark(cfg, rand.New(rand.NewSource(1)), 50)
	if err != nil {
		t.Fatal(err)
	}
	if res.Frames != 50 {
		t.Errorf("expected 50 frames, got %d", res.Frames)
	}
	if len(res.Links) != 50 {
		t.Errorf("expected 50 link samples, got %d", len(res.Links))
	}
	if float64(res.PeakLinks) < res.MeanLinks {
		t.Errorf("peak %d below mean %.1f", res.PeakLinks, res.MeanLinks)
	}
}

func TestSnapshot(t *testing.T) {
	cfg := config.DefaultConfig()
	svg, err := snapshot(cfg, rand.New(rand.NewSource(1)), 5)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg, `width="1280" height="720"`) {
		t.Error("expected the configured size")
	}
	if n := strings.Count(svg, "<circle "); n < 2*cfg.Field.Count {
		t.Errorf("expected at least %d circles, got %d", 2*cfg.Field.Count, n)
	}
}

func TestSnapshotDeterministic(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := snapshot(cfg, rand.New(rand.NewSource(3)), 10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := snapshot(cfg, rand.New(rand.NewSource(3)), 10)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("same seed should give the same frame")
	}
}

func TestSnapshotBraille(t *testing.T) {
	cfg := config.DefaultConfig()
	svg, err := snapshotBraille(cfg, rand.New(rand.NewSource(1)), 5)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg, "<circle ") {
		t.Error("expected dots in the braille snapshot")
	}
}
