package viz

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/field"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Render.GIFPath = filepath.Join(t.TempDir(), "test.gif")
	m, err := NewModel(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func ticks(t *testing.T, m Model, n int) Model {
	t.Helper()
	now := time.Unix(0, 0)
	for i := 0; i < n; i++ {
		now = now.Add(16 * time.Millisecond)
		m, _ = update(t, m, TickMsg(now))
	}
	return m
}

func TestModelMountsOnWindowSize(t *testing.T) {
	m := newTestModel(t)
	if m.Field().State() != field.Stopped {
		t.Fatal("field should wait for a size")
	}
	if !strings.Contains(m.View(), "waiting") {
		t.Error("expected waiting view before the first size")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.Field().State() != field.Running {
		t.Fatal("expected running field after size")
	}
	w, h := m.Field().Bounds()
	if w != (120-panelWidth)*8 || h != (40-headerRows)*16 {
		t.Errorf("unexpected bounds %dx%d", w, h)
	}
	if m.Field().Len() != field.DefaultCount {
		t.Errorf("expected %d particles, got %d", field.DefaultCount, m.Field().Len())
	}
}

func TestModelTooSmallTerminalDefersMount(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 1})
	if m.Field().State() != field.Stopped {
		t.Fatal("field should not mount without a canvas")
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.Field().State() != field.Running {
		t.Error("field should mount once the canvas has room")
	}
}

func TestModelTickAdvancesFrames(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = ticks(t, m, 10)
	if m.Field().Frames() != 10 {
		t.Errorf("expected 10 frames, got %d", m.Field().Frames())
	}
	if m.surface.Canvas().Dots() == 0 {
		t.Error("expected particles on the canvas")
	}
	if !strings.Contains(m.View(), "RUNNING") {
		t.Error("expected running status in view")
	}
}

func TestModelPauseUnmounts(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = ticks(t, m, 3)

	m, _ = update(t, m, key(" "))
	if !m.Paused() || m.Field().State() != field.Stopped {
		t.Fatal("space should pause and unmount")
	}
	m = ticks(t, m, 5)
	if m.Field().Frames() != 3 {
		t.Errorf("paused field advanced to %d frames", m.Field().Frames())
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected paused status in view")
	}

	m, _ = update(t, m, key(" "))
	if m.Paused() || m.Field().State() != field.Running {
		t.Fatal("space should resume")
	}
	m = ticks(t, m, 2)
	if m.Field().Frames() != 5 {
		t.Errorf("expected 5 frames, got %d", m.Field().Frames())
	}
}

func TestModelPointerAndScroll(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 5, Action: tea.MouseActionMotion})
	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 6, Action: tea.MouseActionMotion})
	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if m.Pointer().X != 0 {
		t.Error("pointer should not commit before a refresh")
	}

	m = ticks(t, m, 1)
	p := m.Pointer()
	if p.X != 84 || p.Y != 72 {
		t.Errorf("expected pointer 84,72, got %.0f,%.0f", p.X, p.Y)
	}
	if p.ScrollY != 2*scrollStep {
		t.Errorf("expected scroll %d, got %.0f", 2*scrollStep, p.ScrollY)
	}

	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	m = ticks(t, m, 1)
	if m.Pointer().ScrollY != 0 {
		t.Errorf("scroll should clamp at 0, got %.0f", m.Pointer().ScrollY)
	}
}

func TestModelCycleTheme(t *testing.T) {
	m := newTestModel(t)
	first := m.Theme().Name
	m, _ = update(t, m, key("t"))
	if m.Theme().Name == first {
		t.Error("expected theme to change")
	}
	for range len(Themes) - 1 {
		m, _ = update(t, m, key("t"))
	}
	if m.Theme().Name != first {
		t.Errorf("expected to cycle back to %s, got %s", first, m.Theme().Name)
	}
}

func TestModelRecordsGIF(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 12})
	m, _ = update(t, m, key("g"))
	if !m.Recording() {
		t.Fatal("expected recording")
	}
	m = ticks(t, m, 3)
	m, _ = update(t, m, key("g"))
	if m.Recording() {
		t.Fatal("expected recording to stop")
	}
	info, err := os.Stat(m.cfg.Render.GIFPath)
	if err != nil {
		t.Fatalf("gif not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("gif is empty")
	}
}

func TestModelQuitTearsDown(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.Field().State() != field.Stopped {
		t.Error("quit should unmount the field")
	}
	if m.queue.Pending() != 0 {
		t.Errorf("expected no pending frames, got %d", m.queue.Pending())
	}
}

func TestModelHelpOverlay(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, key("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("expected help overlay")
	}
}
