package viz

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/field"
	"github.com/san-kum/backdrop/internal/frame"
	"github.com/san-kum/backdrop/internal/input"
	"github.com/san-kum/backdrop/internal/metrics"
)

const (
	panelWidth  = 34
	headerRows  = 2
	graphPoints = 28

	// spotlightRadius is in world pixels.
	spotlightRadius = 480
	scrollStep      = 16
	parallaxRate    = 0.05
	fadeRate        = 0.01
)

type TickMsg time.Time

// Model drives a particle field inside a Bubble Tea program. Every tick pumps
// the frame queue, which runs the field's frame and any pending input commit.
type Model struct {
	cfg     *config.Config
	field   *field.Field
	queue   *frame.Queue
	tracker *input.Tracker
	host    *TermHost
	surface *BrailleSurface
	metrics *metrics.Set
	links   *metrics.Links

	theme    Theme
	styles   styles
	paused   bool
	showHelp bool
	rec      *Recording
	status   string
}

// NewModel builds a stopped field. It mounts on the first window size message.
func NewModel(cfg *config.Config, rng *rand.Rand) (Model, error) {
	f, err := field.New(cfg.Params(), rng)
	if err != nil {
		return Model{}, err
	}
	q := frame.NewQueue()
	surf := NewBrailleSurface(cfg.Render.CellW, cfg.Render.CellH)
	theme := GetTheme(cfg.Render.Theme)
	surf.SetTheme(theme.Colors())

	set := metrics.Default()
	links, _ := set.Get("links").(*metrics.Links)
	f.AddObserver(set)

	return Model{
		cfg:     cfg,
		field:   f,
		queue:   q,
		tracker: input.NewTracker(q),
		host:    NewTermHost(surf),
		surface: surf,
		metrics: set,
		links:   links,
		theme:   theme,
		styles:  newStyles(theme),
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and pumps the frame queue.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.host.SetCells(msg.Width-panelWidth, msg.Height-headerRows)
		_, h := m.host.Viewport()
		m.tracker.SetScrollLimit(float64(h))
		if m.field.State() == field.Stopped && !m.paused {
			m.mount()
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.shutdown()
			return m, tea.Quit
		case " ":
			m.togglePause()
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
			m.surface.SetTheme(m.theme.Colors())
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		p := m.tracker.State()
		if m.tracker.Commits() > 0 {
			m.surface.Spotlight(p.X, p.Y, spotlightRadius)
		}
		m.queue.Pump(time.Time(msg))
		if m.rec != nil && !m.paused && !m.rec.Capture(m.surface.Canvas()) {
			m.toggleRecording()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) mount() {
	err := m.field.Mount(m.host, m.queue)
	switch {
	case errors.Is(err, field.ErrNoSurface):
		// retried on the next size message
		log.Printf("mount deferred: %v", err)
	case err != nil:
		log.Printf("mount: %v", err)
		m.status = err.Error()
	default:
		w, h := m.field.Bounds()
		log.Printf("mounted %d particles on %dx%d", m.field.Len(), w, h)
	}
}

func (m *Model) mouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.tracker.ScrollBy(-scrollStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.tracker.ScrollBy(scrollStep)
	case msg.Action == tea.MouseActionMotion:
		cw, ch := float64(m.cfg.Render.CellW), float64(m.cfg.Render.CellH)
		m.tracker.Move((float64(msg.X)+0.5)*cw, (float64(msg.Y-headerRows)+0.5)*ch)
	}
}

func (m *Model) togglePause() {
	if m.paused {
		m.paused = false
		m.mount()
		return
	}
	m.paused = true
	m.field.Unmount()
}

func (m *Model) toggleRecording() {
	if m.rec == nil {
		m.rec = NewRecording(m.cfg.Render.CellW/2, m.cfg.Render.CellH/2, m.cfg.Render.FPS)
		m.status = "recording"
		return
	}
	if err := m.rec.Save(m.cfg.Render.GIFPath); err != nil {
		log.Printf("save gif: %v", err)
		m.status = err.Error()
	} else {
		log.Printf("saved %d frames to %s", m.rec.Len(), m.cfg.Render.GIFPath)
		m.status = "saved " + m.cfg.Render.GIFPath
	}
	m.rec = nil
}

// shutdown stops the field and the tracker and flushes any recording.
func (m *Model) shutdown() {
	m.field.Unmount()
	m.tracker.Close()
	if m.rec != nil {
		m.toggleRecording()
	}
}

// Field exposes the underlying field.
func (m Model) Field() *field.Field { return m.field }

func (m Model) Paused() bool { return m.paused }

func (m Model) Theme() Theme { return m.theme }

func (m Model) Recording() bool { return m.rec != nil }

func (m Model) Pointer() input.Pointer { return m.tracker.State() }

// View renders the canvas next to the stats panel.
func (m Model) View() string {
	cols, rows := m.host.Cells()
	if cols <= 0 || rows <= 0 {
		return "waiting for terminal size..."
	}
	p := m.tracker.State()

	indent := min(int(p.Parallax(parallaxRate))/m.cfg.Render.CellW, cols)
	title := strings.Repeat(" ", max(indent, 0)) +
		GradientText("PARTICLE FIELD", m.theme.Title, m.theme.TitleEnd, m.theme.Background, p.Fade(fadeRate))

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.surface.Canvas().String(), m.panel(p))
	view := title + "\n\n" + body
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

func (m Model) panel(p input.Pointer) string {
	st := m.styles
	var s strings.Builder

	status := st.status.Render("RUNNING")
	if m.paused {
		status = st.paused.Render("PAUSED")
	}
	if m.rec != nil {
		status += " " + st.rec.Render(fmt.Sprintf("● REC %d", m.rec.Len()))
	}
	s.WriteString(st.header.Render("BACKDROP") + "\n")
	s.WriteString(status + "\n\n")

	if m.links != nil {
		hist := m.links.History()
		if len(hist) > graphPoints {
			hist = hist[len(hist)-graphPoints:]
		}
		if len(hist) > 1 {
			chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(graphPoints), asciigraph.Caption("links"))
			s.WriteString(st.graph.Render(chart) + "\n\n")
		}
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	vals := m.metrics.Values()
	w, h := m.host.Viewport()
	row("Particles", fmt.Sprintf("%d", m.field.Len()))
	if m.links != nil {
		row("Links", fmt.Sprintf("%d", m.links.Last()))
		row("Peak", fmt.Sprintf("%d", m.links.Peak()))
	}
	row("Mean", fmt.Sprintf("%.1f", vals["links"]))
	row("FPS", fmt.Sprintf("%.1f", vals["fps"]))
	row("Frames", fmt.Sprintf("%d", m.field.Frames()))
	row("Viewport", fmt.Sprintf("%dx%d", w, h))
	row("Pointer", fmt.Sprintf("%.0f,%.0f", p.X, p.Y))
	row("Scroll", fmt.Sprintf("%.0f", p.ScrollY))
	row("Theme", m.theme.Name)
	if m.status != "" {
		s.WriteString("\n" + st.value.Render(m.status) + "\n")
	}

	s.WriteString(st.help.Render(Separator(panelWidth-6, st.help) + "\nSP:Pause T:Theme G:Rec\n?:Help   Q:Quit"))
	return st.panel.Render(s.String())
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  Mouse    - Move the spotlight       ║
║  Wheel    - Scroll the title away    ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`
