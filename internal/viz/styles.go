package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	panel  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style
	status lipgloss.Style
	paused lipgloss.Style
	rec    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1).
			Width(panelWidth - 2),
		header: lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(11),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		graph:  lipgloss.NewStyle().Foreground(t.Accent),
		help:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true),
		paused: lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		rec:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true).Blink(true),
	}
}

// GradientText colors text along a gradient from start to end, faded toward
// bg by (1 - visibility).
func GradientText(text, start, end, bg string, visibility float64) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, b, base := mustHex(start), mustHex(end), mustHex(bg)

	var result strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := base.BlendRgb(a.BlendLab(b, t), visibility).Clamped()
		result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Bold(true).Render(string(r)))
	}
	return result.String()
}

// Separator is a decorative rule.
func Separator(width int, style lipgloss.Style) string {
	if width < 8 {
		return style.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return style.Render(strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-1))
}
