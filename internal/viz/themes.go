package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Background string
	Spotlight  string
	Title      string
	TitleEnd   string
	Accent     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Warning    lipgloss.Color
}

// Available themes
var (
	ThemeMidnight = Theme{
		Name:       "midnight",
		Background: "#0b1020",
		Spotlight:  "#3b82f6",
		Title:      "#60a5fa",
		TitleEnd:   "#c084fc",
		Accent:     lipgloss.Color("#93c5fd"),
		Text:       lipgloss.Color("#e2e8f0"),
		Muted:      lipgloss.Color("#64748b"),
		Border:     lipgloss.Color("#1e293b"),
		Warning:    lipgloss.Color("#fbbf24"),
	}

	ThemeAurora = Theme{
		Name:       "aurora",
		Background: "#041b1a",
		Spotlight:  "#10b981",
		Title:      "#34d399",
		TitleEnd:   "#22d3ee",
		Accent:     lipgloss.Color("#6ee7b7"),
		Text:       lipgloss.Color("#ecfdf5"),
		Muted:      lipgloss.Color("#4b7a70"),
		Border:     lipgloss.Color("#134e4a"),
		Warning:    lipgloss.Color("#facc15"),
	}

	ThemeEmber = Theme{
		Name:       "ember",
		Background: "#1a0b0b",
		Spotlight:  "#f97316",
		Title:      "#fb923c",
		TitleEnd:   "#f43f5e",
		Accent:     lipgloss.Color("#fdba74"),
		Text:       lipgloss.Color("#fff7ed"),
		Muted:      lipgloss.Color("#8b6b6b"),
		Border:     lipgloss.Color("#431407"),
		Warning:    lipgloss.Color("#fde047"),
	}

	ThemeMono = Theme{
		Name:       "mono",
		Background: "#000000",
		Spotlight:  "#888888",
		Title:      "#ffffff",
		TitleEnd:   "#888888",
		Accent:     lipgloss.Color("#cccccc"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Border:     lipgloss.Color("#333333"),
		Warning:    lipgloss.Color("#ffaa00"),
	}

	// All available themes
	Themes = []Theme{
		ThemeMidnight,
		ThemeAurora,
		ThemeEmber,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to midnight.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMidnight
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Colors parses the background and spotlight colors.
func (t Theme) Colors() (bg, spot colorful.Color) {
	return mustHex(t.Background), mustHex(t.Spotlight)
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}
