package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of Braille cells. Each cell carries one composited
// foreground color for its dots and an optional background tint.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]colorful.Color
	Tints         [][]float64
	Background    colorful.Color
	TintColor     colorful.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid to w×h cells and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Colors = make([][]colorful.Color, h)
	c.Tints = make([][]float64, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]colorful.Color, w)
		c.Tints[i] = make([]float64, w)
	}
	c.Clear()
}

// SubSize is the canvas size in sub-pixels.
func (c *Canvas) SubSize() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Plot sets a pixel and composites clr over the cell color with alpha.
func (c *Canvas) Plot(x, y int, clr colorful.Color, alpha float64) {
	row, col, ok := c.cell(x, y)
	if !ok || alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][col] = c.Colors[row][col].BlendRgb(clr, alpha)
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = c.Background
			c.Tints[i][j] = 0
		}
	}
}

// Tint shades the background of cell (col, row) toward TintColor by amount.
func (c *Canvas) Tint(col, row int, amount float64) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return
	}
	if amount > c.Tints[row][col] {
		c.Tints[row][col] = amount
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	bresenham(x0, y0, x1, y1, c.Set)
}

// PlotLine draws a composited line using Bresenham's algorithm.
func (c *Canvas) PlotLine(x0, y0, x1, y1 int, clr colorful.Color, alpha float64) {
	bresenham(x0, y0, x1, y1, func(x, y int) { c.Plot(x, y, clr, alpha) })
}

func bresenham(x0, y0, x1, y1 int, set func(x, y int)) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Plain renders the dots without color.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// String renders the canvas with per-cell colors. Runs of cells sharing a
// style are rendered together.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.sameStyle(row, start, col) {
				continue
			}
			b.WriteString(c.styleAt(row, start).Render(string(c.Grid[row][start:col])))
			start = col
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (c *Canvas) sameStyle(row, a, b int) bool {
	if c.Tints[row][a] != c.Tints[row][b] {
		return false
	}
	ea, eb := c.Grid[row][a] == blank, c.Grid[row][b] == blank
	if ea && eb {
		return true
	}
	return ea == eb && c.Colors[row][a] == c.Colors[row][b]
}

func (c *Canvas) styleAt(row, col int) lipgloss.Style {
	s := lipgloss.NewStyle()
	if t := c.Tints[row][col]; t > 0 {
		s = s.Background(lipgloss.Color(c.Background.BlendRgb(c.TintColor, t).Clamped().Hex()))
	}
	if c.Grid[row][col] != blank {
		s = s.Foreground(lipgloss.Color(c.Colors[row][col].Clamped().Hex()))
	}
	return s
}

// Dot reports whether sub-pixel (dx, dy) of cell (row, col) is set.
func (c *Canvas) Dot(row, col, dx, dy int) bool {
	return int(c.Grid[row][col]-blank)&pixelMap[dy][dx] != 0
}

// EachDot calls fn for every set sub-pixel, in row order, with the color of
// its cell.
func (c *Canvas) EachDot(fn func(x, y int, clr colorful.Color)) {
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			if c.Grid[row][col] == blank {
				continue
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if c.Dot(row, col, dx, dy) {
						fn(col*2+dx, row*4+dy, c.Colors[row][col])
					}
				}
			}
		}
	}
}

// Dots counts set sub-pixels.
func (c *Canvas) Dots() int {
	n := 0
	c.EachDot(func(int, int, colorful.Color) { n++ })
	return n
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
