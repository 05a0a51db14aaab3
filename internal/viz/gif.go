package viz

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"os"
)

// maxRecordedFrames caps a recording at ten seconds of 60 fps ticks.
const maxRecordedFrames = 600

var ErrNothingRecorded = errors.New("viz: no frames recorded")

// Image rasterises the canvas with each cell drawn as cellW×cellH pixels.
func (c *Canvas) Image(cellW, cellH int, pal color.Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*cellW, c.Height*cellH), pal)
	dotW, dotH := max(cellW/2, 1), max(cellH/4, 1)
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			bg := c.Background
			if t := c.Tints[row][col]; t > 0 {
				bg = bg.BlendRgb(c.TintColor, t)
			}
			bgIdx := uint8(pal.Index(bg.Clamped()))
			fgIdx := uint8(pal.Index(c.Colors[row][col].Clamped()))
			baseX, baseY := col*cellW, row*cellH
			for py := 0; py < cellH; py++ {
				for px := 0; px < cellW; px++ {
					idx := bgIdx
					if c.Dot(row, col, min(px/dotW, 1), min(py/dotH, 3)) {
						idx = fgIdx
					}
					img.SetColorIndex(baseX+px, baseY+py, idx)
				}
			}
		}
	}
	return img
}

// Recording collects canvas frames for an animated GIF.
type Recording struct {
	frames       []*image.Paletted
	cellW, cellH int
	delay        int // 100ths of a second
}

func NewRecording(cellW, cellH, fps int) *Recording {
	return &Recording{cellW: cellW, cellH: cellH, delay: max(100/max(fps, 1), 2)}
}

// Capture appends the canvas. It reports false once the recording is full.
func (r *Recording) Capture(c *Canvas) bool {
	if len(r.frames) >= maxRecordedFrames {
		return false
	}
	if c.Width == 0 || c.Height == 0 {
		return true
	}
	r.frames = append(r.frames, c.Image(r.cellW, r.cellH, palette.Plan9))
	return true
}

func (r *Recording) Len() int { return len(r.frames) }

func (r *Recording) Save(path string) error {
	if len(r.frames) == 0 {
		return ErrNothingRecorded
	}
	// frames may differ in size if the terminal was resized while recording
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		b := frame.Bounds()
		anim.Config.Width = max(anim.Config.Width, b.Dx())
		anim.Config.Height = max(anim.Config.Height, b.Dy())
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	anim.Config.ColorModel = color.Palette(palette.Plan9)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
