package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/skyshooter/internal/draw"
)

// debugGlyphWidth and debugGlyphHeight are the cell size of ebitenutil's debug font.
const (
	debugGlyphWidth  = 6
	debugGlyphHeight = 16
)

var (
	background = color.RGBA{R: 0x0b, G: 0x0b, B: 0x14, A: 0xff}
	shade      = color.RGBA{A: 0xb0}
)

var palette = map[draw.Color]color.RGBA{
	draw.ColorCyan:   {R: 0x4d, G: 0xd0, B: 0xe1, A: 0xff},
	draw.ColorYellow: {R: 0xff, G: 0xd5, B: 0x4f, A: 0xff},
	draw.ColorRed:    {R: 0xef, G: 0x53, B: 0x50, A: 0xff},
	draw.ColorWhite:  {R: 0xee, G: 0xee, B: 0xee, A: 0xff},
}

// imageSurface draws to an ebiten image in playfield coordinates.
type imageSurface struct {
	img *ebiten.Image
}

var _ draw.Surface = (*imageSurface)(nil)

func newImageSurface(img *ebiten.Image) *imageSurface {
	return &imageSurface{img: img}
}

func (s *imageSurface) Clear() {
	s.img.Fill(background)
}

func (s *imageSurface) FillRect(x, y, w, h float64, c draw.Color) {
	clr, ok := palette[c]
	if !ok {
		return
	}
	vector.FillRect(s.img, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func (s *imageSurface) DrawScore(score int) {
	ebitenutil.DebugPrintAt(s.img, fmt.Sprintf("Score: %d", score), 8, 8)
}

func (s *imageSurface) DrawGameOver(finalScore int) {
	b := s.img.Bounds()
	vector.FillRect(s.img, 0, 0, float32(b.Dx()), float32(b.Dy()), shade, false)

	lines := []string{
		"G A M E   O V E R",
		"",
		fmt.Sprintf("Final score: %d", finalScore),
		"",
		"R to restart, Esc to quit",
	}
	top := b.Dy()/2 - len(lines)*debugGlyphHeight/2
	for i, line := range lines {
		x := (b.Dx() - len(line)*debugGlyphWidth) / 2
		ebitenutil.DebugPrintAt(s.img, line, x, top+i*debugGlyphHeight)
	}
}
