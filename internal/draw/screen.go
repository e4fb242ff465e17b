package draw

import (
	"fmt"
	"io"
	"math"
)

// FitPlayfield computes the render area for a logical playfield inside a terminal.
// Terminal cells are treated as two square sub-pixels tall, so the logical aspect
// ratio is kept. One row is reserved above the playfield for the score line.
// Returned offsets are 0-based: the playfield starts at (offsetCol+1, offsetRow+1).
func FitPlayfield(termWidth, termHeight int, logicalWidth, logicalHeight float64) (cols, rows, offsetCol, offsetRow int) {
	if termWidth < 1 {
		termWidth = 1
	}
	avail := termHeight - 1
	if avail < 1 {
		avail = 1
	}

	// eps absorbs rounding so an exact fit is not floored one cell short.
	const eps = 1e-9
	scale := math.Min(float64(termWidth)/logicalWidth, float64(avail*2)/logicalHeight)
	cols = max(1, int(math.Floor(logicalWidth*scale+eps)))
	rows = max(1, int(math.Floor(logicalHeight*scale/2+eps)))

	offsetCol = (termWidth - cols) / 2
	offsetRow = 1 + (avail-rows)/2
	return cols, rows, offsetCol, offsetRow
}

// Terminal is a Surface that renders to an ANSI terminal through a Canvas.
// Drawing calls only buffer; Flush writes the frame.
type Terminal struct {
	w             io.Writer
	canvas        *Canvas
	out           *frameWriter
	termWidth     int
	termHeight    int
	logicalWidth  float64
	logicalHeight float64

	dirty       bool
	clearScreen bool
	score       int
	scoreDirty  bool
	overlay     []string
	overlayUp   bool // Overlay text is currently on screen over the canvas
}

// Ensure Terminal satisfies Surface.
var _ Surface = (*Terminal)(nil)

// NewTerminal creates a terminal surface for a logical playfield.
func NewTerminal(w io.Writer, termWidth, termHeight int, logicalWidth, logicalHeight float64) *Terminal {
	t := &Terminal{
		w:             w,
		out:           newFrameWriter(w),
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		termWidth:     -1,
	}
	t.canvas = NewCanvas(1, 1, logicalWidth, logicalHeight)
	t.Resize(termWidth, termHeight)
	return t
}

// Resize lays the playfield out for new terminal dimensions.
// Returns true if the layout changed; the screen is cleared on the next Flush.
func (t *Terminal) Resize(termWidth, termHeight int) bool {
	if termWidth == t.termWidth && termHeight == t.termHeight {
		return false
	}
	t.termWidth, t.termHeight = termWidth, termHeight

	cols, rows, offCol, offRow := FitPlayfield(termWidth, termHeight, t.logicalWidth, t.logicalHeight)
	t.canvas.Resize(cols, rows)
	t.canvas.SetOffset(offCol, offRow)
	t.canvas.ForceRedraw()
	t.out.place(offCol, offRow, cols, rows)

	t.clearScreen = true
	t.scoreDirty = true
	t.dirty = true
	return true
}

// Invalidate clears the whole terminal and repaints everything on the next Flush.
func (t *Terminal) Invalidate() {
	t.clearScreen = true
	t.dirty = true
}

// Canvas returns the underlying canvas.
func (t *Terminal) Canvas() *Canvas {
	return t.canvas
}

// Clear erases the playfield.
func (t *Terminal) Clear() {
	t.canvas.Clear()
	t.dirty = true
}

// FillRect draws a flat-colored rectangle in playfield coordinates.
func (t *Terminal) FillRect(x, y, w, h float64, c Color) {
	t.canvas.FillRect(x, y, w, h, c)
	t.dirty = true
}

// DrawScore updates the score line.
func (t *Terminal) DrawScore(score int) {
	if score != t.score {
		t.score = score
		t.scoreDirty = true
	}
	t.dirty = true
}

// DrawGameOver shows the game-over overlay.
func (t *Terminal) DrawGameOver(finalScore int) {
	t.Message(
		"G A M E   O V E R",
		"",
		fmt.Sprintf("Final score: %d", finalScore),
		"",
		"R to restart, Q to quit",
	)
}

// Message shows centered text lines over the playfield until the next frame.
func (t *Terminal) Message(lines ...string) {
	t.overlay = append(t.overlay[:0], lines...)
	t.dirty = true
}

// Flush writes everything drawn since the previous flush.
// Does nothing if nothing was drawn.
func (t *Terminal) Flush() error {
	if !t.dirty {
		return nil
	}
	t.dirty = false

	if t.overlayUp && len(t.overlay) == 0 {
		// Text may extend past the playfield; wipe it with the rest of the screen.
		t.clearScreen = true
		t.overlayUp = false
	}
	if t.clearScreen {
		t.out.clearScreen()
		t.canvas.ForceRedraw()
		t.scoreDirty = true
		t.clearScreen = false
	}

	if err := t.canvas.Render(t.out); err != nil {
		return err
	}

	if t.scoreDirty {
		t.out.scoreLine(t.score)
		t.scoreDirty = false
	}

	if len(t.overlay) > 0 {
		t.out.overlay(t.overlay)
		t.overlay = t.overlay[:0]
		t.overlayUp = true
	}

	return t.out.flush()
}
