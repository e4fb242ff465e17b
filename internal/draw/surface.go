// Package draw renders the playfield to terminals.
package draw

// Color is a flat fill color. The zero value is empty (background).
type Color uint8

const (
	ColorNone Color = iota
	ColorCyan
	ColorYellow
	ColorRed
	ColorWhite
)

// ansiFG and ansiBG are the SGR parameters for each Color.
var (
	ansiFG = [...]string{ColorNone: "39", ColorCyan: "36", ColorYellow: "33", ColorRed: "31", ColorWhite: "37"}
	ansiBG = [...]string{ColorNone: "49", ColorCyan: "46", ColorYellow: "43", ColorRed: "41", ColorWhite: "47"}
)

// Surface is a render target for one frame.
// Coordinates are logical playfield units; implementations scale them.
type Surface interface {
	// Clear erases the whole drawing surface.
	Clear()
	// FillRect draws a flat-colored rectangle.
	FillRect(x, y, w, h float64, c Color)
	// DrawScore updates the textual score readout.
	DrawScore(score int)
	// DrawGameOver shows the game-over overlay with the final score.
	DrawGameOver(finalScore int)
}
