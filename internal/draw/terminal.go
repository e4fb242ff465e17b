package draw

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"golang.org/x/term"
)

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// Slightly below a typical 1500 byte MTU for smooth SSH transmission.
const maxChunkSize = 1400

// frameWriter collects one frame of terminal output and writes it in chunks.
// It knows the playfield layout: the score line sits on the row above the
// playfield and overlay text is centered over it.
type frameWriter struct {
	out io.Writer
	buf []byte

	// 0-based terminal position and size of the playfield.
	left, top  int
	cols, rows int
}

func newFrameWriter(w io.Writer) *frameWriter {
	return &frameWriter{out: w, buf: make([]byte, 0, 4096)}
}

// place records where the playfield is on the terminal.
func (fw *frameWriter) place(left, top, cols, rows int) {
	fw.left, fw.top = left, top
	fw.cols, fw.rows = cols, rows
}

// Write appends p; Canvas.Render writes through it.
func (fw *frameWriter) Write(p []byte) (int, error) {
	fw.buf = append(fw.buf, p...)
	return len(p), nil
}

// moveTo positions the cursor at a 0-based terminal column and row.
func (fw *frameWriter) moveTo(col, row int) {
	fw.buf = append(fw.buf, "\033["...)
	fw.buf = strconv.AppendInt(fw.buf, int64(row+1), 10)
	fw.buf = append(fw.buf, ';')
	fw.buf = strconv.AppendInt(fw.buf, int64(col+1), 10)
	fw.buf = append(fw.buf, 'H')
}

func (fw *frameWriter) clearScreen() {
	fw.buf = append(fw.buf, "\033[H\033[2J"...)
}

// scoreLine writes the score left-aligned above the playfield, padded so a
// shorter number overwrites a longer one.
func (fw *frameWriter) scoreLine(score int) {
	fw.moveTo(fw.left, max(fw.top-1, 0))
	fw.buf = fmt.Appendf(fw.buf, "Score: %-8d", score)
}

// overlay writes lines centered over the playfield. Empty lines only take
// up space. A line wider than the playfield may spill into the margins.
func (fw *frameWriter) overlay(lines []string) {
	first := fw.top + fw.rows/2 - len(lines)/2
	for i, line := range lines {
		if line == "" {
			continue
		}
		text := " " + line + " "
		col := fw.left + (fw.cols-utf8.RuneCountInString(text))/2
		fw.moveTo(max(col, 0), first+i)
		fw.buf = append(fw.buf, text...)
	}
}

// flush sends the collected frame and empties the buffer.
func (fw *frameWriter) flush() error {
	data := fw.buf
	fw.buf = fw.buf[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := fw.out.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}
