package draw

import (
	"fmt"
	"io"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI text attributes for UI overlays written through a ChunkWriter.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorDim        = "\033[2m"
	ColorBrightCyan = "\033[96m"
	ColorGreen      = "\033[92m"
	ColorYellow     = "\033[93m"
)

// Color is the colour of one canvas sub-pixel. Blank is an unset pixel.
type Color uint8

const (
	Blank Color = iota
	White
	Green
	Yellow
	Cyan
)

// SGR parameters per Color, foreground and background.
var (
	fgCodes = [...]string{Blank: "39", White: "97", Green: "92", Yellow: "93", Cyan: "96"}
	bgCodes = [...]string{Blank: "49", White: "107", Green: "102", Yellow: "103", Cyan: "106"}
)

// Sequence returns the SGR sequence that selects c as the foreground colour.
func (c Color) Sequence() string {
	if int(c) >= len(fgCodes) {
		return "\033[39m"
	}
	return "\033[" + fgCodes[c] + "m"
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

// EnableMouse turns on X10 mouse reporting: the terminal sends ESC [ M b x y
// on every button press.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1000h")
}

// DisableMouse turns mouse reporting back off.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1000l")
}

// MoveCursor moves cursor to a specific position (1-based).
func MoveCursor(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\033[%d;%dH", y, x)
}
