package draw

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

// cell is what one terminal cell shows: the upper and lower sub-pixel.
type cell struct {
	top, bottom Color
}

// label is a line of text overlaid on the canvas after the pixels.
type label struct {
	text  string
	col   int // 1-based canvas column
	row   int // 1-based canvas row
	color Color
	bold  bool
}

// Canvas is a colour drawing buffer with 2x vertical resolution using
// half-block characters. It scales logical coordinates to terminal pixels
// and only rewrites the cells that changed since the previous Render.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area inside a larger terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Diff state: what each cell showed after the last Render.
	prev   []cell
	dirty  []bool // Cells overwritten by text that must be repainted
	redraw bool   // Repaint every cell on the next Render

	labels    []label
	renderBuf strings.Builder
}

// NewCanvas creates a canvas for the given terminal dimensions with a 1:1
// mapping between logical units and sub-pixels.
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the game.
// termWidth/Height are the terminal cells covered by the canvas.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Color, c.subPixelHeight*termWidth)
		c.prev = make([]cell, termHeight*termWidth)
		c.dirty = make([]bool, termHeight*termWidth)
		c.redraw = true
	}
	c.updateScale()
}

// SetLogicalSize changes the coordinate space drawn into.
func (c *Canvas) SetLogicalSize(width, height float64) {
	c.logicalWidth = width
	c.logicalHeight = height
	c.updateScale()
}

func (c *Canvas) updateScale() {
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.redraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels and queued text. The previous frame is kept for diffing.
func (c *Canvas) Clear() {
	clear(c.pixels)
	c.labels = c.labels[:0]
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared behind the canvas's back.
func (c *Canvas) ForceRedraw() {
	c.redraw = true
}

// MarkTextDirty marks n cells starting at the 1-based canvas position
// (col, row) as overwritten, so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	if row < 1 || row > c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.dirty[(row-1)*c.termWidth+x] = true
		}
	}
}

func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// At returns the colour of the sub-pixel at terminal pixel coordinates.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return Blank
	}
	return c.pixels[y*c.termWidth+x]
}

// span converts the logical interval [start, start+length) to an inclusive
// pixel range covering every pixel it touches, at least one pixel wide.
func span(start, length, scale float64) (int, int) {
	lo := int(math.Floor(start * scale))
	hi := int(math.Ceil((start+length)*scale)) - 1
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// FillRect fills a rectangle given in logical coordinates.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	x0, x1 := span(x, w, c.scaleX)
	y0, y1 := span(y, h, c.scaleY)
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// FillCircle fills a disc given in logical coordinates. A pixel is set when
// its centre lies inside the disc; a disc smaller than a pixel still sets
// the pixel under its centre.
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	x0, x1 := span(cx-r, 2*r, c.scaleX)
	y0, y1 := span(cy-r, 2*r, c.scaleY)
	set := false
	for py := y0; py <= y1; py++ {
		ly := (float64(py)+0.5)/c.scaleY - cy
		for px := x0; px <= x1; px++ {
			lx := (float64(px)+0.5)/c.scaleX - cx
			if lx*lx+ly*ly <= r*r {
				c.setPixel(px, py, col)
				set = true
			}
		}
	}
	if !set {
		c.setPixel(int(math.Floor(cx*c.scaleX)), int(math.Floor(cy*c.scaleY)), col)
	}
}

// DrawText queues text centred horizontally on logical x, on the row that
// holds logical y. Text is written on top of the pixels by Render.
func (c *Canvas) DrawText(text string, x, y float64, col Color, bold bool) {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return
	}
	if n > c.termWidth {
		text = string([]rune(text)[:c.termWidth])
		n = c.termWidth
	}
	tc, tr := c.LogicalToTerminal(x, y)
	tc -= n / 2
	if tr < 1 || tr > c.termHeight {
		return
	}
	tc = max(1, min(tc, c.termWidth-n+1))
	c.labels = append(c.labels, label{text: text, col: tc, row: tr, color: col, bold: bold})
}

// Render writes the cells that changed since the previous call, then the
// queued text. Cells covered by text are repainted on the next call.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	redraw := c.redraw
	c.redraw = false

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			idx := row*c.termWidth + col
			cur := cell{top: c.pixels[topOffset+col], bottom: c.pixels[bottomOffset+col]}
			if !redraw && !c.dirty[idx] && cur == c.prev[idx] {
				continue
			}
			c.prev[idx] = cur
			c.dirty[idx] = false

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			writeCell(&c.renderBuf, cur)
		}
	}

	for _, l := range c.labels {
		fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", l.row+c.offsetRow, l.col+c.offsetCol)
		if l.bold {
			c.renderBuf.WriteString(ColorBold)
		}
		c.renderBuf.WriteString(l.color.Sequence())
		c.renderBuf.WriteString(l.text)
		c.renderBuf.WriteString(ColorReset)
		c.MarkTextDirty(l.col, l.row, utf8.RuneCountInString(l.text))
	}

	if c.renderBuf.Len() > 0 {
		c.renderBuf.WriteString(ColorReset)
	}
	io.WriteString(w, c.renderBuf.String())
}

// writeCell emits the SGR colours and glyph for one cell.
func writeCell(b *strings.Builder, cl cell) {
	var ch rune
	fg, bg := cl.top, Blank
	switch {
	case cl.top == Blank && cl.bottom == Blank:
		ch = BlockEmpty
	case cl.top == cl.bottom:
		ch = BlockFull
	case cl.top == Blank:
		ch = BlockLowerHalf
		fg = cl.bottom
	case cl.bottom == Blank:
		ch = BlockUpperHalf
	default:
		ch = BlockUpperHalf
		bg = cl.bottom
	}
	b.WriteString("\033[")
	b.WriteString(fgCodes[fg])
	b.WriteByte(';')
	b.WriteString(bgCodes[bg])
	b.WriteByte('m')
	b.WriteRune(ch)
}

// RenderBorder draws a box around the canvas area when the terminal has room
// for it on either axis: horizontal bars need a vertical offset, vertical
// bars a horizontal one.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.WriteString(ColorDim)

	if hasV {
		bar := strings.Repeat("─", c.termWidth)
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, bar)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, bar)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, bar)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, bar)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	buf.WriteString(ColorReset)
	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the canvas width in terminal columns.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas height in terminal rows.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas position (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}
