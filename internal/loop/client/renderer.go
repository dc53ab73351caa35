package client

import (
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/match"
)

// canvasRenderer paints a match onto a terminal canvas.
type canvasRenderer struct {
	canvas *draw.Canvas
}

var _ match.Renderer = canvasRenderer{}

func (r canvasRenderer) Clear() {
	r.canvas.Clear()
}

func (r canvasRenderer) DrawRect(x, y, w, h float64, c match.Color) {
	r.canvas.FillRect(x, y, w, h, canvasColor(c))
}

func (r canvasRenderer) DrawCircle(x, y, radius float64, c match.Color) {
	r.canvas.FillCircle(x, y, radius, canvasColor(c))
}

// DrawText has one terminal row per line, so size only picks bold for
// headline text.
func (r canvasRenderer) DrawText(text string, x, y, size float64, c match.Color) {
	r.canvas.DrawText(text, x, y, canvasColor(c), size >= config.WinnerTextSize)
}

func canvasColor(c match.Color) draw.Color {
	switch c {
	case match.ColorGreen:
		return draw.Green
	case match.ColorYellow:
		return draw.Yellow
	default:
		return draw.White
	}
}
