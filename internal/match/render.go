package match

import (
	"strconv"

	"github.com/tomz197/pong/internal/loop/config"
)

// Color is the closed palette the court is drawn with.
type Color int

const (
	ColorWhite Color = iota
	ColorGreen
	ColorYellow
)

func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// Renderer is the drawing surface a Match paints on, in logical units with
// the origin at the top left. DrawText centres text horizontally on x.
type Renderer interface {
	Clear()
	DrawRect(x, y, w, h float64, c Color)
	DrawCircle(x, y, r float64, c Color)
	DrawText(text string, x, y, size float64, c Color)
}

// The menu is an empty court; the owner draws the start message over it.
func (m *Match) drawMenu(r Renderer) {
	if r == nil {
		return
	}
	r.Clear()
}

func (m *Match) drawGameOver(r Renderer) {
	if r == nil {
		return
	}
	s := &m.state
	r.Clear()
	r.DrawText(s.Winner+" voitti!", s.Width/2, s.Height/2, config.WinnerTextSize, ColorWhite)
}

func (m *Match) drawGame(r Renderer) {
	if r == nil {
		return
	}
	s := &m.state
	r.Clear()

	for y := 0.0; y < s.Height; y += config.NetDashSpacing {
		r.DrawRect(s.Width/2-config.NetDashWidth/2, y, config.NetDashWidth, config.NetDashLength, ColorWhite)
	}

	r.DrawRect(0, s.Paddle1Y, config.PaddleWidth, config.PaddleHeight, ColorGreen)
	r.DrawRect(s.Width-config.PaddleWidth, s.Paddle2Y, config.PaddleWidth, config.PaddleHeight, ColorWhite)
	r.DrawCircle(s.BallX, s.BallY, config.BallRadius, ColorYellow)

	r.DrawText(strconv.Itoa(s.Player1Score), s.Width/4, config.ScoreTextY, config.ScoreTextSize, ColorWhite)
	r.DrawText(strconv.Itoa(s.Player2Score), s.Width*3/4, config.ScoreTextY, config.ScoreTextSize, ColorWhite)
}
