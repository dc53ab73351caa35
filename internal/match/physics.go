package match

import (
	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/physics"
)

// step runs one physics update. Order matters: paddles, ball motion, wall
// bounce, paddle bounce, scoring, win check.
func (m *Match) step() {
	s := &m.state

	s.Paddle1Y = m.movePaddle(s.Paddle1Y, s.Controls.W, s.Controls.S)
	if s.Opponent == OpponentHuman {
		s.Paddle2Y = m.movePaddle(s.Paddle2Y, s.Controls.Up, s.Controls.Down)
	} else {
		m.steerComputer()
	}

	s.BallX += s.BallSpeedX
	s.BallY += s.BallSpeedY

	m.bounceWalls()
	m.bouncePaddles()
	m.checkScore()
	m.checkWin()
}

func (m *Match) movePaddle(y float64, up, down bool) float64 {
	if up {
		y -= config.PaddleSpeed
	}
	if down {
		y += config.PaddleSpeed
	}
	return m.clampPaddle(y)
}

func (m *Match) clampPaddle(y float64) float64 {
	return physics.Clamp(y, 0, m.state.Height-config.PaddleHeight)
}

// steerComputer moves paddle 2 one increment toward a noisy guess of the
// ball's height. The dead zone keeps it from twitching around the target.
func (m *Match) steerComputer() {
	s := &m.state
	center := s.Paddle2Y + config.PaddleHeight/2
	target := s.BallY + (m.rng.Float64()*config.AIErrorMargin*2 - config.AIErrorMargin)
	center = physics.StepToward(center, target, config.PaddleSpeed, config.AIDeadZone)
	s.Paddle2Y = m.clampPaddle(center - config.PaddleHeight/2)
}

func (m *Match) bounceWalls() {
	s := &m.state
	if !physics.CrossesVertical(s.BallY, config.BallRadius, s.Height) {
		return
	}
	s.BallSpeedY = -s.BallSpeedY
	// Pull the ball back inside so it cannot re-trigger the bounce on the
	// next tick and stick to the wall.
	s.BallY = physics.Clamp(s.BallY, config.BallRadius, s.Height-config.BallRadius)
	m.emit(SoundHit)
}

// bouncePaddles only tests the ball centre against the paddle span; the
// radius counts on the horizontal axis alone.
func (m *Match) bouncePaddles() {
	s := &m.state
	if s.BallX-config.BallRadius <= config.PaddleWidth &&
		physics.InSpan(s.BallY, s.Paddle1Y, config.PaddleHeight) {
		s.BallSpeedX = -s.BallSpeedX
		m.emit(SoundHit)
	}
	if s.BallX+config.BallRadius >= s.Width-config.PaddleWidth &&
		physics.InSpan(s.BallY, s.Paddle2Y, config.PaddleHeight) {
		s.BallSpeedX = -s.BallSpeedX
		m.emit(SoundHit)
	}
}

func (m *Match) checkScore() {
	s := &m.state
	if s.BallX < 0 {
		s.Player2Score++
		m.emit(SoundScore)
		m.serve()
	}
	if s.BallX > s.Width {
		s.Player1Score++
		m.emit(SoundScore)
		m.serve()
	}
}

func (m *Match) checkWin() {
	s := &m.state
	switch {
	case s.Player1Score >= config.WinningScore:
		s.Winner = LabelPlayer1
	case s.Player2Score >= config.WinningScore:
		s.Winner = s.Opponent.Label()
	default:
		return
	}
	m.emit(SoundWin)
	s.Phase = PhaseGameOver
}
