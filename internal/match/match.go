// Package match implements the pong simulation: a single owned State that is
// advanced and drawn once per display refresh.
package match

import (
	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/surface"
)

// Match owns the state of one game and its collaborators.
// It is not safe for concurrent use; the owning frame loop serializes access.
type Match struct {
	state    State
	rng      Random
	notifier Notifier
}

// Option configures a Match.
type Option func(*Match)

// WithRandom sets the random source used for serves and computer aim.
func WithRandom(r Random) Option {
	return func(m *Match) {
		if r != nil {
			m.rng = r
		}
	}
}

// WithNotifier sets the sound effect sink.
func WithNotifier(n Notifier) Option {
	return func(m *Match) {
		if n != nil {
			m.notifier = n
		}
	}
}

// WithSound sets the initial mute state. Sound is on by default.
func WithSound(enabled bool) Option {
	return func(m *Match) {
		m.state.SoundEnabled = enabled
	}
}

// New creates a match in PhaseMenu on a surface of the given size.
func New(size surface.Size, opts ...Option) *Match {
	m := &Match{
		state: State{
			Phase:        PhaseMenu,
			Opponent:     OpponentComputer,
			SoundEnabled: true,
			Width:        size.Width,
			Height:       size.Height,
		},
		notifier: silent{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = NewRandom(1)
	}
	m.centerPaddles()
	m.state.BallX = size.Width / 2
	m.state.BallY = size.Height / 2
	return m
}

// Snapshot returns a copy of the current match state.
func (m *Match) Snapshot() State {
	return m.state
}

// Phase returns the current phase.
func (m *Match) Phase() Phase {
	return m.state.Phase
}

// SetControls replaces the held-key flags read by the next tick.
func (m *Match) SetControls(c Controls) {
	m.state.Controls = c
}

// Confirm starts a new match against mode. It only has an effect in
// PhaseMenu and PhaseGameOver and reports whether a match was started.
func (m *Match) Confirm(mode OpponentMode) bool {
	switch m.state.Phase {
	case PhaseMenu, PhaseGameOver:
		m.state.Opponent = mode
		m.Reset()
		return true
	default:
		return false
	}
}

// Reset zeroes the scores, centres both paddles, serves a new ball and
// enters PhasePlaying.
func (m *Match) Reset() {
	m.state.Player1Score = 0
	m.state.Player2Score = 0
	m.state.Winner = ""
	m.centerPaddles()
	m.serve()
	m.state.Phase = PhasePlaying
}

// Resize adopts a new surface size. Paddles are clamped into the new court
// right away so the bounds invariant never waits for the next tick.
func (m *Match) Resize(size surface.Size) {
	m.state.Width = size.Width
	m.state.Height = size.Height
	m.state.Paddle1Y = m.clampPaddle(m.state.Paddle1Y)
	m.state.Paddle2Y = m.clampPaddle(m.state.Paddle2Y)
}

// SoundEnabled reports whether sound effects are played.
func (m *Match) SoundEnabled() bool {
	return m.state.SoundEnabled
}

// ToggleSound flips the mute flag and returns the new value.
func (m *Match) ToggleSound() bool {
	m.state.SoundEnabled = !m.state.SoundEnabled
	return m.state.SoundEnabled
}

// Tick advances the match by one frame and draws it. Physics only runs in
// PhasePlaying. A nil Renderer skips drawing.
func (m *Match) Tick(r Renderer) {
	switch m.state.Phase {
	case PhaseMenu:
		m.drawMenu(r)
	case PhasePlaying:
		m.step()
		m.drawGame(r)
	case PhaseGameOver:
		m.drawGameOver(r)
	}
}

func (m *Match) centerPaddles() {
	y := m.state.Height/2 - config.PaddleHeight/2
	m.state.Paddle1Y = y
	m.state.Paddle2Y = y
}

// serve recentres the ball with a random horizontal direction and a random
// vertical speed.
func (m *Match) serve() {
	m.state.BallX = m.state.Width / 2
	m.state.BallY = m.state.Height / 2
	if m.rng.Float64() > 0.5 {
		m.state.BallSpeedX = config.BallServeX
	} else {
		m.state.BallSpeedX = -config.BallServeX
	}
	m.state.BallSpeedY = m.rng.Float64()*2*config.BallServeYMax - config.BallServeYMax
}

func (m *Match) emit(s Sound) {
	if m.state.SoundEnabled {
		m.notifier.Play(s)
	}
}
