package client

import (
	"time"

	"github.com/tomz197/pong/internal/input"
	"github.com/tomz197/pong/internal/match"
)

// ClientState holds the per-connection state around the match: the opponent
// selector, inactivity and shutdown tracking, and what was on screen last frame.
type ClientState struct {
	Input    input.Input
	Opponent match.OpponentMode // Selector value, read on confirm
	Running  bool               // Client loop running

	delta         time.Duration // Frame delta time
	shutdown      bool          // Server asked us to leave
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state

	// Previous frame, for full clears on screen transitions
	prevPhase   match.Phase
	wasInactive bool
	wasShutdown bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Opponent: match.OpponentComputer,
		Running:  true,
	}
}

// applySelection updates the opponent selector.
func (s *ClientState) applySelection(sel input.Selection) {
	switch sel {
	case input.SelectNext:
		if s.Opponent == match.OpponentComputer {
			s.Opponent = match.OpponentHuman
		} else {
			s.Opponent = match.OpponentComputer
		}
	case input.SelectComputer:
		s.Opponent = match.OpponentComputer
	case input.SelectHuman:
		s.Opponent = match.OpponentHuman
	}
}
