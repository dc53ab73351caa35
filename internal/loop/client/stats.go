package client

import "github.com/tomz197/pong/internal/match"

// Stats receives match lifecycle events, e.g. for metrics.
type Stats interface {
	MatchStarted(opponent match.OpponentMode)
	PointScored(opponent match.OpponentMode)
	MatchFinished(opponent match.OpponentMode, winner string)
}

type nopStats struct{}

func (nopStats) MatchStarted(match.OpponentMode) {}
func (nopStats) PointScored(match.OpponentMode) {}
func (nopStats) MatchFinished(match.OpponentMode, string) {}

// recordStats reports what changed between two snapshots taken around a tick.
func recordStats(st Stats, before, after match.State) {
	if before.Phase != match.PhasePlaying {
		return
	}
	points := after.Player1Score + after.Player2Score - before.Player1Score - before.Player2Score
	for i := 0; i < points; i++ {
		st.PointScored(after.Opponent)
	}
	if after.Phase == match.PhaseGameOver {
		st.MatchFinished(after.Opponent, after.Winner)
	}
}
