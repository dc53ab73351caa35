package client

import "github.com/tomz197/pong/internal/match"

// bell is the notifier used when no audio device is available: any sound
// rings the terminal bell once with the next frame.
type bell struct {
	ring bool
}

func (b *bell) Play(match.Sound) {
	b.ring = true
}

// take reports whether the bell was rung since the last call.
func (b *bell) take() bool {
	r := b.ring
	b.ring = false
	return r
}
