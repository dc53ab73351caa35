// Package audio plays the match sound effects on the local sound device.
// Every effect is synthesised at start-up; nothing is loaded from disk.
package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/tomz197/pong/internal/match"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// Synth is a match.Notifier backed by an oto context.
type Synth struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	sounds [3][]byte // Indexed by match.Sound
}

var _ match.Notifier = (*Synth)(nil)

// New opens the default audio device. Sounds requested before the device is
// ready are dropped.
func New(volume float64) (*Synth, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	return &Synth{
		ctx:    ctx,
		ready:  ready,
		volume: clampF(volume, 0, 1),
		sounds: generateAll(),
	}, nil
}

// Play starts playback of s in the background and returns immediately.
func (a *Synth) Play(s match.Sound) {
	select {
	case <-a.ready:
	default:
		return
	}
	if int(s) < 0 || int(s) >= len(a.sounds) {
		return
	}
	samples := a.sounds[s]
	go func() {
		player := a.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(a.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// soundReader streams a fixed buffer; each playback gets its own reader.
type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
