package input

import (
	"bufio"
	"time"

	"github.com/tomz197/pong/internal/loop/config"
)

// Selection is an opponent selector action.
type Selection int

const (
	SelectNone     Selection = iota
	SelectNext               // Tab: cycle to the other opponent
	SelectComputer           // '1'
	SelectHuman              // '2'
)

// Input represents the current frame's input state.
//
// Up, Down, W and S are held keys: terminals send no key-up events, so a key
// stays held for config.KeyHoldDuration after its last byte and auto-repeat
// keeps it alive. The remaining fields are discrete actions seen this frame.
type Input struct {
	Up   bool // Arrow up, paddle 2
	Down bool // Arrow down, paddle 2
	W    bool // Paddle 1 up
	S    bool // Paddle 1 down

	Confirm     bool // Enter or a mouse button press
	ToggleSound bool
	Select      Selection
	Quit        bool
	Closed      bool // The underlying reader is gone

	Pressed []byte
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	up   time.Time
	down time.Time
	w    time.Time
	s    time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Incomplete escape sequence carried into the next frame
	closed  bool
	now     func() time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// decodes them into this frame's Input.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := s.decode(buf, s.now())
	in.Closed = s.closed
	return in
}

// ResetKeyInput forgets all held keys, so a key held across a state change
// does not leak into the new state.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// decode parses buf, updating held-key timestamps and collecting discrete actions.
func (s *Stream) decode(buf []byte, now time.Time) Input {
	var in Input

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			n, complete := s.escape(buf[i:], now, &in)
			if !complete {
				s.pending = append(s.pending, buf[i:]...)
				buf = buf[:i]
				break
			}
			i += n - 1
			continue
		}

		switch b {
		case 'w', 'W':
			s.state.w = now
		case 's', 'S':
			s.state.s = now
		case '\r', '\n':
			in.Confirm = true
		case 'm', 'M':
			in.ToggleSound = !in.ToggleSound
		case '\t':
			in.Select = SelectNext
		case '1':
			in.Select = SelectComputer
		case '2':
			in.Select = SelectHuman
		case 'q', 'Q', '\x03':
			in.Quit = true
		}
	}

	held := func(t time.Time) bool {
		return now.Sub(t) < config.KeyHoldDuration
	}
	in.Up = held(s.state.up)
	in.Down = held(s.state.down)
	in.W = held(s.state.w)
	in.S = held(s.state.s)
	in.Pressed = buf
	return in
}

// escape decodes the escape sequence at the start of seq. It returns the
// number of bytes consumed, or complete=false when seq ends mid-sequence.
func (s *Stream) escape(seq []byte, now time.Time, in *Input) (n int, complete bool) {
	if len(seq) < 2 {
		return 0, false
	}

	switch seq[1] {
	case 'O': // SS3, arrows in application cursor mode
		if len(seq) < 3 {
			return 0, false
		}
		s.arrow(seq[2], now)
		return 3, true
	case '[':
	default:
		return 1, true // Bare escape
	}

	// CSI: parameter bytes, then a final byte.
	j := 2
	for j < len(seq) && seq[j] >= 0x30 && seq[j] <= 0x3f {
		j++
	}
	if j >= len(seq) {
		return 0, false
	}

	if seq[j] == 'M' && j == 2 {
		// X10 mouse report: ESC [ M b x y, each byte offset by 32.
		if len(seq) < 6 {
			return 0, false
		}
		if isButtonPress(seq[3]) {
			in.Confirm = true
		}
		return 6, true
	}

	s.arrow(seq[j], now)
	return j + 1, true
}

func (s *Stream) arrow(final byte, now time.Time) {
	switch final {
	case 'A':
		s.state.up = now
	case 'B':
		s.state.down = now
	}
}

// isButtonPress reports whether an X10 button byte is a press rather than a
// release or wheel event.
func isButtonPress(b byte) bool {
	code := int(b) - 32
	return code >= 0 && code&64 == 0 && code&3 != 3
}
