package match

// Sound identifies a sound effect emitted by the simulation.
type Sound int

const (
	SoundHit   Sound = iota // Wall or paddle bounce
	SoundScore              // A point was scored
	SoundWin                // A player reached the winning score
)

func (s Sound) String() string {
	switch s {
	case SoundHit:
		return "hit"
	case SoundScore:
		return "score"
	case SoundWin:
		return "win"
	default:
		return "unknown"
	}
}

// Notifier plays sound effects. Play must not block the tick and has no way
// to report failure back into the simulation.
type Notifier interface {
	Play(s Sound)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(Sound)

// Play calls f(s).
func (f NotifierFunc) Play(s Sound) { f(s) }

type silent struct{}

func (silent) Play(Sound) {}
