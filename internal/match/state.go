package match

// Phase is the top-level game mode.
type Phase int

const (
	PhaseMenu     Phase = iota // Waiting for the first confirm
	PhasePlaying               // Physics runs every tick
	PhaseGameOver              // Someone reached the winning score
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// OpponentMode selects who drives paddle 2.
type OpponentMode int

const (
	OpponentComputer OpponentMode = iota
	OpponentHuman
)

func (m OpponentMode) String() string {
	switch m {
	case OpponentComputer:
		return "computer"
	case OpponentHuman:
		return "human"
	default:
		return "unknown"
	}
}

// ParseOpponentMode maps a selector value ("computer" or "human") to a mode.
// Anything else falls back to the computer opponent.
func ParseOpponentMode(s string) OpponentMode {
	if s == "human" {
		return OpponentHuman
	}
	return OpponentComputer
}

// Winner labels shown on the game-over screen.
const (
	LabelPlayer1  = "Pelaaja 1"
	LabelPlayer2  = "Pelaaja 2"
	LabelComputer = "Tietokone"
)

// Label returns the display name of the paddle-2 side for this mode.
func (m OpponentMode) Label() string {
	if m == OpponentHuman {
		return LabelPlayer2
	}
	return LabelComputer
}

// Controls holds the held-key flags: W/S drive paddle 1, Up/Down paddle 2.
type Controls struct {
	Up   bool
	Down bool
	W    bool
	S    bool
}

// State is the full mutable match record.
type State struct {
	Phase        Phase
	Player1Score int
	Player2Score int
	Winner       string // Only meaningful in PhaseGameOver
	Opponent     OpponentMode

	Paddle1Y float64 // Top edge of the left paddle
	Paddle2Y float64 // Top edge of the right paddle

	BallX, BallY           float64 // Ball centre
	BallSpeedX, BallSpeedY float64

	Controls     Controls
	SoundEnabled bool

	Width  float64 // Drawable surface width
	Height float64 // Drawable surface height
}
