package match

import (
	"testing"

	"github.com/tomz197/pong/internal/surface"
)

// seqRandom replays vals in a loop; with no values it always returns 0.5.
type seqRandom struct {
	vals []float64
	i    int
}

func (r *seqRandom) Float64() float64 {
	if len(r.vals) == 0 {
		return 0.5
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

type recordNotifier struct {
	sounds []Sound
}

func (n *recordNotifier) Play(s Sound) {
	n.sounds = append(n.sounds, s)
}

type drawCall struct {
	kind  string
	x, y  float64
	w, h  float64
	text  string
	size  float64
	color Color
}

type recordRenderer struct {
	clears int
	calls  []drawCall
}

func (r *recordRenderer) Clear() { r.clears++ }

func (r *recordRenderer) DrawRect(x, y, w, h float64, c Color) {
	r.calls = append(r.calls, drawCall{kind: "rect", x: x, y: y, w: w, h: h, color: c})
}

func (r *recordRenderer) DrawCircle(x, y, rad float64, c Color) {
	r.calls = append(r.calls, drawCall{kind: "circle", x: x, y: y, w: rad, color: c})
}

func (r *recordRenderer) DrawText(text string, x, y, size float64, c Color) {
	r.calls = append(r.calls, drawCall{kind: "text", x: x, y: y, text: text, size: size, color: c})
}

func (r *recordRenderer) count(kind string) int {
	n := 0
	for _, c := range r.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}

var court = surface.Size{Width: 800, Height: 600}

// newPlaying returns a match that has just been confirmed, with the serve
// sounds cleared and the ball parked at the centre with no velocity.
func newPlaying(t *testing.T, opp OpponentMode, rnd ...float64) (*Match, *recordNotifier) {
	t.Helper()
	n := &recordNotifier{}
	m := New(court, WithRandom(&seqRandom{vals: rnd}), WithNotifier(n))
	if !m.Confirm(opp) {
		t.Fatalf("Confirm in menu returned false")
	}
	m.state.BallSpeedX = 0
	m.state.BallSpeedY = 0
	n.sounds = nil
	return m, n
}

func TestNewStartsInMenu(t *testing.T) {
	m := New(court)
	s := m.Snapshot()
	if s.Phase != PhaseMenu {
		t.Fatalf("phase = %v; want menu", s.Phase)
	}
	if !s.SoundEnabled {
		t.Errorf("sound should be enabled by default")
	}

	r := &recordRenderer{}
	m.Tick(r)
	if r.clears != 1 || len(r.calls) != 0 {
		t.Errorf("menu tick drew %d clears, %d calls; want 1, 0", r.clears, len(r.calls))
	}
	if got := m.Snapshot(); got != s {
		t.Errorf("menu tick changed state: %+v -> %+v", s, got)
	}
}

func TestConfirm(t *testing.T) {
	m := New(court, WithRandom(&seqRandom{}))
	m.state.Player1Score = 4
	m.state.Paddle1Y = 0

	if !m.Confirm(OpponentHuman) {
		t.Fatalf("Confirm in menu returned false")
	}
	s := m.Snapshot()
	if s.Phase != PhasePlaying {
		t.Errorf("phase = %v; want playing", s.Phase)
	}
	if s.Player1Score != 0 || s.Player2Score != 0 {
		t.Errorf("scores = %d-%d; want 0-0", s.Player1Score, s.Player2Score)
	}
	if s.Paddle1Y != 235 || s.Paddle2Y != 235 {
		t.Errorf("paddles = %v, %v; want 235, 235", s.Paddle1Y, s.Paddle2Y)
	}
	if s.Opponent != OpponentHuman {
		t.Errorf("opponent = %v; want human", s.Opponent)
	}

	if m.Confirm(OpponentComputer) {
		t.Errorf("Confirm while playing returned true")
	}
	if m.Snapshot().Opponent != OpponentHuman {
		t.Errorf("Confirm while playing changed the opponent")
	}
}

func TestConfirmFromGameOver(t *testing.T) {
	m, _ := newPlaying(t, OpponentComputer)
	m.state.Phase = PhaseGameOver
	m.state.Winner = LabelComputer
	m.state.Player2Score = 10

	if !m.Confirm(OpponentHuman) {
		t.Fatalf("Confirm after game over returned false")
	}
	s := m.Snapshot()
	if s.Phase != PhasePlaying || s.Player2Score != 0 || s.Winner != "" {
		t.Errorf("state after rematch = %+v", s)
	}
}

func TestResetServesRandomDirection(t *testing.T) {
	m := New(court, WithRandom(&seqRandom{vals: []float64{0.9, 0.5, 0.1, 1}}))

	m.Reset()
	first := m.Snapshot()
	m.Reset()
	second := m.Snapshot()

	for i, s := range []State{first, second} {
		if s.Player1Score != 0 || s.Player2Score != 0 {
			t.Errorf("reset %d: scores = %d-%d", i, s.Player1Score, s.Player2Score)
		}
		if s.Paddle1Y != 235 || s.Paddle2Y != 235 {
			t.Errorf("reset %d: paddles = %v, %v", i, s.Paddle1Y, s.Paddle2Y)
		}
		if s.BallX != 400 || s.BallY != 300 {
			t.Errorf("reset %d: ball = (%v, %v)", i, s.BallX, s.BallY)
		}
	}
	if first.BallSpeedX != 5 || first.BallSpeedY != 0 {
		t.Errorf("first serve = (%v, %v); want (5, 0)", first.BallSpeedX, first.BallSpeedY)
	}
	if second.BallSpeedX != -5 || second.BallSpeedY != 2 {
		t.Errorf("second serve = (%v, %v); want (-5, 2)", second.BallSpeedX, second.BallSpeedY)
	}
}

func TestScoring(t *testing.T) {
	cases := []struct {
		name   string
		ballX  float64
		speedX float64
		want1  int
		want2  int
	}{
		{"left exit", 4, -5, 0, 1},
		{"right exit", 796, 5, 1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, n := newPlaying(t, OpponentHuman)
			m.state.BallX = tc.ballX
			m.state.BallY = 100
			m.state.BallSpeedX = tc.speedX

			m.Tick(nil)

			s := m.Snapshot()
			if s.Player1Score != tc.want1 || s.Player2Score != tc.want2 {
				t.Errorf("scores = %d-%d; want %d-%d", s.Player1Score, s.Player2Score, tc.want1, tc.want2)
			}
			if s.BallX != 400 || s.BallY != 300 {
				t.Errorf("ball = (%v, %v); want (400, 300)", s.BallX, s.BallY)
			}
			if len(n.sounds) != 1 || n.sounds[0] != SoundScore {
				t.Errorf("sounds = %v; want [score]", n.sounds)
			}
			if s.Phase != PhasePlaying {
				t.Errorf("phase = %v; want playing", s.Phase)
			}
		})
	}
}

func TestWinner(t *testing.T) {
	cases := []struct {
		name   string
		opp    OpponentMode
		score1 int
		score2 int
		ballX  float64
		speedX float64
		want   string
	}{
		{"player one", OpponentHuman, 9, 0, 796, 5, LabelPlayer1},
		{"player two", OpponentHuman, 3, 9, 4, -5, LabelPlayer2},
		{"computer", OpponentComputer, 0, 9, 4, -5, LabelComputer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, n := newPlaying(t, tc.opp)
			m.state.Player1Score = tc.score1
			m.state.Player2Score = tc.score2
			m.state.BallX = tc.ballX
			m.state.BallY = 100
			m.state.BallSpeedX = tc.speedX

			m.Tick(nil)

			s := m.Snapshot()
			if s.Phase != PhaseGameOver {
				t.Fatalf("phase = %v; want gameover", s.Phase)
			}
			if s.Winner != tc.want {
				t.Errorf("winner = %q; want %q", s.Winner, tc.want)
			}
			want := []Sound{SoundScore, SoundWin}
			if len(n.sounds) != 2 || n.sounds[0] != want[0] || n.sounds[1] != want[1] {
				t.Errorf("sounds = %v; want %v", n.sounds, want)
			}

			// Physics is frozen after the match ends.
			r := &recordRenderer{}
			m.state.BallSpeedX = 5
			m.Tick(r)
			if got := m.Snapshot(); got.BallX != s.BallX {
				t.Errorf("ball moved after game over: %v -> %v", s.BallX, got.BallX)
			}
			if got := m.Snapshot(); got.Player1Score != s.Player1Score || got.Player2Score != s.Player2Score {
				t.Errorf("scores changed after game over")
			}
			if len(r.calls) != 1 || r.calls[0].text != tc.want+" voitti!" || r.calls[0].size != 40 {
				t.Errorf("game over render = %+v", r.calls)
			}
		})
	}
}

func TestComputerSteering(t *testing.T) {
	cases := []struct {
		name    string
		paddleY float64
		ballY   float64
		rnd     float64
		want    float64
	}{
		{"below target", 35, 300, 0.5, 41},
		{"above target", 400, 100, 0.5, 394},
		{"inside dead zone", 225, 300, 0.5, 225},
		{"noise pushes target up", 235, 300, 0, 229},
		{"clamped at bottom", 468, 600, 1, 470},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newPlaying(t, OpponentComputer, tc.rnd)
			m.state.Paddle2Y = tc.paddleY
			m.state.BallX = 400
			m.state.BallY = tc.ballY

			m.Tick(nil)

			if got := m.Snapshot().Paddle2Y; got != tc.want {
				t.Errorf("paddle 2 y = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestWallBounce(t *testing.T) {
	cases := []struct {
		name   string
		ballY  float64
		speedY float64
		wantY  float64
	}{
		{"top", 16, -3, 15},
		{"bottom", 584, 3, 585},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, n := newPlaying(t, OpponentHuman)
			m.state.BallX = 400
			m.state.BallY = tc.ballY
			m.state.BallSpeedY = tc.speedY

			m.Tick(nil)

			s := m.Snapshot()
			if s.BallSpeedY != -tc.speedY {
				t.Errorf("speed y = %v; want %v", s.BallSpeedY, -tc.speedY)
			}
			if s.BallY != tc.wantY {
				t.Errorf("ball y = %v; want %v", s.BallY, tc.wantY)
			}
			if len(n.sounds) != 1 || n.sounds[0] != SoundHit {
				t.Errorf("sounds = %v; want [hit]", n.sounds)
			}
		})
	}
}

func TestPaddleBounce(t *testing.T) {
	cases := []struct {
		name   string
		ballX  float64
		ballY  float64
		speedX float64
		want   float64
	}{
		{"left paddle", 45, 300, -5, 5},
		{"left paddle top edge", 45, 235, -5, 5},
		{"right paddle", 755, 300, 5, -5},
		{"right paddle bottom edge", 755, 365, 5, -5},
		// Only the centre counts vertically, so a ball overlapping the
		// paddle corner by its radius passes.
		{"left corner miss", 45, 225, -5, -5},
		{"right corner miss", 755, 375, 5, 5},
		{"short of paddle", 50, 300, -5, -5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, n := newPlaying(t, OpponentHuman)
			m.state.BallX = tc.ballX
			m.state.BallY = tc.ballY
			m.state.BallSpeedX = tc.speedX

			m.Tick(nil)

			if got := m.Snapshot().BallSpeedX; got != tc.want {
				t.Errorf("speed x = %v; want %v", got, tc.want)
			}
			hit := tc.want != tc.speedX
			if hit && (len(n.sounds) != 1 || n.sounds[0] != SoundHit) {
				t.Errorf("sounds = %v; want [hit]", n.sounds)
			}
			if !hit && len(n.sounds) != 0 {
				t.Errorf("sounds = %v; want none", n.sounds)
			}
		})
	}
}

func TestPaddlesStayInBounds(t *testing.T) {
	cases := []struct {
		name string
		ctrl Controls
		want float64
	}{
		{"up", Controls{W: true, Up: true}, 0},
		{"down", Controls{S: true, Down: true}, 470},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newPlaying(t, OpponentHuman)
			m.SetControls(tc.ctrl)
			for i := 0; i < 100; i++ {
				m.Tick(nil)
				s := m.Snapshot()
				for _, y := range []float64{s.Paddle1Y, s.Paddle2Y} {
					if y < 0 || y > s.Height-130 {
						t.Fatalf("tick %d: paddle y %v out of bounds", i, y)
					}
				}
			}
			s := m.Snapshot()
			if s.Paddle1Y != tc.want || s.Paddle2Y != tc.want {
				t.Errorf("paddles = %v, %v; want %v", s.Paddle1Y, s.Paddle2Y, tc.want)
			}
		})
	}
}

func TestComputerIgnoresArrowKeys(t *testing.T) {
	m, _ := newPlaying(t, OpponentComputer)
	m.state.BallY = 300
	m.SetControls(Controls{Up: true})

	m.Tick(nil)

	if got := m.Snapshot().Paddle2Y; got != 235 {
		t.Errorf("paddle 2 y = %v; want 235", got)
	}
}

func TestMuteSuppressesSound(t *testing.T) {
	m, n := newPlaying(t, OpponentHuman)
	if m.ToggleSound() {
		t.Fatalf("ToggleSound should report false after muting")
	}
	m.state.BallX = 400
	m.state.BallY = 16
	m.state.BallSpeedY = -3

	m.Tick(nil)

	if len(n.sounds) != 0 {
		t.Errorf("sounds = %v; want none while muted", n.sounds)
	}
	if m.Snapshot().BallSpeedY != 3 {
		t.Errorf("muting must not change physics")
	}
	if !m.ToggleSound() || !m.SoundEnabled() {
		t.Errorf("second toggle should re-enable sound")
	}
}

func TestResizeClampsPaddles(t *testing.T) {
	m, _ := newPlaying(t, OpponentHuman)
	m.state.Paddle1Y = 470
	m.state.Paddle2Y = 10

	m.Resize(surface.Size{Width: 400, Height: 300})

	s := m.Snapshot()
	if s.Width != 400 || s.Height != 300 {
		t.Errorf("size = %vx%v; want 400x300", s.Width, s.Height)
	}
	if s.Paddle1Y != 170 {
		t.Errorf("paddle 1 y = %v; want 170", s.Paddle1Y)
	}
	if s.Paddle2Y != 10 {
		t.Errorf("paddle 2 y = %v; want 10", s.Paddle2Y)
	}
}

func TestDrawGame(t *testing.T) {
	m, _ := newPlaying(t, OpponentHuman)
	m.state.Player1Score = 3
	m.state.Player2Score = 7
	m.state.BallX = 400
	m.state.BallY = 300
	r := &recordRenderer{}

	m.Tick(r)

	if r.clears != 1 {
		t.Errorf("clears = %d; want 1", r.clears)
	}
	// 30 net dashes plus two paddles.
	if got := r.count("rect"); got != 32 {
		t.Errorf("rects = %d; want 32", got)
	}
	if got := r.count("circle"); got != 1 {
		t.Errorf("circles = %d; want 1", got)
	}

	var texts []drawCall
	for _, c := range r.calls {
		switch {
		case c.kind == "text":
			texts = append(texts, c)
		case c.kind == "rect" && c.x == 0:
			if c.color != ColorGreen || c.y != 235 || c.w != 25 || c.h != 130 {
				t.Errorf("left paddle = %+v", c)
			}
		case c.kind == "rect" && c.x == 775:
			if c.color != ColorWhite || c.h != 130 {
				t.Errorf("right paddle = %+v", c)
			}
		case c.kind == "circle":
			if c.color != ColorYellow || c.x != 400 || c.y != 300 || c.w != 15 {
				t.Errorf("ball = %+v", c)
			}
		}
	}
	if len(texts) != 2 {
		t.Fatalf("texts = %+v; want two scores", texts)
	}
	if texts[0].text != "3" || texts[0].x != 200 || texts[0].y != 50 {
		t.Errorf("left score = %+v", texts[0])
	}
	if texts[1].text != "7" || texts[1].x != 600 || texts[1].y != 50 {
		t.Errorf("right score = %+v", texts[1])
	}
}

func TestEnumStrings(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{PhaseMenu.String(), "menu"},
		{PhasePlaying.String(), "playing"},
		{PhaseGameOver.String(), "gameover"},
		{Phase(9).String(), "unknown"},
		{OpponentComputer.String(), "computer"},
		{OpponentHuman.String(), "human"},
		{SoundHit.String(), "hit"},
		{SoundScore.String(), "score"},
		{SoundWin.String(), "win"},
		{ColorYellow.String(), "yellow"},
	}

	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("got %q; want %q", tc.got, tc.want)
		}
	}
}

func TestParseOpponentMode(t *testing.T) {
	cases := []struct {
		in   string
		want OpponentMode
	}{
		{"human", OpponentHuman},
		{"computer", OpponentComputer},
		{"", OpponentComputer},
		{"HUMAN", OpponentComputer},
	}

	for _, tc := range cases {
		if got := ParseOpponentMode(tc.in); got != tc.want {
			t.Errorf("ParseOpponentMode(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewRandomIsDeterministic(t *testing.T) {
	a, b := NewRandom(42), NewRandom(42)
	for i := 0; i < 10; i++ {
		x, y := a.Float64(), b.Float64()
		if x != y {
			t.Fatalf("draw %d: %v != %v", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("draw %d: %v out of [0,1)", i, x)
		}
	}
}
