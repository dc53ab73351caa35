package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/input"
	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/loop/server"
	"github.com/tomz197/pong/internal/match"
	"github.com/tomz197/pong/internal/surface"
)

// Client handles rendering and input for a single connection. It owns one
// match and advances it once per frame.
type Client struct {
	registry     server.Registry
	handle       *server.ClientHandle
	state        *ClientState
	match        *match.Match
	renderer     canvasRenderer
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates the frame for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	layout       surface.Layout
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	bell         *bell // Set when sounds go to the terminal bell
	stats        Stats
	logger       *log.Logger
	inactivity   bool
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string

	// Registry, if set, is told about this client and may broadcast shutdown.
	Registry server.Registry

	// Notifier plays sound effects. Nil rings the terminal bell instead.
	Notifier match.Notifier

	// Random drives serves and the computer opponent. Nil seeds from the clock.
	Random match.Random

	Stats  Stats
	Logger *log.Logger
	Muted  bool

	// Inactivity disconnects clients that send no input for too long.
	Inactivity bool
}

// NewClient creates a new client reading from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	c := &Client{
		registry:     opts.Registry,
		state:        NewClientState(),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		stats:        opts.Stats,
		logger:       opts.Logger,
		inactivity:   opts.Inactivity,
	}
	if c.stats == nil {
		c.stats = nopStats{}
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.registry != nil {
		c.handle = c.registry.RegisterClient(opts.Username)
	}

	notifier := opts.Notifier
	if notifier == nil {
		c.bell = &bell{}
		notifier = c.bell
	}
	rng := opts.Random
	if rng == nil {
		rng = match.NewRandom(uint64(time.Now().UnixNano()))
	}

	// Size everything from the current terminal
	termWidth, termHeight, _ := termSizeFunc()
	c.layout = surface.FromTerminal(termWidth, termHeight)
	c.canvas = draw.NewScaledCanvas(c.layout.Cols, c.layout.Rows, c.layout.Size.Width, c.layout.Size.Height)
	c.canvas.SetOffset(c.layout.OffsetCol, c.layout.OffsetRow)
	c.chunkWriter = draw.NewChunkWriter(w, c.layout.OffsetCol, c.layout.OffsetRow)
	c.renderer = canvasRenderer{canvas: c.canvas}

	c.match = match.New(c.layout.Size,
		match.WithRandom(rng),
		match.WithNotifier(notifier),
		match.WithSound(!opts.Muted),
	)
	c.state.prevPhase = c.match.Phase()
	return c
}

// Match returns the match driven by this client.
func (c *Client) Match() *match.Match {
	return c.match
}

// Run starts the client loop. Blocks until the player quits, the input
// closes, ctx is cancelled or the server shuts the client down.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	draw.ClearScreen(c.writer)
	defer func() {
		if c.registry != nil {
			c.registry.UnregisterClient(c.handle.ID)
		}
		draw.DisableMouse(c.writer)
		draw.ClearScreen(c.writer)
		draw.ShowCursor(c.writer)
	}()

	lastTime := time.Now()

	for c.state.Running {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		if c.state.shutdown {
			c.updateShutdownState()
		} else {
			c.updateMatch()
		}

		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}
	return nil
}

// processInput reads this frame's input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if c.inactivity {
		idle := time.Since(c.lastInput).Seconds()
		if idle > config.InactivityDisconnectUser {
			c.logger.Info("Disconnecting inactive client", "user", c.username)
			c.state.Running = false
		} else if idle > config.InactivityWarnUser {
			c.state.isInactive = true
		}
	}

	if c.state.Input.Quit || c.state.Input.Closed {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	if c.handle == nil {
		return
	}
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			if event.Type == server.EventServerShutdown {
				c.state.shutdown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen follows terminal resizes. The court is resized with the
// terminal, so on a change the match is told its new surface and the
// terminal is cleared to drop the old border.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	layout := surface.FromTerminal(termWidth, termHeight)
	if layout == c.layout {
		return
	}
	c.layout = layout

	c.chunkWriter.WriteString("\033[H\033[2J")
	c.canvas.Resize(layout.Cols, layout.Rows)
	c.canvas.SetLogicalSize(layout.Size.Width, layout.Size.Height)
	c.canvas.SetOffset(layout.OffsetCol, layout.OffsetRow)
	c.canvas.ForceRedraw()
	c.chunkWriter.SetOffset(layout.OffsetCol, layout.OffsetRow)
	c.match.Resize(layout.Size)
}

// updateMatch applies this frame's input to the match and ticks it once.
func (c *Client) updateMatch() {
	in := c.state.Input
	c.state.applySelection(in.Select)
	if in.ToggleSound {
		c.match.ToggleSound()
	}

	if in.Confirm {
		phase := c.match.Phase()
		if c.match.Confirm(c.state.Opponent) {
			input.ResetKeyInput(c.inputStream)
			in = input.Input{}
			c.stats.MatchStarted(c.state.Opponent)
			c.logger.Debug("Match started", "user", c.username, "opponent", c.state.Opponent, "from", phase)
		}
	}

	c.match.SetControls(match.Controls{Up: in.Up, Down: in.Down, W: in.W, S: in.S})

	before := c.match.Snapshot()
	c.match.Tick(c.renderer)
	after := c.match.Snapshot()
	recordStats(c.stats, before, after)

	if before.Phase == match.PhasePlaying && after.Phase == match.PhaseGameOver {
		c.logger.Debug("Match finished", "user", c.username, "winner", after.Winner,
			"score", fmt.Sprintf("%d-%d", after.Player1Score, after.Player2Score))
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.canvas.Clear()
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
