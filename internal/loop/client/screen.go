package client

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/match"
)

// UI text.
const (
	soundOnLabel  = "Ääni: Päällä"
	soundOffLabel = "Ääni: Pois"
	startPrompt   = ">>  Paina Enter tai klikkaa aloittaaksesi  <<"
)

// drawFrame writes the current frame.
func (c *Client) drawFrame() error {
	// On screen transitions, do a full terminal clear so UI text from the
	// previous screen doesn't persist.
	phase := c.match.Phase()
	if phase != c.state.prevPhase || c.state.isInactive != c.state.wasInactive ||
		c.state.shutdown != c.state.wasShutdown {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevPhase = phase
		c.state.wasInactive = c.state.isInactive
		c.state.wasShutdown = c.state.shutdown
	}

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)
	c.drawUI()

	if c.bell != nil && c.bell.take() {
		c.chunkWriter.WriteString("\a")
	}

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.shutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.match.Phase() {
	case match.PhaseMenu:
		c.drawStartScreen(centerX, centerY)
	case match.PhaseGameOver:
		// The winner line sits on centerY; keep the prompt below it.
		c.drawStartMessage(centerX, centerY+2)
	}
	c.drawStatusLine(termWidth, termHeight)
}

// writeText writes s at a 1-based canvas position and marks the cells so
// the canvas repaints them once the text is gone.
func (c *Client) writeText(col, row int, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	col = max(col, 1)
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(s))
}

// writeCentered writes s centred on column centerX.
func (c *Client) writeCentered(centerX, row int, s string) {
	c.writeText(centerX-utf8.RuneCountInString(s)/2, row, s)
}

// drawStartScreen draws the title and start message.
func (c *Client) drawStartScreen(centerX, centerY int) {
	c.chunkWriter.WriteString(draw.ColorBold)
	c.writeCentered(centerX, centerY-3, "P O N G")
	c.chunkWriter.WriteString(draw.ColorReset)

	controls := "Pelaaja 1: W / S    Pelaaja 2: ↑ / ↓"
	c.writeCentered(centerX, centerY-1, controls)

	c.drawStartMessage(centerX, centerY+1)
}

// drawStartMessage draws the opponent selector and the blinking start prompt.
func (c *Client) drawStartMessage(centerX, row int) {
	selector := fmt.Sprintf("Vastustaja: < %s >   (Tab / 1 / 2)", opponentName(c.state.Opponent))
	c.writeCentered(centerX, row, selector)

	// Blinking prompt; pad with spaces when hidden so the line is overwritten
	prompt := startPrompt
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = fmt.Sprintf("%*s", utf8.RuneCountInString(startPrompt), "")
	}
	c.writeCentered(centerX, row+2, prompt)
}

// drawStatusLine draws the sound toggle and key hints on the bottom row.
// Fixed-width fields keep a shorter label from leaving residue behind.
func (c *Client) drawStatusLine(termWidth, termHeight int) {
	label := soundOffLabel
	if c.match.SoundEnabled() {
		label = soundOnLabel
	}
	c.writeText(2, termHeight, fmt.Sprintf("[M] %-12s", label))

	hint := "[Q] Lopeta"
	c.writeText(termWidth-utf8.RuneCountInString(hint), termHeight, hint)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, "EI TOIMINTAA")

	msg := fmt.Sprintf(
		"Yhteys katkaistaan %d sekunnin kuluttua.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.writeCentered(centerX, centerY, msg)

	c.writeCentered(centerX, centerY+2, "Paina mitä tahansa näppäintä jatkaaksesi")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, "PALVELIN SAMMUU")
	c.writeCentered(centerX, centerY-1, "Palvelin käynnistetään uudelleen huoltoa varten.")
	c.writeCentered(centerX, centerY, "Yhdistä uudelleen hetken kuluttua.")

	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Yhteys katkeaa %d sekunnin kuluttua...", remaining))

	c.writeCentered(centerX, centerY+4, "Paina Q katkaistaksesi nyt")
}

func opponentName(m match.OpponentMode) string {
	if m == match.OpponentHuman {
		return "Ihminen"
	}
	return match.LabelComputer
}
