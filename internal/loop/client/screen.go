package client

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/skyshooter/internal/loop"
)

// overlay is a session-level screen shown over the game.
type overlay int

const (
	overlayNone overlay = iota
	overlayInactive
	overlayShutdown
)

func (c *Client) currentOverlay() overlay {
	switch {
	case c.shuttingDown:
		return overlayShutdown
	case c.isInactive:
		return overlayInactive
	default:
		return overlayNone
	}
}

// drawFrame advances the game one frame and writes the result.
func (c *Client) drawFrame(now time.Time) error {
	// On overlay transitions, do a full terminal clear so text from the
	// previous screen doesn't persist. A stopped game is drawn again since
	// Frame will not render it.
	ov := c.currentOverlay()
	if ov != c.prevOverlay {
		c.terminal.Invalidate()
		if c.game.Phase() != loop.GameStateRunning || ov == overlayShutdown {
			c.game.Render(c.terminal)
		}
		c.prevOverlay = ov
	}

	if ov != overlayShutdown {
		c.game.Frame(c.terminal)
	}

	switch ov {
	case overlayInactive:
		c.drawInactivityScreen()
	case overlayShutdown:
		c.drawShutdownScreen(now)
	}

	return c.terminal.Flush()
}

// drawInactivityScreen warns that the session is about to be closed.
func (c *Client) drawInactivityScreen() {
	c.terminal.Message(
		"ARE YOU STILL THERE?",
		"",
		"Press any key to continue playing",
	)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(now time.Time) {
	remaining := int(math.Ceil(c.shutdownUntil.Sub(now).Seconds()))
	if remaining < 1 {
		remaining = 1
	}
	c.terminal.Message(
		"SERVER SHUTTING DOWN",
		"",
		"The server is restarting for maintenance.",
		"Please reconnect in a moment.",
		"",
		fmt.Sprintf("Disconnecting in %d seconds...", remaining),
		"",
		"Press Q to disconnect now",
	)
}
