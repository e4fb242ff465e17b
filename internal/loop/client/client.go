// Package client runs one game session on an ANSI terminal.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/input"
	"github.com/tomz197/skyshooter/internal/loop"
	"github.com/tomz197/skyshooter/internal/loop/config"
	"github.com/tomz197/skyshooter/internal/loop/server"
	"github.com/tomz197/skyshooter/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	hub          server.Hub // May be nil for a standalone session
	handle       *server.ClientHandle
	game         *loop.Game
	terminal     *draw.Terminal
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	opts         Options

	running       bool
	lastInput     time.Time
	isInactive    bool
	shuttingDown  bool
	shutdownUntil time.Time
	prevOverlay   overlay
}

// Options configures the client. Zero values select the defaults.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Hub          server.Hub
	Logger       *log.Logger

	// NewTicker creates both the frame ticker and the game's spawn timer.
	NewTicker         loop.TickerFunc
	Now               func() time.Time
	FrameTime         time.Duration // Defaults to config.TargetFrameTime
	InactivityWarn    time.Duration // Defaults to config.InactivityWarnSeconds
	InactivityTimeout time.Duration // Defaults to config.InactivityDisconnectSeconds
	ShutdownDelay     time.Duration // Defaults to config.ShutdownDisplaySeconds

	// Game configures each session's game. OnGameOver is always replaced by
	// the hub score report; NewTicker and Logger default to the ones above.
	Game loop.Options
}

// New creates a client reading key bytes from r and drawing to w.
func New(r *bufio.Reader, w io.Writer, opts Options) *Client {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.NewTicker == nil {
		opts.NewTicker = loop.NewTimeTicker
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FrameTime <= 0 {
		opts.FrameTime = config.TargetFrameTime
	}
	if opts.InactivityWarn <= 0 {
		opts.InactivityWarn = config.InactivityWarnSeconds * time.Second
	}
	if opts.InactivityTimeout <= 0 {
		opts.InactivityTimeout = config.InactivityDisconnectSeconds * time.Second
	}
	if opts.ShutdownDelay <= 0 {
		opts.ShutdownDelay = time.Duration(config.ShutdownDisplaySeconds * float64(time.Second))
	}

	termWidth, termHeight, err := opts.TermSizeFunc()
	if err != nil {
		termWidth, termHeight = 80, 24
	}
	field := object.Playfield()

	return &Client{
		hub:          opts.Hub,
		terminal:     draw.NewTerminal(w, termWidth, termHeight, field.Width, field.Height),
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: opts.TermSizeFunc,
		logger:       opts.Logger,
		opts:         opts,
	}
}

// Run plays until the user quits, the input closes, the session idles out,
// the server shuts down or ctx is cancelled. Returns an error if the session
// could not be admitted or the terminal write failed.
func (c *Client) Run(ctx context.Context) error {
	if c.hub != nil {
		handle, err := c.hub.Register(c.opts.Username)
		if err != nil {
			return fmt.Errorf("register session: %w", err)
		}
		c.handle = handle
		defer c.hub.Unregister(handle.ID)
	}

	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	defer draw.ClearScreen(c.writer)

	frames := c.opts.NewTicker(c.opts.FrameTime)
	defer frames.Stop()

	gameOpts := c.opts.Game
	if gameOpts.NewTicker == nil {
		gameOpts.NewTicker = c.opts.NewTicker
	}
	if gameOpts.Logger == nil {
		gameOpts.Logger = c.logger
	}
	gameOpts.OnGameOver = c.reportScore
	c.game = loop.New(gameOpts)
	defer c.game.Stop()
	c.game.Start()

	c.running = true
	c.lastInput = c.opts.Now()

	var events <-chan server.ClientEvent
	if c.handle != nil {
		events = c.handle.EventsCh
	}

	for c.running {
		select {
		case <-ctx.Done():
			return nil
		case <-c.game.SpawnC():
			c.game.SpawnEnemy()
		case ev, ok := <-events:
			if !ok {
				// Server closed the channel
				return nil
			}
			c.handleServerEvent(ev)
		case <-frames.C():
			if err := c.tick(); err != nil {
				return err
			}
		}
	}
	return nil
}

// tick runs one display refresh: input, session checks, resize, game frame, output.
func (c *Client) tick() error {
	now := c.opts.Now()

	c.processInput(now)
	c.checkInactivity(now)
	if c.shuttingDown && !now.Before(c.shutdownUntil) {
		c.running = false
	}
	if !c.running {
		return nil
	}

	c.updateScreen()
	return c.drawFrame(now)
}

// processInput feeds key events to the game and handles session commands.
func (c *Client) processInput(now time.Time) {
	poll := c.inputStream.Poll(now)

	if poll.Any {
		c.lastInput = now
	}
	if poll.Quit || poll.Closed {
		c.running = false
		return
	}
	for _, ev := range poll.Events {
		c.game.HandleEvent(ev)
	}
	if poll.Restart && !c.shuttingDown && c.game.Restart() {
		c.inputStream.Reset()
	}
}

// checkInactivity warns, then disconnects, a session that sends no input.
func (c *Client) checkInactivity(now time.Time) {
	idle := now.Sub(c.lastInput)
	switch {
	case idle >= c.opts.InactivityTimeout:
		c.logger.Info("disconnecting inactive session", "user", c.opts.Username, "idle", idle)
		c.running = false
	case idle >= c.opts.InactivityWarn:
		c.isInactive = true
	default:
		c.isInactive = false
	}
}

// handleServerEvent applies one event sent by the server.
func (c *Client) handleServerEvent(ev server.ClientEvent) {
	switch ev.Type {
	case server.EventServerShutdown:
		if c.shuttingDown {
			return
		}
		c.shuttingDown = true
		c.shutdownUntil = c.opts.Now().Add(c.opts.ShutdownDelay)
		// Freeze play under the notice.
		c.game.Stop()
	}
}

// updateScreen handles terminal resize. A stopped game is not re-rendered by
// Frame, so its last state is drawn again into the new layout.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	if c.terminal.Resize(termWidth, termHeight) && c.game.Phase() != loop.GameStateRunning {
		c.game.Render(c.terminal)
	}
}

// reportScore is the game-over hook.
func (c *Client) reportScore(score int) {
	if c.hub != nil && c.handle != nil {
		c.hub.ReportScore(c.handle.ID, score)
	}
}
