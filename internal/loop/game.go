// Package loop provides the game-state controller and the per-frame
// update, collision and render steps.
//
// A Game is driven by two callbacks that must run on the same goroutine:
// Frame, once per display refresh, and SpawnEnemy, whenever the channel
// returned by SpawnC delivers a tick. Frontends multiplex both (plus input)
// in a single select loop, so the game state needs no locking.
package loop

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/input"
	"github.com/tomz197/skyshooter/internal/loop/config"
	"github.com/tomz197/skyshooter/internal/object"
	"github.com/tomz197/skyshooter/internal/physics"
)

// collisionGridCellSize is the cell size of the bullet/enemy broad-phase grid.
const collisionGridCellSize = 64.0

// Options configures a Game. Zero values select the defaults.
type Options struct {
	Screen        object.Screen   // Playfield; defaults to object.Playfield()
	Rand          object.Rand     // Enemy placement; defaults to a time-seeded source
	NewTicker     TickerFunc      // Spawn timer factory; defaults to NewTimeTicker
	SpawnInterval time.Duration   // Defaults to config.EnemySpawnRate
	Logger        *log.Logger     // Defaults to a discarding logger
	OnGameOver    func(score int) // Called once per game, after the transition to GameOver
}

// Game is the game-state controller. See the package documentation for how
// it must be driven.
type Game struct {
	state          *State
	rng            object.Rand
	newTicker      TickerFunc
	spawnInterval  time.Duration
	spawn          Ticker // nil while no spawn timer is running
	frameRequested bool
	grid           *physics.Grid
	logger         *log.Logger
	onGameOver     func(score int)
}

// New creates a game in the Initializing phase. Call Start to begin play.
func New(opts Options) *Game {
	if opts.Screen == (object.Screen{}) {
		opts.Screen = object.Playfield()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.NewTicker == nil {
		opts.NewTicker = NewTimeTicker
	}
	if opts.SpawnInterval <= 0 {
		opts.SpawnInterval = config.EnemySpawnRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Game{
		state:         NewState(opts.Screen),
		rng:           opts.Rand,
		newTicker:     opts.NewTicker,
		spawnInterval: opts.SpawnInterval,
		grid:          physics.NewGrid(opts.Screen.Width, opts.Screen.Height, collisionGridCellSize),
		logger:        opts.Logger,
		onGameOver:    opts.OnGameOver,
	}
}

// Start performs the startup transition Initializing → Running.
// Returns false if the game was already started.
func (g *Game) Start() bool {
	if g.state.GameState != GameStateInitializing {
		return false
	}
	g.initialize()
	return true
}

// Restart performs GameOver → Initializing → Running synchronously.
// Returns false, changing nothing, unless the game is over.
func (g *Game) Restart() bool {
	if g.state.GameState != GameStateGameOver {
		return false
	}
	g.state.GameState = GameStateInitializing
	g.logger.Debug("restart")
	g.initialize()
	return true
}

// initialize resets the state, starts the spawn timer and requests the first frame.
func (g *Game) initialize() {
	g.state.reset()
	g.stopSpawnTimer()
	g.spawn = g.newTicker(g.spawnInterval)
	g.state.GameState = GameStateRunning
	g.frameRequested = true
}

// Stop cancels the spawn timer, if running. Frontends call it when they exit.
func (g *Game) Stop() {
	g.stopSpawnTimer()
}

func (g *Game) stopSpawnTimer() {
	if g.spawn != nil {
		g.spawn.Stop()
		g.spawn = nil
	}
}

// setGameOver performs Running → GameOver: stops the spawn timer and halts frames.
func (g *Game) setGameOver() {
	g.state.GameState = GameStateGameOver
	g.stopSpawnTimer()
	g.frameRequested = false
	g.logger.Debug("game over", "score", g.state.Score)
	if g.onGameOver != nil {
		g.onGameOver(g.state.Score)
	}
}

// KeyDown records a key press.
func (g *Game) KeyDown(k input.Key) {
	g.state.Input.Set(k, true)
}

// KeyUp records a key release.
func (g *Game) KeyUp(k input.Key) {
	g.state.Input.Set(k, false)
}

// HandleEvent applies a key press or release event.
func (g *Game) HandleEvent(ev input.Event) {
	g.state.Input.Set(ev.Key, ev.Pressed)
}

// SpawnC returns the spawn timer channel, or nil while no timer runs.
// Receiving from a nil channel blocks forever, so a select loop can always include it.
func (g *Game) SpawnC() <-chan time.Time {
	if g.spawn == nil {
		return nil
	}
	return g.spawn.C()
}

// SpawnEnemy is the spawn timer callback: adds an enemy at the top edge.
// Does nothing unless the game is running.
func (g *Game) SpawnEnemy() {
	if g.state.GameState != GameStateRunning {
		return
	}
	g.state.Enemies = append(g.state.Enemies, object.NewEnemy(g.state.Screen, g.rng))
}

// FrameRequested reports whether the next Frame call will run.
func (g *Game) FrameRequested() bool {
	return g.frameRequested
}

// Frame is the display-refresh callback. If a frame was requested it runs
// update, then collisions, then renders to s (which may be nil), and requests
// the next frame unless the game ended during it.
func (g *Game) Frame(s draw.Surface) {
	if !g.frameRequested {
		return
	}
	g.frameRequested = false
	if g.state.GameState != GameStateRunning {
		return
	}

	g.update()
	g.checkCollisions()
	if s != nil {
		g.Render(s)
	}

	if g.state.GameState == GameStateRunning {
		g.frameRequested = true
	}
}

// Phase returns the current game phase.
func (g *Game) Phase() GameState {
	return g.state.GameState
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.state.Score
}

// State returns the game state. Callers must not retain it across callbacks.
func (g *Game) State() *State {
	return g.state
}
