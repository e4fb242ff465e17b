// Package desktop runs the game in a native window using ebiten.
package desktop

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/input"
	"github.com/tomz197/skyshooter/internal/loop"
	"github.com/tomz197/skyshooter/internal/object"
)

// Keyboard reports key state for the current tick.
type Keyboard interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
}

type ebitenKeyboard struct{}

func (ebitenKeyboard) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeyboard) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

var bindings = []struct {
	key  input.Key
	keys []ebiten.Key
}{
	{input.KeyLeft, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{input.KeyRight, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
	{input.KeyFire, []ebiten.Key{ebiten.KeySpace, ebiten.KeyW}},
}

var (
	restartKeys = []ebiten.Key{ebiten.KeyR, ebiten.KeyEnter}
	quitKeys    = []ebiten.Key{ebiten.KeyEscape}
)

// Options configures an App. Zero values select the defaults.
type Options struct {
	Keyboard Keyboard     // Defaults to inpututil
	Surface  draw.Surface // Defaults to an offscreen image blitted by Draw
	Logger   *log.Logger
	Game     loop.Options // Logger is filled in from Logger if unset
}

// App adapts a loop.Game to ebiten.Game. ebiten's Update is the
// display-refresh callback; the spawn timer is drained on the same goroutine.
type App struct {
	game      *loop.Game
	keyboard  Keyboard
	surface   draw.Surface
	offscreen *ebiten.Image // nil when a custom Surface is used
	logger    *log.Logger
}

// Ensure App satisfies ebiten.Game.
var _ ebiten.Game = (*App)(nil)

// NewApp creates and starts a game.
func NewApp(opts Options) *App {
	if opts.Keyboard == nil {
		opts.Keyboard = ebitenKeyboard{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Game.Logger == nil {
		opts.Game.Logger = opts.Logger
	}

	a := &App{
		keyboard: opts.Keyboard,
		surface:  opts.Surface,
		logger:   opts.Logger,
	}
	if a.surface == nil {
		field := object.Playfield()
		a.offscreen = ebiten.NewImage(int(field.Width), int(field.Height))
		a.surface = newImageSurface(a.offscreen)
	}

	a.game = loop.New(opts.Game)
	a.game.Start()
	return a
}

// Game returns the underlying controller.
func (a *App) Game() *loop.Game {
	return a.game
}

// Update handles input, pending enemy spawns and one game frame.
func (a *App) Update() error {
	if a.anyJustPressed(quitKeys) {
		a.game.Stop()
		return ebiten.Termination
	}

	if a.anyJustPressed(restartKeys) {
		a.game.Restart()
	}

	// Logical keys follow the physical keys every tick, so several bindings
	// for one key combine and a key held through a restart stays down.
	for _, b := range bindings {
		a.game.HandleEvent(input.Event{Key: b.key, Pressed: a.anyPressed(b.keys)})
	}

	a.drainSpawns()
	a.game.Frame(a.surface)
	return nil
}

// drainSpawns runs every spawn tick delivered since the previous Update.
func (a *App) drainSpawns() {
	for {
		select {
		case <-a.game.SpawnC():
			a.game.SpawnEnemy()
		default:
			return
		}
	}
}

// Draw copies the last rendered frame to the window. Game over freezes
// rendering, so the offscreen image keeps the final frame and overlay.
func (a *App) Draw(screen *ebiten.Image) {
	if a.offscreen != nil {
		screen.DrawImage(a.offscreen, nil)
	}
}

// Layout fixes the logical screen to the playfield size; ebiten scales the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	field := object.Playfield()
	return int(field.Width), int(field.Height)
}

func (a *App) anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if a.keyboard.JustPressed(k) {
			return true
		}
	}
	return false
}

func (a *App) anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if a.keyboard.Pressed(k) {
			return true
		}
	}
	return false
}
