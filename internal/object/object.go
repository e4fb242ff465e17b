// Package object defines the playfield entities: the player ship, its bullets, and enemies.
package object

import (
	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/input"
	"github.com/tomz197/skyshooter/internal/loop/config"
	"github.com/tomz197/skyshooter/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Input is an alias for the input package's key state.
type Input = input.Keys

// Rand is the source of randomness for enemy placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Screen holds the playfield dimensions in logical units.
type Screen struct {
	Width  float64
	Height float64
}

// Playfield returns the default playfield dimensions.
func Playfield() Screen {
	return Screen{Width: config.PlayfieldWidth, Height: config.PlayfieldHeight}
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Input   Input
	Screen  Screen
	Spawner Spawner
}

// Object is a drawable entity with an axis-aligned bounding box.
type Object interface {
	// Bounds returns the collision rectangle.
	Bounds() physics.Rect

	// Draw draws the object as a flat-colored rectangle.
	Draw(s draw.Surface)
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal at the end of the current pass.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// fill draws an object's bounds with its color.
func fill(s draw.Surface, r physics.Rect, c draw.Color) {
	s.FillRect(r.X, r.Y, r.W, r.H, c)
}
