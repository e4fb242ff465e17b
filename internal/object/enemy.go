package object

import (
	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/loop/config"
	"github.com/tomz197/skyshooter/internal/physics"
)

// Enemy descends from the top of the playfield at its own speed.
type Enemy struct {
	X, Y          float64
	Width, Height float64
	Speed         float64 // Downward units per frame
	Color         draw.Color
	destroyed     bool
}

// NewEnemy creates an enemy just above the top edge at a random column,
// with a random extra speed in [0, EnemySpeedJitter).
func NewEnemy(field Screen, rng Rand) *Enemy {
	return &Enemy{
		X:      rng.Float64() * (field.Width - config.EnemyWidth),
		Y:      -config.EnemyHeight,
		Width:  config.EnemyWidth,
		Height: config.EnemyHeight,
		Speed:  config.EnemySpeed + rng.Float64()*config.EnemySpeedJitter,
		Color:  draw.ColorRed,
	}
}

// Update moves the enemy down. Returns true once its top edge is below the playfield.
// Escaping enemies cost nothing.
func (e *Enemy) Update(ctx UpdateContext) bool {
	e.Y += e.Speed
	return e.Y > ctx.Screen.Height
}

// MarkDestroyed marks the enemy for removal.
func (e *Enemy) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the enemy is marked for destruction.
func (e *Enemy) IsDestroyed() bool {
	return e.destroyed
}

// Bounds returns the enemy's collision rectangle.
func (e *Enemy) Bounds() physics.Rect {
	return physics.Rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
}

// Draw renders the enemy.
func (e *Enemy) Draw(s draw.Surface) {
	fill(s, e.Bounds(), e.Color)
}
