package object

import (
	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/loop/config"
	"github.com/tomz197/skyshooter/internal/physics"
)

// Bullet is a projectile fired upward by the player.
type Bullet struct {
	X, Y          float64
	Width, Height float64
	Speed         float64 // Upward units per frame
	Color         draw.Color
	destroyed     bool
}

// NewBullet creates a bullet with its top-left corner at (x, y).
func NewBullet(x, y float64) *Bullet {
	return &Bullet{
		X:      x,
		Y:      y,
		Width:  config.BulletWidth,
		Height: config.BulletHeight,
		Speed:  config.BulletSpeed,
		Color:  draw.ColorYellow,
	}
}

// Update moves the bullet up. Returns true once its bottom edge is above the playfield.
func (b *Bullet) Update(_ UpdateContext) bool {
	b.Y -= b.Speed
	return b.Y+b.Height < 0
}

// MarkDestroyed marks the bullet for removal.
func (b *Bullet) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the bullet is marked for destruction.
func (b *Bullet) IsDestroyed() bool {
	return b.destroyed
}

// Bounds returns the bullet's collision rectangle.
func (b *Bullet) Bounds() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// Draw renders the bullet.
func (b *Bullet) Draw(s draw.Surface) {
	fill(s, b.Bounds(), b.Color)
}
