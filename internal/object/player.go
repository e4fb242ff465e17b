package object

import (
	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/loop/config"
	"github.com/tomz197/skyshooter/internal/physics"
)

// Player is the ship at the bottom of the playfield.
type Player struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
	Speed         float64 // Horizontal units per frame
	Color         draw.Color

	fireCooldown int // Frames until the next shot is allowed
}

// NewPlayer creates a player centered horizontally near the bottom edge.
func NewPlayer(field Screen) *Player {
	return &Player{
		X:      field.Width/2 - config.PlayerWidth/2,
		Y:      field.Height - config.PlayerHeight - config.PlayerBottomMargin,
		Width:  config.PlayerWidth,
		Height: config.PlayerHeight,
		Speed:  config.PlayerSpeed,
		Color:  draw.ColorCyan,
	}
}

// Update moves the ship from the held keys and fires when allowed.
// The ship never leaves [0, field width - ship width].
func (p *Player) Update(ctx UpdateContext) {
	if ctx.Input.Left {
		p.X -= p.Speed
	}
	if ctx.Input.Right {
		p.X += p.Speed
	}
	p.X = physics.Clamp(p.X, 0, ctx.Screen.Width-p.Width)

	if ctx.Input.Fire && p.fireCooldown <= 0 && ctx.Spawner != nil {
		// Fire from the horizontal center of the ship's top edge
		bx := p.X + p.Width/2 - config.BulletWidth/2
		ctx.Spawner.Spawn(NewBullet(bx, p.Y))
		p.fireCooldown = config.BulletCooldownFrames
	}

	if p.fireCooldown > 0 {
		p.fireCooldown--
	}
}

// Cooldown returns the number of frames until the next shot is allowed.
func (p *Player) Cooldown() int {
	return p.fireCooldown
}

// Bounds returns the ship's collision rectangle.
func (p *Player) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Draw renders the ship.
func (p *Player) Draw(s draw.Surface) {
	fill(s, p.Bounds(), p.Color)
}
