package object

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/loop/config"
)

// spawnRecorder collects spawned objects.
type spawnRecorder struct {
	spawned []Object
}

func (r *spawnRecorder) Spawn(obj Object) {
	r.spawned = append(r.spawned, obj)
}

// fixedRand returns the same value on every call.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer(Playfield())
	assert.Equal(t, 220.0, p.X)
	assert.Equal(t, 580.0, p.Y)
	assert.Equal(t, config.PlayerWidth, p.Width)
	assert.Equal(t, config.PlayerHeight, p.Height)
	assert.Equal(t, draw.ColorCyan, p.Color)
	assert.Zero(t, p.Cooldown())
}

func TestPlayerStaysInsidePlayfield(t *testing.T) {
	field := Playfield()
	p := NewPlayer(field)

	ctx := UpdateContext{Screen: field, Input: Input{Left: true}}
	for i := 0; i < 200; i++ {
		p.Update(ctx)
		require.GreaterOrEqual(t, p.X, 0.0)
	}
	assert.Equal(t, 0.0, p.X)

	ctx.Input = Input{Right: true}
	for i := 0; i < 200; i++ {
		p.Update(ctx)
		require.LessOrEqual(t, p.X, field.Width-p.Width)
	}
	assert.Equal(t, field.Width-p.Width, p.X)
}

func TestPlayerMovesBySpeed(t *testing.T) {
	field := Playfield()
	p := NewPlayer(field)
	x := p.X

	p.Update(UpdateContext{Screen: field, Input: Input{Right: true}})
	assert.Equal(t, x+config.PlayerSpeed, p.X)

	// Both held cancel out.
	p.Update(UpdateContext{Screen: field, Input: Input{Left: true, Right: true}})
	assert.Equal(t, x+config.PlayerSpeed, p.X)
}

func TestPlayerFiresFromCenterWithCooldown(t *testing.T) {
	field := Playfield()
	p := NewPlayer(field)
	rec := &spawnRecorder{}
	ctx := UpdateContext{Screen: field, Spawner: rec, Input: Input{Fire: true}}

	p.Update(ctx)
	require.Len(t, rec.spawned, 1)
	b, ok := rec.spawned[0].(*Bullet)
	require.True(t, ok)
	assert.Equal(t, p.X+p.Width/2-config.BulletWidth/2, b.X)
	assert.Equal(t, 237.5, b.X)
	assert.Equal(t, p.Y, b.Y)

	// Holding fire: no new bullet until the cooldown has elapsed.
	for i := 1; i < config.BulletCooldownFrames; i++ {
		p.Update(ctx)
		require.Len(t, rec.spawned, 1, "frame %d fired during cooldown", i)
	}
	p.Update(ctx)
	assert.Len(t, rec.spawned, 2, "fires again once cooldown elapsed")
}

func TestPlayerCooldownRunsDownWithoutFire(t *testing.T) {
	field := Playfield()
	p := NewPlayer(field)
	rec := &spawnRecorder{}

	p.Update(UpdateContext{Screen: field, Spawner: rec, Input: Input{Fire: true}})
	for i := 0; i < config.BulletCooldownFrames; i++ {
		p.Update(UpdateContext{Screen: field, Spawner: rec})
	}
	assert.Zero(t, p.Cooldown())
	p.Update(UpdateContext{Screen: field, Spawner: rec, Input: Input{Fire: true}})
	assert.Len(t, rec.spawned, 2)
}

func TestBulletLeavesThroughTop(t *testing.T) {
	b := NewBullet(100, 10)
	assert.False(t, b.Update(UpdateContext{}))
	assert.Equal(t, 3.0, b.Y)

	// Bottom edge at -4+15 = 11 is still on the field.
	assert.False(t, b.Update(UpdateContext{}))
	// -11 + 15 = 4: still visible.
	assert.False(t, b.Update(UpdateContext{}))
	// -18 + 15 = -3: fully above.
	assert.True(t, b.Update(UpdateContext{}))
}

func TestNewEnemyRandomFields(t *testing.T) {
	field := Playfield()

	e := NewEnemy(field, fixedRand(0.5))
	assert.Equal(t, (field.Width-config.EnemyWidth)*0.5, e.X)
	assert.Equal(t, -config.EnemyHeight, e.Y)
	assert.Equal(t, config.EnemySpeed+0.5, e.Speed)
	assert.Equal(t, draw.ColorRed, e.Color)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		e := NewEnemy(field, rng)
		require.GreaterOrEqual(t, e.X, 0.0)
		require.LessOrEqual(t, e.X, field.Width-config.EnemyWidth)
		require.GreaterOrEqual(t, e.Speed, config.EnemySpeed)
		require.Less(t, e.Speed, config.EnemySpeed+config.EnemySpeedJitter)
	}
}

func TestEnemyLeavesThroughBottom(t *testing.T) {
	field := Screen{Width: 100, Height: 100}
	e := NewEnemy(field, fixedRand(0))
	e.Y = 98
	e.Speed = 2

	assert.False(t, e.Update(UpdateContext{Screen: field}), "top edge exactly on the bottom edge stays")
	assert.True(t, e.Update(UpdateContext{Screen: field}))
}

func TestDestructible(t *testing.T) {
	var _ Destructible = (*Bullet)(nil)
	var _ Destructible = (*Enemy)(nil)

	e := NewEnemy(Playfield(), fixedRand(0))
	assert.False(t, e.IsDestroyed())
	e.MarkDestroyed()
	assert.True(t, e.IsDestroyed())
}
