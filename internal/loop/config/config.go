// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield - the fixed logical drawing surface.
// Actual rendering scales to fit the terminal or window.
const (
	PlayfieldWidth  = 480.0
	PlayfieldHeight = 640.0
)

// Player
const (
	PlayerWidth        = 40.0
	PlayerHeight       = 40.0
	PlayerSpeed        = 5.0  // Units per frame
	PlayerBottomMargin = 20.0 // Gap between the ship and the bottom edge
)

// Bullets
const (
	BulletWidth          = 5.0
	BulletHeight         = 15.0
	BulletSpeed          = 7.0 // Units per frame, upward
	BulletCooldownFrames = 10  // Minimum frames between shots
)

// Enemies
const (
	EnemyWidth       = 35.0
	EnemyHeight      = 35.0
	EnemySpeed       = 2.0 // Base units per frame, downward
	EnemySpeedJitter = 1.0 // Random extra speed in [0, EnemySpeedJitter)
	EnemySpawnRate   = 1000 * time.Millisecond
)

// Scoring
const (
	ScorePerEnemy = 10
)

// Frame rate of the display-refresh callback.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnSeconds       = 90  // Seconds
	InactivityDisconnectSeconds = 120 // Seconds
)
