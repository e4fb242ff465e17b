package loop

import (
	"github.com/tomz197/skyshooter/internal/object"
)

// GameState represents the current phase of a game.
type GameState int

const (
	GameStateInitializing GameState = iota // Resetting; transient during Start/Restart
	GameStateRunning                       // Frames are being scheduled
	GameStateGameOver                      // Player was hit; frames halted until restart
)

// String returns the phase name.
func (s GameState) String() string {
	switch s {
	case GameStateInitializing:
		return "initializing"
	case GameStateRunning:
		return "running"
	case GameStateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// State holds all mutable game state. It is owned by a single Game and only
// touched from that game's frame and spawn callbacks.
type State struct {
	GameState GameState
	Player    *object.Player
	Bullets   []*object.Bullet // Ordered by fire time
	Enemies   []*object.Enemy  // Ordered by spawn time
	Score     int
	Input     object.Input
	Screen    object.Screen // Playfield dimensions

	toSpawn []object.Object // Objects to add after the current update cycle
}

// NewState creates a state for the given playfield, in the Initializing phase.
func NewState(screen object.Screen) *State {
	return &State{
		GameState: GameStateInitializing,
		Screen:    screen,
	}
}

// reset clears score, entities and input, and recreates the player.
func (s *State) reset() {
	s.Score = 0
	clear(s.Bullets)
	s.Bullets = s.Bullets[:0]
	clear(s.Enemies)
	s.Enemies = s.Enemies[:0]
	s.toSpawn = s.toSpawn[:0]
	s.Input = object.Input{}
	s.Player = object.NewPlayer(s.Screen)
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner interface.
func (s *State) Spawn(obj object.Object) {
	s.toSpawn = append(s.toSpawn, obj)
}

// FlushSpawned adds all queued objects to their lists and clears the queue.
func (s *State) FlushSpawned() {
	for _, obj := range s.toSpawn {
		switch o := obj.(type) {
		case *object.Bullet:
			s.Bullets = append(s.Bullets, o)
		case *object.Enemy:
			s.Enemies = append(s.Enemies, o)
		}
	}
	clear(s.toSpawn)
	s.toSpawn = s.toSpawn[:0]
}

// UpdateContext creates an UpdateContext from the current state.
func (s *State) UpdateContext() object.UpdateContext {
	return object.UpdateContext{
		Input:   s.Input,
		Screen:  s.Screen,
		Spawner: s,
	}
}
