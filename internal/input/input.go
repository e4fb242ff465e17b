// Package input maps raw key presses to the game's logical keys and commands.
package input

// Key is a logical key identity, independent of the physical key that produced it.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyFire
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyFire:
		return "fire"
	default:
		return "unknown"
	}
}

// Keys holds the held/released state of every logical key.
// Fire is level-triggered: holding it fires repeatedly, subject to cooldown.
type Keys struct {
	Left  bool
	Right bool
	Fire  bool
}

// Set records a press (down=true) or release of k.
func (s *Keys) Set(k Key, down bool) {
	switch k {
	case KeyLeft:
		s.Left = down
	case KeyRight:
		s.Right = down
	case KeyFire:
		s.Fire = down
	}
}

// Event is a single key press or release.
type Event struct {
	Key     Key
	Pressed bool
}
