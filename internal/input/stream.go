package input

import (
	"bufio"
	"time"
)

// KeyHoldDuration is how long a key is considered held after its last press.
// Terminals report no key releases, only auto-repeated presses, so a key that
// has not repeated within this window is treated as released.
const KeyHoldDuration = 80 * time.Millisecond

// Poll is the input gathered since the previous poll.
type Poll struct {
	Events  []Event // Presses and synthesized releases, in order
	Quit    bool    // q, Q or Ctrl-C
	Restart bool    // r, R or Enter
	Any     bool    // Any byte was read (used for inactivity tracking)
	Closed  bool    // The underlying reader reached EOF or failed
}

// Stream delivers input bytes via a channel and tracks when each logical key was last seen.
type Stream struct {
	ch       chan byte
	closed   bool
	lastSeen [3]time.Time // Indexed by Key
	down     [3]bool
	pending  []byte // Unfinished escape sequence carried to the next poll
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Poll drains all available bytes from the stream without blocking and
// returns the resulting key events and commands.
func (s *Stream) Poll(now time.Time) Poll {
	var buf []byte
	if !s.closed {
	drain:
		for {
			select {
			case b, ok := <-s.ch:
				if !ok {
					s.closed = true
					break drain
				}
				buf = append(buf, b)
			default:
				break drain
			}
		}
	}

	return s.parse(buf, now)
}

// parse decodes raw bytes, handling arrow-key escape sequences.
func (s *Stream) parse(buf []byte, now time.Time) Poll {
	p := Poll{Any: len(buf) > 0, Closed: s.closed}

	// The reader delivers bytes one at a time, so a sequence may straddle polls.
	if len(s.pending) > 0 {
		buf = append(append([]byte(nil), s.pending...), buf...)
		s.pending = s.pending[:0]
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && (i+1 == len(buf) || (i+2 == len(buf) && buf[i+1] == '[')) {
			s.pending = append(s.pending, buf[i:]...)
			break
		}

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				s.see(KeyRight, now, &p)
			case 'D':
				s.see(KeyLeft, now, &p)
			}
			// Other CSI keys (up/down arrows) are ignored whole.
			i += 2
			continue
		}

		switch b {
		case 'a', 'A', 'h', 'H':
			s.see(KeyLeft, now, &p)
		case 'd', 'D', 'l', 'L':
			s.see(KeyRight, now, &p)
		case ' ', 'k', 'K', 'w', 'W':
			s.see(KeyFire, now, &p)
		case 'q', 'Q', '\x03':
			p.Quit = true
		case 'r', 'R', '\n', '\r':
			p.Restart = true
		}
	}

	// Release keys that stopped repeating
	for k := range s.down {
		if s.down[k] && now.Sub(s.lastSeen[k]) >= KeyHoldDuration {
			s.down[k] = false
			p.Events = append(p.Events, Event{Key: Key(k), Pressed: false})
		}
	}

	return p
}

// see records a sighting of k, emitting a press event on the first one.
func (s *Stream) see(k Key, now time.Time, p *Poll) {
	s.lastSeen[k] = now
	if !s.down[k] {
		s.down[k] = true
		p.Events = append(p.Events, Event{Key: k, Pressed: true})
	}
}

// Reset releases every key without emitting events.
func (s *Stream) Reset() {
	s.down = [3]bool{}
	s.lastSeen = [3]time.Time{}
}
