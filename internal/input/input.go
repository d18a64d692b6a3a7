// Package input turns raw terminal bytes into per-frame key state.
package input

import (
	"bufio"
	"time"

	"github.com/tomz197/spaceshooter/internal/physics"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals report repeats, not releases, so holding relies on key repeat.
const keyHoldDuration = 100 * time.Millisecond

// escapeTimeout is how long a lone ESC waits for the rest of an arrow
// sequence before it counts as the Escape key.
const escapeTimeout = 50 * time.Millisecond

// Key is a logical game key.
type Key int

const (
	KeyNone Key = iota
	KeyQuit
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyAimUp
	KeyAimDown
	KeyAimLeft
	KeyAimRight
	KeyFire
	KeyEnter
	KeyEscape
	Key1
	Key2
	Key3
	keyCount
)

// Input represents the current frame's input state.
type Input struct {
	Move    physics.Vec2 // Unit movement direction from WASD, zero if idle
	Aim     physics.Vec2 // Unit aim direction from arrows or IJKL, zero if idle
	Quit    bool         // Ctrl-C or closed input
	Pressed []Key        // Keys pressed this frame, in arrival order
	held    [keyCount]bool
}

// Held reports whether k was pressed within the hold window.
func (in Input) Held(k Key) bool {
	return k > KeyNone && k < keyCount && in.held[k]
}

// JustPressed reports whether k arrived this frame.
func (in Input) JustPressed(k Key) bool {
	for _, p := range in.Pressed {
		if p == k {
			return true
		}
	}
	return false
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	last    [keyCount]time.Time
	closed  bool
	pending []byte    // Unfinished escape sequence carried to the next drain
	escAt   time.Time // When the pending sequence started
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
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

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
func ReadInput(s *Stream) Input {
	return readAt(s, time.Now())
}

// Reset forgets held keys, e.g. when switching screens.
func Reset(s *Stream) {
	clear(s.last[:])
	s.pending = s.pending[:0]
	s.escAt = time.Time{}
}

func readAt(s *Stream, now time.Time) Input {
	buf := append([]byte(nil), s.pending...)
	s.pending = s.pending[:0]
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				s.ch = nil // A nil channel never becomes ready again
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := Input{Quit: s.closed}
	press := func(k Key) {
		in.Pressed = append(in.Pressed, k)
		s.last[k] = now
	}
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			n := escapeLen(buf[i:])
			if n == 0 {
				// Sequence split across drains: wait for the rest unless it
				// has waited too long or no more input can come
				if s.escAt.IsZero() {
					s.escAt = now
				}
				if !s.closed && now.Sub(s.escAt) < escapeTimeout {
					s.pending = append(s.pending, buf[i:]...)
					break
				}
				s.escAt = time.Time{}
				press(KeyEscape)
				continue
			}
			s.escAt = time.Time{}
			if n == 1 {
				press(KeyEscape)
				continue
			}
			// CSI (ESC [) and SS3 (ESC O) arrow sequences
			if k := arrowKey(buf[i+2]); k != KeyNone {
				press(k)
			}
			i += n - 1
			continue
		}
		if b == '\x03' {
			in.Quit = true
			continue
		}
		if k := byteKey(b); k != KeyNone {
			press(k)
		}
	}

	// Keys are held if seen within the hold duration
	for k := KeyNone + 1; k < keyCount; k++ {
		in.held[k] = !s.last[k].IsZero() && now.Sub(s.last[k]) < keyHoldDuration
	}
	in.Move = axis(in, KeyLeft, KeyRight, KeyUp, KeyDown)
	in.Aim = axis(in, KeyAimLeft, KeyAimRight, KeyAimUp, KeyAimDown)
	return in
}

// axis folds four held keys into a unit direction.
func axis(in Input, left, right, up, down Key) physics.Vec2 {
	var v physics.Vec2
	if in.held[left] {
		v.X--
	}
	if in.held[right] {
		v.X++
	}
	if in.held[up] {
		v.Y--
	}
	if in.held[down] {
		v.Y++
	}
	return v.Normalize()
}

// escapeLen returns how many bytes of buf, which starts with ESC, belong to
// one key: 1 for a bare ESC, 3 for an ESC [ x or ESC O x sequence, and 0 when
// the sequence is not complete yet.
func escapeLen(buf []byte) int {
	if len(buf) < 2 {
		return 0
	}
	if buf[1] != '[' && buf[1] != 'O' {
		return 1
	}
	if len(buf) < 3 {
		return 0
	}
	return 3
}

func arrowKey(b byte) Key {
	switch b {
	case 'A':
		return KeyAimUp
	case 'B':
		return KeyAimDown
	case 'C':
		return KeyAimRight
	case 'D':
		return KeyAimLeft
	}
	return KeyNone
}

// byteKey maps a single byte to its logical key.
func byteKey(b byte) Key {
	switch b {
	case 'q', 'Q':
		return KeyQuit
	case 'w', 'W':
		return KeyUp
	case 's', 'S':
		return KeyDown
	case 'a', 'A':
		return KeyLeft
	case 'd', 'D':
		return KeyRight
	case 'i', 'I':
		return KeyAimUp
	case 'k', 'K':
		return KeyAimDown
	case 'j', 'J':
		return KeyAimLeft
	case 'l', 'L':
		return KeyAimRight
	case ' ':
		return KeyFire
	case '\n', '\r':
		return KeyEnter
	case '\x1b':
		return KeyEscape
	case '1':
		return Key1
	case '2':
		return Key2
	case '3':
		return Key3
	}
	return KeyNone
}
