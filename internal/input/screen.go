package input

import "github.com/gdamore/tcell/v2"

// StartScreenStream spawns a goroutine that polls key events from a tcell
// screen and feeds them to the stream as the bytes a raw terminal would send.
// The stream closes when the screen is finalized.
func StartScreenStream(screen tcell.Screen) *Stream {
	s := newStream()
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(s.ch)
				return
			}
			if key, ok := ev.(*tcell.EventKey); ok {
				for _, b := range encodeKey(key) {
					s.ch <- b
				}
			}
		}
	}()
	return s
}

// encodeKey translates a tcell key event to terminal bytes.
func encodeKey(ev *tcell.EventKey) []byte {
	switch ev.Key() {
	case tcell.KeyUp:
		return []byte("\x1b[A")
	case tcell.KeyDown:
		return []byte("\x1b[B")
	case tcell.KeyRight:
		return []byte("\x1b[C")
	case tcell.KeyLeft:
		return []byte("\x1b[D")
	case tcell.KeyEnter:
		return []byte{'\r'}
	case tcell.KeyEscape:
		return []byte{'\x1b'}
	case tcell.KeyCtrlC:
		return []byte{'\x03'}
	case tcell.KeyRune:
		if r := ev.Rune(); r < 0x80 {
			return []byte{byte(r)}
		}
	}
	return nil
}
