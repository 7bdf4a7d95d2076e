// Package input turns raw terminal bytes into logical game keys.
package input

import (
	"bufio"
	"sync"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last byte.
// Terminals send no key-up events, so auto-repeat keeps a held key alive.
const keyHoldDuration = 120 * time.Millisecond

// Stream delivers input bytes via a channel and tracks when each key was last seen.
type Stream struct {
	ch      chan byte
	done    chan struct{}
	once    sync.Once
	closed  bool
	pending []byte // incomplete escape sequence carried to the next Poll
	seen    map[Key]time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// Call Close once the stream is no longer polled.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:   make(chan byte, 128),
		done: make(chan struct{}),
		seen: make(map[Key]time.Time),
	}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Close stops delivery. The reader goroutine exits after its current read returns.
func (s *Stream) Close() {
	s.once.Do(func() {
		if s.done != nil {
			close(s.done)
		}
	})
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Poll drains all available bytes (non-blocking), presses every key seen and
// releases keys not seen within keyHoldDuration. It returns true if any byte arrived.
func (s *Stream) Poll(now time.Time, st *State) bool {
	buf := s.pending
	s.pending = nil
	fresh := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
			fresh = true
		default:
			break drain
		}
	}

	if !s.closed {
		buf, s.pending = splitPartialCSI(buf)
	}
	for _, k := range Decode(buf) {
		s.seen[k] = now
		st.Press(k)
	}

	for k, t := range s.seen {
		if now.Sub(t) >= keyHoldDuration {
			delete(s.seen, k)
			st.Release(k)
		}
	}
	return fresh
}

// splitPartialCSI cuts a trailing ESC or ESC [ off buf so the rest of the
// sequence can be decoded with the next bytes.
func splitPartialCSI(buf []byte) (complete, partial []byte) {
	n := len(buf)
	switch {
	case n >= 2 && buf[n-2] == '\x1b' && buf[n-1] == '[':
		return buf[:n-2], append([]byte(nil), buf[n-2:]...)
	case n >= 1 && buf[n-1] == '\x1b':
		return buf[:n-1], []byte{'\x1b'}
	}
	return buf, nil
}

// Decode maps a byte buffer to logical keys, handling CSI arrow sequences.
func Decode(buf []byte) []Key {
	var keys []Key
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'A':
				keys = append(keys, KeyLaneUp)
				i += 2
				continue
			case 'B':
				keys = append(keys, KeyLaneDown)
				i += 2
				continue
			case 'C':
				keys = append(keys, KeyRight)
				i += 2
				continue
			case 'D':
				keys = append(keys, KeyLeft)
				i += 2
				continue
			}
		}

		if k := keyForByte(b); k != KeyNone {
			keys = append(keys, k)
		}
	}
	return keys
}

func keyForByte(b byte) Key {
	switch b {
	case 'q', 'Q', '\x03':
		return KeyQuit
	case 'a', 'A':
		return KeyLeft
	case 'd', 'D':
		return KeyRight
	case 'w', 'W':
		return KeyLaneUp
	case 's', 'S':
		return KeyLaneDown
	case 't', 'T', 'x', 'X':
		return KeyTurbo
	case 'l', 'L', 'e', 'E':
		return KeyLift
	case ' ':
		return KeyJump
	case 'p', 'P':
		return KeyPause
	case 'r', 'R':
		return KeyRestart
	case '\n', '\r':
		return KeyStart
	}
	return KeyNone
}
