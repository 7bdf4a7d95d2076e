// Package audio defines the sound cues emitted by the simulation and the
// sinks that receive them. Device playback lives in package speaker.
package audio

import "sync"

// Cue is a discrete sound event emitted by the simulation.
type Cue uint8

const (
	CueLift Cue = iota
	CueJump
	CueCrash
	CuePickup
	CueStage
	CueTurboOn
	CueTurboOff
	CueShieldBreak
	CueGhost
)

var cueNames = [...]string{
	CueLift:        "lift",
	CueJump:        "jump",
	CueCrash:       "crash",
	CuePickup:      "pickup",
	CueStage:       "stage",
	CueTurboOn:     "turbo-on",
	CueTurboOff:    "turbo-off",
	CueShieldBreak: "shield-break",
	CueGhost:       "ghost",
}

func (c Cue) String() string {
	if int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "unknown"
}

// Sink receives cues. Play must not block the game loop.
type Sink interface {
	Play(c Cue)
}

// Nop discards every cue.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Cue) {}

// Recorder keeps every cue it receives, in order.
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
}

// Play appends c.
func (r *Recorder) Play(c Cue) {
	r.mu.Lock()
	r.cues = append(r.cues, c)
	r.mu.Unlock()
}

// Cues returns a copy of the recorded cues.
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.cues...)
}

// Count returns how many times c was played.
func (r *Recorder) Count(c Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}
