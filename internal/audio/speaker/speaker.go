// Package speaker plays audio cues on the local output device through beep.
package speaker

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	beepspeaker "github.com/gopxl/beep/speaker"

	"github.com/tomz197/liftrunner/internal/audio"
)

const sampleRate = beep.SampleRate(44100)

// note is one segment of a cue: a frequency held for a duration.
// A zero frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

var cueNotes = map[audio.Cue][]note{
	audio.CueLift:        {{440, 60 * time.Millisecond}, {660, 90 * time.Millisecond}},
	audio.CueJump:        {{520, 40 * time.Millisecond}, {780, 50 * time.Millisecond}},
	audio.CueCrash:       {{110, 220 * time.Millisecond}, {70, 260 * time.Millisecond}},
	audio.CuePickup:      {{880, 50 * time.Millisecond}, {1320, 70 * time.Millisecond}},
	audio.CueStage:       {{523, 90 * time.Millisecond}, {659, 90 * time.Millisecond}, {784, 160 * time.Millisecond}},
	audio.CueTurboOn:     {{300, 80 * time.Millisecond}},
	audio.CueTurboOff:    {{200, 60 * time.Millisecond}},
	audio.CueShieldBreak: {{600, 50 * time.Millisecond}, {0, 20 * time.Millisecond}, {300, 90 * time.Millisecond}},
	audio.CueGhost:       {{990, 40 * time.Millisecond}, {1480, 40 * time.Millisecond}, {1980, 80 * time.Millisecond}},
}

// Speaker plays cues on the default output device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

// New initializes the output device and starts the mixer.
func New() (*Speaker, error) {
	if err := beepspeaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	s := &Speaker{mixer: &beep.Mixer{}}
	beepspeaker.Play(s.mixer)
	return s, nil
}

// Play queues the tones for c on the mixer.
func (s *Speaker) Play(c audio.Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	st := cueStreamer(c)
	if st == nil {
		return
	}
	beepspeaker.Lock()
	s.mixer.Add(st)
	beepspeaker.Unlock()
}

// Close stops all sounds and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	beepspeaker.Clear()
	beepspeaker.Close()
}

// cueStreamer builds the finite streamer for c, or nil for unknown cues.
func cueStreamer(c audio.Cue) beep.Streamer {
	notes := cueNotes[c]
	if len(notes) == 0 {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, beep.Take(sampleRate.N(n.dur), newTone(sampleRate, n.freq, n.dur)))
	}
	return beep.Seq(parts...)
}

// tone is a square-ish wave with a short attack and linear release.
type tone struct {
	sr    beep.SampleRate
	freq  float64
	total int
	pos   int
}

func newTone(sr beep.SampleRate, freq float64, dur time.Duration) *tone {
	return &tone{sr: sr, freq: freq, total: sr.N(dur)}
}

func (g *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		sample := 0.0
		if g.freq > 0 {
			t := float64(g.pos) / float64(g.sr)
			sample = 0.6*math.Sin(2*math.Pi*g.freq*t) + 0.2*math.Sin(2*math.Pi*g.freq*3*t)

			attack := math.Min(t/0.005, 1.0)
			release := 1.0
			if g.total > 0 {
				release = math.Max(1-float64(g.pos)/float64(g.total), 0)
			}
			sample *= attack * release * 0.25
		}
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *tone) Err() error {
	return nil
}
