package loop

import (
	"math/rand"
	"time"

	"github.com/tomz197/liftrunner/internal/audio"
	"github.com/tomz197/liftrunner/internal/draw"
	"github.com/tomz197/liftrunner/internal/loop/config"
	"github.com/tomz197/liftrunner/internal/object"
)

// GameState represents the current screen phase of a session.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active run, possibly paused
	GameStateDead                      // Run ended, waiting for restart
	GameStateShutdown                  // Server is shutting down
)

// World exclusively owns every entity collection.
type World struct {
	Obstacles []object.Obstacle
	Lifts     []object.Lift
	Pickups   []object.Pickup
	UFOs      []object.UFO
	Particles []*object.Particle
	Texts     []object.FloatText
}

// clear empties the world, returning pooled particles.
func (w *World) clear() {
	for _, p := range w.Particles {
		p.Release()
	}
	w.Obstacles = w.Obstacles[:0]
	w.Lifts = w.Lifts[:0]
	w.Pickups = w.Pickups[:0]
	w.UFOs = w.UFOs[:0]
	w.Particles = w.Particles[:0]
	w.Texts = w.Texts[:0]
}

// countPickups returns live pickups of kind.
func (w *World) countPickups(kind object.PickupKind) int {
	n := 0
	for _, p := range w.Pickups {
		if p.Active && p.Kind == kind {
			n++
		}
	}
	return n
}

// countLifts returns lifts travelling in dir.
func (w *World) countLifts(dir object.LiftDir) int {
	n := 0
	for _, l := range w.Lifts {
		if l.Dir == dir {
			n++
		}
	}
	return n
}

// Combo tracks bonus pickups inside the rolling window.
type Combo struct {
	Count  int     // Bonuses collected in the current window
	Window float64 // Seconds until the oldest of them leaves the window
}

// Session holds the scalar state of one run.
type Session struct {
	Running      bool
	Paused       bool
	Elapsed      float64
	Score        int
	Best         int
	BestChanged  bool // Set by the step that raised Best
	Stage        int  // 0-based index into Tuning.Stages
	StageMessage float64
	Combo        Combo
	TurboEnergy  float64
	TurboActive  bool
	Overtakes    int
	LiftEligible time.Duration // Continuous auto-lift eligibility
	EndCause     string

	secondsScored int
	lastShieldAt  float64
}

// State is everything one game session simulates.
type State struct {
	World   World
	Session Session
	Player  *object.Player
	Tuning  config.Tuning

	// Cues emitted by the most recent Step, in order.
	Cues []audio.Cue

	rng        *rand.Rand
	comboTimes []float64
}

// NewState returns an idle state. Call StartRun to begin playing.
func NewState(tuning config.Tuning, seed int64) *State {
	p := object.NewPlayer()
	return &State{
		Player: &p,
		Tuning: tuning,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Reset clears the world and begins an empty run, keeping the best score.
func (s *State) Reset() {
	s.World.clear()
	*s.Player = object.NewPlayer()
	best := s.Session.Best
	s.Session = Session{
		Running:     true,
		Best:        best,
		TurboEnergy: s.Tuning.Turbo.Max,
	}
	s.Cues = s.Cues[:0]
	s.comboTimes = s.comboTimes[:0]
}

// StartRun resets the state and populates the world ahead of the player.
func (s *State) StartRun() {
	s.Reset()
	preload(s)
}

// stage returns the active stage parameters.
func (s *State) stage() config.StageTuning {
	return s.Tuning.Stages[s.Session.Stage]
}

// StageName returns the active stage's display name.
func (s *State) StageName() string {
	return s.stage().Name
}

func (s *State) emit(c audio.Cue) {
	s.Cues = append(s.Cues, c)
}

// chance rolls a probability in [0, 1].
func (s *State) chance(p float64) bool {
	return p > 0 && s.rng.Float64() < p
}

// Snapshot is a read-only copy of the state for renderers.
type Snapshot struct {
	Player    object.Player
	Obstacles []object.Obstacle
	Lifts     []object.Lift
	Pickups   []object.Pickup
	UFOs      []object.UFO
	Particles []object.Particle
	Texts     []object.FloatText
	Session   Session
	StageName string
	Palette   draw.Color
	TurboMax  float64
}

// Snapshot returns value copies of the player, entities and session scalars.
func (s *State) Snapshot() Snapshot {
	var snap Snapshot
	s.SnapshotInto(&snap)
	return snap
}

// SnapshotInto fills snap, reusing its slices.
func (s *State) SnapshotInto(snap *Snapshot) {
	snap.Player = *s.Player
	snap.Obstacles = append(snap.Obstacles[:0], s.World.Obstacles...)
	snap.Lifts = append(snap.Lifts[:0], s.World.Lifts...)
	snap.Pickups = append(snap.Pickups[:0], s.World.Pickups...)
	snap.UFOs = append(snap.UFOs[:0], s.World.UFOs...)
	snap.Texts = append(snap.Texts[:0], s.World.Texts...)
	snap.Particles = snap.Particles[:0]
	for _, p := range s.World.Particles {
		snap.Particles = append(snap.Particles, *p)
	}
	snap.Session = s.Session
	st := s.stage()
	snap.StageName = st.Name
	snap.Palette = draw.Color(st.Palette)
	snap.TurboMax = s.Tuning.Turbo.Max
}
