package input

import "github.com/zyedidia/generic/mapset"

// Key is a logical game key, independent of the physical device.
type Key uint8

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyLaneUp
	KeyLaneDown
	KeyTurbo
	KeyLift
	KeyJump
	KeyPause
	KeyRestart
	KeyStart
	KeyQuit
)

var keyNames = [...]string{
	KeyNone:     "none",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyLaneUp:   "lane-up",
	KeyLaneDown: "lane-down",
	KeyTurbo:    "turbo",
	KeyLift:     "lift",
	KeyJump:     "jump",
	KeyPause:    "pause",
	KeyRestart:  "restart",
	KeyStart:    "start",
	KeyQuit:     "quit",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// Intent is the per-frame input consumed by the simulation.
// Left, Right and Turbo are continuous; the rest are one-shot edges.
type Intent struct {
	Left  bool
	Right bool
	Turbo bool

	LaneUp   bool
	LaneDown bool
	Lift     bool
	Jump     bool
	Pause    bool
	Restart  bool
	Start    bool
	Quit     bool

	// Any is true when any key was newly pressed this frame.
	Any bool
}

// Dir returns -1, 0 or 1 for the horizontal intent.
func (in Intent) Dir() float64 {
	switch {
	case in.Left && !in.Right:
		return -1
	case in.Right && !in.Left:
		return 1
	}
	return 0
}

// State aggregates key presses and releases into per-frame intents.
// A key that is already held does not produce a new edge, so one physical
// press yields exactly one lane change.
type State struct {
	held  mapset.Set[Key]
	edges mapset.Set[Key]
}

// NewState returns an empty input state.
func NewState() *State {
	return &State{
		held:  mapset.New[Key](),
		edges: mapset.New[Key](),
	}
}

// Press marks k as held, recording an edge if it was not held before.
func (s *State) Press(k Key) {
	if k == KeyNone || s.held.Has(k) {
		return
	}
	s.held.Put(k)
	s.edges.Put(k)
}

// Release marks k as no longer held.
func (s *State) Release(k Key) {
	s.held.Remove(k)
}

// Held reports whether k is currently held.
func (s *State) Held(k Key) bool {
	return s.held.Has(k)
}

// Frame returns the intent for this frame and consumes pending edges.
func (s *State) Frame() Intent {
	in := Intent{
		Left:     s.held.Has(KeyLeft),
		Right:    s.held.Has(KeyRight),
		Turbo:    s.held.Has(KeyTurbo),
		LaneUp:   s.edges.Has(KeyLaneUp),
		LaneDown: s.edges.Has(KeyLaneDown),
		Lift:     s.edges.Has(KeyLift),
		Jump:     s.edges.Has(KeyJump),
		Pause:    s.edges.Has(KeyPause),
		Restart:  s.edges.Has(KeyRestart),
		Start:    s.edges.Has(KeyStart),
		Quit:     s.edges.Has(KeyQuit),
		Any:      s.edges.Size() > 0,
	}
	if in.Any {
		s.edges = mapset.New[Key]()
	}
	return in
}
