// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield - the logical coordinate space used by the simulation.
// Actual rendering scales to fit terminal size.
const (
	PlayfieldWidth  = 960.0
	PlayfieldHeight = 540.0
)

// Roadways: two levels with three lanes each.
const (
	LevelLowY     = PlayfieldHeight - 120 // Baseline of the low level
	LevelHighY    = PlayfieldHeight - 320 // Baseline of the high level
	LaneGap       = 28.0                  // Vertical distance between lanes on a level
	LanesPerLevel = 3
	RoadHeight    = 12.0
)

// Player bounds
const (
	PlayerStartX = 120.0
	PlayerMinX   = 40.0
	PlayerMaxX   = PlayfieldWidth * 0.6
	PlayerWidth  = 54.0
	PlayerHeight = 28.0
	PlayerLane   = 1
)

// Entity sizes
const (
	BlockWidth, BlockHeight = 44.0, 22.0
	BushWidth, BushHeight   = 34.0, 26.0
	TireSize                = 26.0
	LiftWidth, LiftHeight   = 80.0, 16.0
	LiftLane                = 1
	PickupSize              = 26.0
	UFOWidth, UFOHeight     = 48.0, 18.0
)

// Spawning and cleanup
const (
	SpawnMarginX  = 20.0  // New entities start this far right of the playfield
	OffscreenLeft = -40.0 // Entities whose trailing edge passes this are removed
)

// Frame timing
const (
	MaxFrameDelta   = 33 * time.Millisecond
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Client rendering - max terminal area drawn, larger terminals get a border.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Visual feedback
const (
	StageMessageSeconds = 2.5
	FloatTextSeconds    = 1.0
	ShieldBlinkHz       = 6.0
	OccupiedBlinkHz     = 4.0
)
