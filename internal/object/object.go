// Package object defines the game entities and their per-frame motion and drawing.
package object

import (
	"github.com/tomz197/liftrunner/internal/draw"
	"github.com/tomz197/liftrunner/internal/loop/config"
)

// Level is one of the two stacked roadways.
type Level uint8

const (
	Low Level = iota
	High
)

// Other returns the opposite level.
func (l Level) Other() Level {
	if l == Low {
		return High
	}
	return Low
}

func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}

// LaneCenterY returns the y of a lane's centre line. Lane 0 is nearest the viewer.
func LaneCenterY(level Level, lane int) float64 {
	base := config.LevelLowY
	if level == High {
		base = config.LevelHighY
	}
	return base - float64(lane)*config.LaneGap
}

// RestingY returns the top y for an entity of height h standing in a lane.
func RestingY(level Level, lane int, h float64) float64 {
	return LaneCenterY(level, lane) - h/2
}

// ClampLane restricts a lane index to the valid range.
func ClampLane(lane int) int {
	if lane < 0 {
		return 0
	}
	if lane >= config.LanesPerLevel {
		return config.LanesPerLevel - 1
	}
	return lane
}

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Dt          float64 // Seconds, already clamped
	PlayerLevel Level
	Turbo       bool
	Tuning      *config.Tuning
}

// TrafficSpeed returns the leftward scroll speed of a ground entity with the given
// base speed. Entities on the player's level pass by faster.
func (ctx UpdateContext) TrafficSpeed(level Level, base float64) float64 {
	s := ctx.Tuning.Scroll
	factor := s.PlayerFactor
	if ctx.Turbo {
		factor = s.PlayerFactorTurbo
	}
	share := s.OtherLevelShare
	if level == ctx.PlayerLevel {
		share = s.SameLevelShare
	}
	return base + factor*share
}

// LiftSpeed returns the leftward scroll speed of lifts.
func (ctx UpdateContext) LiftSpeed() float64 {
	s := ctx.Tuning.Scroll
	if ctx.Turbo {
		return s.LiftSpeed + s.LiftTurboBoost
	}
	return s.LiftSpeed
}

// OffscreenLeft reports whether an entity's trailing edge has passed the removal line.
func OffscreenLeft(x, w float64) bool {
	return x+w < config.OffscreenLeft
}

// DrawContext provides drawing resources for entities.
type DrawContext struct {
	Canvas  *draw.Canvas      // High-resolution canvas (2x vertical)
	Writer  *draw.ChunkWriter // Text overlays, written after the canvas
	Palette draw.Color        // Current stage accent colour
	Clock   float64           // Seconds since run start, for blinking
}

// Text writes s centred on logical (x, y) and marks the covered cells for repaint.
func (ctx DrawContext) Text(x, y float64, style, s string) {
	col, row := ctx.Canvas.LogicalToTerminal(x, y)
	if row < 1 || row > ctx.Canvas.TerminalHeight() {
		return
	}
	n := len([]rune(s))
	col -= n / 2
	if col < 1 {
		col = 1
	}
	if col+n-1 > ctx.Canvas.TerminalWidth() {
		return
	}
	ctx.Writer.WriteStyledAt(col, row, style, s)
	ctx.Canvas.Invalidate(col, row, n)
}

// ShouldRenderBlink returns true if an object with remaining blink time
// should be rendered this frame.
// Returns true always if remainingTime <= 0.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}

// Entity colours (256-colour palette).
const (
	ColorPlayer     draw.Color = 196
	ColorPlayerRoof draw.Color = 203
	ColorWheel      draw.Color = 236
	ColorShield     draw.Color = 51
	ColorTurbo      draw.Color = 214
	ColorBlock      draw.Color = 250
	ColorBush       draw.Color = 34
	ColorBushLeaf   draw.Color = 40
	ColorTire       draw.Color = 238
	ColorLift       draw.Color = 45
	ColorGhost      draw.Color = 141
	ColorOccupied   draw.Color = 160
	ColorBonus      draw.Color = 220
	ColorUFO        draw.Color = 118
	ColorUFODome    draw.Color = 159
	ColorRoad       draw.Color = 237
	ColorLaneMark   draw.Color = 244
	ColorShaft      draw.Color = 239
)
