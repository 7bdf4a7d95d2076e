package object

import (
	"github.com/tomz197/liftrunner/internal/draw"
	"github.com/tomz197/liftrunner/internal/loop/config"
	"github.com/tomz197/liftrunner/internal/physics"
)

// VerticalMode is the player's vertical motion state. Exactly one applies at a time.
type VerticalMode uint8

const (
	Grounded VerticalMode = iota
	Lifting
	Jumping
)

func (m VerticalMode) String() string {
	switch m {
	case Lifting:
		return "lifting"
	case Jumping:
		return "jumping"
	}
	return "grounded"
}

// LiftAnim is the eased transfer between levels. T runs from 0 to 1.
type LiftAnim struct {
	T     float64
	FromY float64
	ToY   float64
}

// JumpArc is the ballistic jump above the grounded position.
type JumpArc struct {
	Height float64 // Above the resting position, never negative
	VY     float64 // Upward positive
}

// Vertical holds the mode and the payload that belongs to it.
// Only the payload matching Mode is meaningful.
type Vertical struct {
	Mode VerticalMode
	Lift LiftAnim
	Jump JumpArc
}

// Player is the car the user drives.
type Player struct {
	X, Y         float64
	VX           float64 // Horizontal intent: -1, 0 or 1
	Level        Level
	Lane         int
	Alive        bool
	Vertical     Vertical
	JumpCooldown float64
	Turbo        bool
	ShieldTime   float64
	W, H         float64
}

// NewPlayer returns a grounded player at the start position on the low level.
func NewPlayer() Player {
	p := Player{
		X:     config.PlayerStartX,
		Level: Low,
		Lane:  config.PlayerLane,
		Alive: true,
		W:     config.PlayerWidth,
		H:     config.PlayerHeight,
	}
	p.Y = p.RestingY()
	return p
}

// RestingY is the grounded top y for the current level and lane.
func (p Player) RestingY() float64 {
	return RestingY(p.Level, p.Lane, p.H)
}

// Grounded reports whether the player is neither lifting nor jumping.
func (p Player) Grounded() bool { return p.Vertical.Mode == Grounded }

// Lifting reports whether a lift animation is running.
func (p Player) Lifting() bool { return p.Vertical.Mode == Lifting }

// Jumping reports whether the player is airborne.
func (p Player) Jumping() bool { return p.Vertical.Mode == Jumping }

// JumpHeight returns the current height above ground, zero unless jumping.
func (p Player) JumpHeight() float64 {
	if p.Vertical.Mode != Jumping {
		return 0
	}
	return p.Vertical.Jump.Height
}

// DrawY is the y the car is drawn at, raised by the jump height.
func (p Player) DrawY() float64 {
	return p.Y - p.JumpHeight()
}

// Rect is the ground footprint used for collisions and pickups.
// Jumps are handled by the clearance test, not by moving the footprint.
func (p Player) Rect() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Draw renders the car, with a blinking shield outline and turbo flame.
func (p Player) Draw(ctx DrawContext) {
	c := ctx.Canvas
	y := p.DrawY()

	if p.ShieldTime > 0 && ShouldRenderBlink(p.ShieldTime, config.ShieldBlinkHz) {
		c.SetColor(ColorShield)
		pts := c.BorrowPoints(4)
		pts[0] = draw.Point{X: p.X - 6, Y: y - 6}
		pts[1] = draw.Point{X: p.X + p.W + 6, Y: y - 6}
		pts[2] = draw.Point{X: p.X + p.W + 6, Y: y + p.H + 4}
		pts[3] = draw.Point{X: p.X - 6, Y: y + p.H + 4}
		c.DrawPolygon(pts, false)
	}

	if p.Turbo {
		c.SetColor(ColorTurbo)
		c.FillRect(p.X-14, y+p.H*0.45, 12, p.H*0.3)
	}

	c.SetColor(ColorPlayer)
	c.FillRect(p.X, y+p.H*0.35, p.W, p.H*0.45)
	c.SetColor(ColorPlayerRoof)
	c.FillRect(p.X+p.W*0.2, y, p.W*0.5, p.H*0.38)

	c.SetColor(ColorWheel)
	c.FillCircle(p.X+p.W*0.22, y+p.H*0.85, p.H*0.16)
	c.FillCircle(p.X+p.W*0.78, y+p.H*0.85, p.H*0.16)
}
