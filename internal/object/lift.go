package object

import (
	"github.com/tomz197/liftrunner/internal/draw"
	"github.com/tomz197/liftrunner/internal/loop/config"
	"github.com/tomz197/liftrunner/internal/physics"
)

// LiftDir is the direction a lift carries the player.
type LiftDir uint8

const (
	Up   LiftDir = iota // Low to high
	Down                // High to low
)

func (d LiftDir) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// Source returns the level the lift stands on.
func (d LiftDir) Source() Level {
	if d == Down {
		return High
	}
	return Low
}

// LiftKind is the lift variant.
type LiftKind uint8

const (
	LiftNormal   LiftKind = iota // Timed eased transfer
	LiftGhost                    // Instant teleport with bonus
	LiftOccupied                 // Ends the run
)

func (k LiftKind) String() string {
	switch k {
	case LiftGhost:
		return "ghost"
	case LiftOccupied:
		return "occupied"
	}
	return "normal"
}

// Lift is a platform connecting the two levels.
type Lift struct {
	X, Y   float64
	W, H   float64
	Dir    LiftDir
	Active bool // False once engaged
	Lane   int
	Kind   LiftKind
	Blink  float64 // Occupied blink timer
}

// NewLift returns an active lift standing on the source level of dir.
func NewLift(dir LiftDir, kind LiftKind, x float64) Lift {
	return Lift{
		X:      x,
		Y:      RestingY(dir.Source(), config.LiftLane, config.LiftHeight),
		W:      config.LiftWidth,
		H:      config.LiftHeight,
		Dir:    dir,
		Active: true,
		Lane:   config.LiftLane,
		Kind:   kind,
	}
}

// Rect returns the platform bounds.
func (l Lift) Rect() physics.Rect {
	return physics.Rect{X: l.X, Y: l.Y, W: l.W, H: l.H}
}

// Update scrolls the lift. Returns true when it should be removed.
func (l *Lift) Update(ctx UpdateContext) bool {
	l.X -= ctx.LiftSpeed() * ctx.Dt
	if l.Kind == LiftOccupied {
		l.Blink += ctx.Dt
	}
	return OffscreenLeft(l.X, l.W)
}

// Draw renders the shaft between levels and the platform.
func (l Lift) Draw(ctx DrawContext) {
	c := ctx.Canvas
	top := LaneCenterY(High, l.Lane)
	bottom := LaneCenterY(Low, l.Lane)

	c.SetColor(ColorShaft)
	c.DrawLine(draw.Point{X: l.X, Y: top}, draw.Point{X: l.X, Y: bottom})
	c.DrawLine(draw.Point{X: l.X + l.W, Y: top}, draw.Point{X: l.X + l.W, Y: bottom})

	col := ColorLift
	switch l.Kind {
	case LiftGhost:
		col = ColorGhost
	case LiftOccupied:
		col = ColorOccupied
		if int(l.Blink*config.OccupiedBlinkHz)%2 == 0 {
			col = ColorPlayerRoof
		}
	}
	if !l.Active {
		col = ColorShaft
	}
	c.SetColor(col)
	c.FillRect(l.X, l.Y, l.W, l.H)

	// Arrow marking the direction.
	mid := l.X + l.W/2
	tipY, baseY := l.Y-10, l.Y-2
	if l.Dir == Down {
		tipY, baseY = l.Y+l.H+10, l.Y+l.H+2
	}
	pts := c.BorrowPoints(3)
	pts[0] = draw.Point{X: mid, Y: tipY}
	pts[1] = draw.Point{X: mid - 8, Y: baseY}
	pts[2] = draw.Point{X: mid + 8, Y: baseY}
	c.DrawPolygon(pts, true)

	if l.Kind == LiftOccupied && l.Active {
		c.SetColor(ColorBlock)
		c.FillRect(l.X+l.W*0.25, l.Y-config.PlayerHeight*0.6, l.W*0.5, config.PlayerHeight*0.6)
	}
}
