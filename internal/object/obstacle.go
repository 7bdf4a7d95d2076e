package object

import (
	"math"

	"github.com/tomz197/liftrunner/internal/draw"
	"github.com/tomz197/liftrunner/internal/loop/config"
	"github.com/tomz197/liftrunner/internal/physics"
)

// ObstacleKind is the type of a road hazard.
type ObstacleKind uint8

const (
	Block ObstacleKind = iota
	Bush
	Tire
)

func (k ObstacleKind) String() string {
	switch k {
	case Bush:
		return "bush"
	case Tire:
		return "tire"
	}
	return "block"
}

// Size returns the fixed width and height for the kind.
func (k ObstacleKind) Size() (w, h float64) {
	switch k {
	case Bush:
		return config.BushWidth, config.BushHeight
	case Tire:
		return config.TireSize, config.TireSize
	}
	return config.BlockWidth, config.BlockHeight
}

// Obstacle is a hazard rolling toward the player on one level and lane.
type Obstacle struct {
	Kind    ObstacleKind
	Level   Level
	Lane    int
	X, Y    float64
	W, H    float64
	Speed   float64
	Angle   float64 // Rotation for bush and tire
	Phase   float64 // Bush bob phase
	Bob     float64 // Current bob offset
	Falling bool
	VY      float64
	Landed  bool
	Scored  bool
}

// NewObstacle returns a grounded obstacle resting in its lane at x.
func NewObstacle(kind ObstacleKind, level Level, lane int, x, speed float64) Obstacle {
	w, h := kind.Size()
	return Obstacle{
		Kind:  kind,
		Level: level,
		Lane:  lane,
		X:     x,
		Y:     RestingY(level, lane, h),
		W:     w,
		H:     h,
		Speed: speed,
	}
}

// NewFallingTire returns a tire dropping from the high level's lane toward the low level.
func NewFallingTire(lane int, x, speed float64) Obstacle {
	o := NewObstacle(Tire, High, lane, x, speed)
	o.Falling = true
	return o
}

// Rect returns the obstacle's current bounds.
func (o Obstacle) Rect() physics.Rect {
	return physics.Rect{X: o.X, Y: o.Y + o.Bob, W: o.W, H: o.H}
}

// Update scrolls and animates the obstacle. Returns true when it should be removed.
func (o *Obstacle) Update(ctx UpdateContext) bool {
	dt := ctx.Dt
	ot := ctx.Tuning.Obstacle

	o.X -= ctx.TrafficSpeed(o.Level, o.Speed) * dt

	switch o.Kind {
	case Bush:
		o.Angle += ot.BushSpin * dt
		o.Phase += 4 * dt
		o.Bob = math.Sin(o.Phase) * ot.BushBob
	case Tire:
		o.Angle += ot.TireSpin * dt
	}

	if o.Falling {
		o.VY += ot.TireGravity * dt
		o.Y += o.VY * dt
		ground := RestingY(Low, o.Lane, o.H) + o.H
		if o.Y+o.H >= ground {
			o.Y = ground - o.H
			o.VY = 0
			o.Falling = false
			o.Landed = true
			o.Level = Low
		}
	}

	return OffscreenLeft(o.X, o.W)
}

// Draw renders the obstacle by kind.
func (o Obstacle) Draw(ctx DrawContext) {
	c := ctx.Canvas
	r := o.Rect()
	cx, cy := r.X+r.W/2, r.Y+r.H/2

	switch o.Kind {
	case Block:
		c.SetColor(ColorBlock)
		c.FillRect(r.X, r.Y, r.W, r.H)
		c.SetColor(ctx.Palette)
		c.DrawLine(draw.Point{X: r.X, Y: r.Y}, draw.Point{X: r.Right(), Y: r.Bottom()})
	case Bush:
		c.SetColor(ColorBush)
		c.FillCircle(cx, cy, r.H/2)
		c.SetColor(ColorBushLeaf)
		for i := 0; i < 3; i++ {
			a := o.Angle + float64(i)*2*math.Pi/3
			c.FillCircle(cx+math.Cos(a)*r.W*0.3, cy+math.Sin(a)*r.H*0.3, r.H*0.22)
		}
	case Tire:
		c.SetColor(ColorTire)
		c.FillCircle(cx, cy, r.W/2)
		c.SetColor(ColorBlock)
		dx, dy := math.Cos(o.Angle)*r.W*0.4, math.Sin(o.Angle)*r.H*0.4
		c.DrawLine(draw.Point{X: cx - dx, Y: cy - dy}, draw.Point{X: cx + dx, Y: cy + dy})
	}
}
