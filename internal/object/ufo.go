package object

import (
	"math"

	"github.com/tomz197/liftrunner/internal/loop/config"
	"github.com/tomz197/liftrunner/internal/physics"
)

// Sky band the UFO flies in.
const (
	UFOMinY = 30.0
	UFOMaxY = 120.0
)

// UFO crosses the sky right to left and may drop bonuses.
type UFO struct {
	X, Y      float64
	W, H      float64
	Speed     float64
	Age       float64
	dropTimer float64
}

// NewUFO returns a UFO at (x, y) flying left at speed.
func NewUFO(x, y, speed float64) UFO {
	return UFO{X: x, Y: y, W: config.UFOWidth, H: config.UFOHeight, Speed: speed}
}

// Rect returns the UFO bounds.
func (u UFO) Rect() physics.Rect {
	return physics.Rect{X: u.X, Y: u.Y, W: u.W, H: u.H}
}

// Update moves the UFO. drop is true each time another dropInterval of age passes.
func (u *UFO) Update(ctx UpdateContext, dropInterval float64) (remove, drop bool) {
	u.X -= u.Speed * ctx.Dt
	u.Age += ctx.Dt
	if dropInterval > 0 {
		u.dropTimer += ctx.Dt
		if u.dropTimer >= dropInterval {
			u.dropTimer -= dropInterval
			drop = true
		}
	}
	return OffscreenLeft(u.X, u.W), drop
}

// Draw renders a saucer with a wobbling dome.
func (u UFO) Draw(ctx DrawContext) {
	c := ctx.Canvas
	wobble := math.Sin(u.Age*5) * 2
	c.SetColor(ColorUFODome)
	c.FillCircle(u.X+u.W/2, u.Y+u.H*0.3+wobble, u.H*0.4)
	c.SetColor(ColorUFO)
	c.FillRect(u.X, u.Y+u.H*0.45+wobble, u.W, u.H*0.35)
}
