package object

import (
	"math"

	"github.com/tomz197/liftrunner/internal/draw"
	"github.com/tomz197/liftrunner/internal/loop/config"
	"github.com/tomz197/liftrunner/internal/physics"
)

// PickupKind distinguishes collectables.
type PickupKind uint8

const (
	Bonus PickupKind = iota
	Shield
)

func (k PickupKind) String() string {
	if k == Shield {
		return "shield"
	}
	return "bonus"
}

// Pickup is a collectable bonus or shield.
type Pickup struct {
	Kind   PickupKind
	X, Y   float64
	Size   float64
	Level  Level
	Lane   int
	Value  int // Bonus points, zero for shields
	Active bool
	TTL    float64
	Phase  float64
}

// NewPickup returns an active pickup resting in its lane at x.
func NewPickup(kind PickupKind, level Level, lane int, x float64, value int, ttl float64) Pickup {
	return Pickup{
		Kind:   kind,
		X:      x,
		Y:      RestingY(level, lane, config.PickupSize),
		Size:   config.PickupSize,
		Level:  level,
		Lane:   lane,
		Value:  value,
		Active: true,
		TTL:    ttl,
	}
}

// Rect returns the pickup bounds.
func (p Pickup) Rect() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.Size, H: p.Size}
}

// Update scrolls the pickup and counts down its lifetime.
// Returns true when it expired, was collected or left the screen.
func (p *Pickup) Update(ctx UpdateContext) bool {
	p.X -= ctx.TrafficSpeed(p.Level, ctx.Tuning.Scroll.PickupSpeed) * ctx.Dt
	p.TTL -= ctx.Dt
	p.Phase += 3 * ctx.Dt
	return !p.Active || p.TTL <= 0 || OffscreenLeft(p.X, p.Size)
}

// Draw renders a coin for bonuses and a diamond for shields.
// Pickups about to expire blink.
func (p Pickup) Draw(ctx DrawContext) {
	if p.TTL < 2 && !ShouldRenderBlink(p.TTL, 5) {
		return
	}
	c := ctx.Canvas
	bob := math.Sin(p.Phase) * 3
	cx, cy := p.X+p.Size/2, p.Y+p.Size/2+bob

	switch p.Kind {
	case Bonus:
		c.SetColor(ColorBonus)
		c.FillCircle(cx, cy, p.Size/2)
	case Shield:
		c.SetColor(ColorShield)
		r := p.Size / 2
		pts := c.BorrowPoints(4)
		pts[0] = draw.Point{X: cx, Y: cy - r}
		pts[1] = draw.Point{X: cx + r, Y: cy}
		pts[2] = draw.Point{X: cx, Y: cy + r}
		pts[3] = draw.Point{X: cx - r, Y: cy}
		c.DrawPolygon(pts, true)
	}
}
