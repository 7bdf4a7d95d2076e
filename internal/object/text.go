package object

import "github.com/tomz197/liftrunner/internal/draw"

// floatRise is how fast floating text drifts upward.
const floatRise = 40.0

// FloatText is a score popup that rises and fades.
type FloatText struct {
	X, Y  float64 // Logical centre
	Value string
	TTL   float64
	Color draw.Color
}

// NewFloatText returns a popup at (x, y) that lives for ttl seconds.
func NewFloatText(x, y float64, value string, ttl float64, col draw.Color) FloatText {
	return FloatText{X: x, Y: y, Value: value, TTL: ttl, Color: col}
}

// Update drifts the text upward. Returns true when it expired.
func (t *FloatText) Update(ctx UpdateContext) bool {
	t.TTL -= ctx.Dt
	t.Y -= floatRise * ctx.Dt
	return t.TTL <= 0
}

// Draw writes the text over the canvas.
func (t FloatText) Draw(ctx DrawContext) {
	if t.Value == "" {
		return
	}
	ctx.Text(t.X, t.Y, draw.Bold()+draw.Color256(int(t.Color)), t.Value)
}
