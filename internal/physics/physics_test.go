package physics

import (
	"math"
	"testing"
)

func TestOverlapsEdgesDoNotTouch(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 10, Y: 0, W: 10, H: 10}
	if Overlaps(a, b) {
		t.Fatal("rects sharing an edge should not overlap")
	}
	b.X = 9
	if !Overlaps(a, b) {
		t.Fatal("rects sharing 1px should overlap")
	}
}

func TestOverlapsTolerantForgivesGrazing(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 20, H: 20}
	b := Rect{X: 14, Y: 0, W: 20, H: 20} // 6px of overlap

	if !Overlaps(a, b) {
		t.Fatal("expected raw overlap")
	}
	if OverlapsTolerant(a, b, 4) {
		t.Fatal("6px overlap should be forgiven with 4px pad on each rect")
	}
	b.X = 10 // 10px of overlap
	if !OverlapsTolerant(a, b, 4) {
		t.Fatal("10px overlap should survive 4px pad")
	}
}

func TestShrinkCollapsesToCentre(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 4, H: 4}.Shrink(5)
	if r.W != 0 || r.H != 0 {
		t.Fatalf("shrunk size = %vx%v, want 0x0", r.W, r.H)
	}
	if r.X != 12 || r.Y != 12 {
		t.Fatalf("shrunk origin = (%v,%v), want (12,12)", r.X, r.Y)
	}
}

func TestOverlapsXIgnoresVertical(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 20, H: 5}
	b := Rect{X: 5, Y: 500, W: 20, H: 5}
	if !OverlapsX(a, b, 2) {
		t.Fatal("expected horizontal overlap regardless of y")
	}
}

func TestEaseInOutCubic(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.5, 0.5}, {1, 1}, {2, 1},
	}
	for _, c := range cases {
		if got := EaseInOutCubic(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("EaseInOutCubic(%v) = %v, want %v", c.in, got, c.want)
		}
	}
	if EaseInOutCubic(0.25) >= 0.25 {
		t.Error("ease-in half should lag linear")
	}
	if EaseInOutCubic(0.75) <= 0.75 {
		t.Error("ease-out half should lead linear")
	}
}

func TestApproachConverges(t *testing.T) {
	v := 0.0
	for i := 0; i < 120; i++ {
		v = Approach(v, 100, 10, 1.0/60)
	}
	if math.Abs(v-100) > 0.01 {
		t.Fatalf("Approach after 2s = %v, want ~100", v)
	}
	if got := Approach(0, 100, 10, 1); got != 100 {
		t.Fatalf("Approach with rate*dt >= 1 = %v, want snap to 100", got)
	}
}
