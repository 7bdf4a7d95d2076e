package loop

import (
	"github.com/tomz197/liftrunner/internal/audio"
	"github.com/tomz197/liftrunner/internal/loop/config"
	"github.com/tomz197/liftrunner/internal/object"
	"github.com/tomz197/liftrunner/internal/physics"
)

// hitsPlayer reports whether o can collide with the player this frame.
// Lifting players and falling tires never collide, nor do obstacles on the
// other level. A jump above the clearance height clears everything.
func hitsPlayer(s *State, o *object.Obstacle) bool {
	p := s.Player
	if p.Lifting() || o.Falling || o.Level != p.Level {
		return false
	}
	if p.JumpHeight() > s.Tuning.Jump.Clearance {
		return false
	}
	return physics.OverlapsTolerant(p.Rect(), o.Rect(), s.Tuning.Player.CollisionPad)
}

// resolveObstacles handles obstacle contact. A shield absorbs one hit and
// removes the obstacle; otherwise the run ends.
func resolveObstacles(s *State) {
	p := s.Player
	w := &s.World

	kept := w.Obstacles[:0]
	for i := range w.Obstacles {
		o := w.Obstacles[i]
		if !p.Alive || !hitsPlayer(s, &o) {
			kept = append(kept, o)
			continue
		}
		if p.ShieldTime > 0 {
			p.ShieldTime = 0
			p.X = physics.Clamp(p.X-s.Tuning.Player.ShieldNudge, config.PlayerMinX, config.PlayerMaxX)
			w.Particles = object.Burst(w.Particles, s.rng, o.X+o.W/2, o.Y+o.H/2, 12, 100, 0.6, object.ColorShield)
			s.emit(audio.CueShieldBreak)
			continue
		}
		kept = append(kept, o)
		endRun(s, "hit "+o.Kind.String())
	}
	clear(w.Obstacles[len(kept):])
	w.Obstacles = kept
}

// collectPickups applies pickups touched by the player. Not while lifting.
func collectPickups(s *State) {
	p := s.Player
	if p.Lifting() {
		return
	}
	pr := p.Rect()
	pad := s.Tuning.Player.CollisionPad

	s.World.Pickups = compact(s.World.Pickups, func(k *object.Pickup) bool {
		if !k.Active || k.Level != p.Level || !physics.OverlapsTolerant(pr, k.Rect(), pad) {
			return !k.Active
		}
		k.Active = false
		switch k.Kind {
		case object.Bonus:
			collectBonus(s, k.Value, k.X+k.Size/2, k.Y)
		case object.Shield:
			p.ShieldTime = s.Tuning.Shield.Duration
			s.floatText(k.X+k.Size/2, k.Y, "SHIELD", object.ColorShield)
		}
		s.emit(audio.CuePickup)
		return true
	})
}
