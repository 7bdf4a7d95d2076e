package loop

import (
	"time"

	"github.com/tomz197/liftrunner/internal/audio"
	"github.com/tomz197/liftrunner/internal/input"
	"github.com/tomz197/liftrunner/internal/loop/config"
	"github.com/tomz197/liftrunner/internal/object"
	"github.com/tomz197/liftrunner/internal/physics"
)

// clampDelta bounds a frame delta to [0, MaxFrameDelta].
func clampDelta(delta time.Duration) time.Duration {
	if delta < 0 {
		return 0
	}
	if delta > config.MaxFrameDelta {
		return config.MaxFrameDelta
	}
	return delta
}

// Step advances the simulation by one frame. It is a no-op once the run has
// ended, and only toggles pause while paused.
func Step(s *State, in input.Intent, delta time.Duration) {
	s.Cues = s.Cues[:0]
	sess := &s.Session
	sess.BestChanged = false

	if !sess.Running || !s.Player.Alive {
		return
	}
	if in.Pause {
		sess.Paused = !sess.Paused
	}
	if sess.Paused {
		return
	}

	delta = clampDelta(delta)
	dt := delta.Seconds()
	sess.Elapsed += dt

	updateTurbo(s, in.Turbo, dt)
	moveHorizontal(s, in.Dir(), dt)
	changeLane(s, in)

	updateVertical(s, in, delta)
	if !s.Player.Alive {
		return
	}

	tickTimers(s, dt)
	updateEntities(s, dt)

	resolveObstacles(s)
	if !s.Player.Alive {
		return
	}
	collectPickups(s)

	scoreProgress(s)
	advanceStage(s)
	spawn(s, dt)
}

// Decay animates particles and texts only. Used to finish effects after a run ends.
func Decay(s *State, delta time.Duration) {
	ctx := s.updateContext(clampDelta(delta).Seconds())
	updateEffects(s, ctx)
}

// updateTurbo applies the boost only while requested and above the threshold,
// then drains or regenerates the gauge.
func updateTurbo(s *State, requested bool, dt float64) {
	t := s.Tuning.Turbo
	sess := &s.Session

	active := requested && sess.TurboEnergy > t.Threshold
	if active != sess.TurboActive {
		if active {
			s.emit(audio.CueTurboOn)
		} else {
			s.emit(audio.CueTurboOff)
		}
	}
	sess.TurboActive = active
	s.Player.Turbo = active

	if active {
		sess.TurboEnergy -= t.Drain * dt
	} else {
		sess.TurboEnergy += t.Regen * dt
	}
	sess.TurboEnergy = physics.Clamp(sess.TurboEnergy, 0, t.Max)
}

// moveHorizontal integrates the horizontal intent inside the player window.
func moveHorizontal(s *State, dir, dt float64) {
	p := s.Player
	speed := s.Tuning.Player.Speed
	if s.Session.TurboActive {
		speed *= s.Tuning.Player.TurboMult
	}
	p.VX = dir
	p.X = physics.Clamp(p.X+dir*speed*dt, config.PlayerMinX, config.PlayerMaxX)
}

// changeLane applies one lane step per edge, only while grounded.
func changeLane(s *State, in input.Intent) {
	p := s.Player
	if !p.Grounded() {
		return
	}
	if in.LaneUp {
		p.Lane = object.ClampLane(p.Lane + 1)
	}
	if in.LaneDown {
		p.Lane = object.ClampLane(p.Lane - 1)
	}
}

// tickTimers counts down shield, cooldown, stage message and combo window.
func tickTimers(s *State, dt float64) {
	p := s.Player
	sess := &s.Session

	p.ShieldTime = max(0, p.ShieldTime-dt)
	p.JumpCooldown = max(0, p.JumpCooldown-dt)
	sess.StageMessage = max(0, sess.StageMessage-dt)
	expireCombo(s)
}

func (s *State) updateContext(dt float64) object.UpdateContext {
	return object.UpdateContext{
		Dt:          dt,
		PlayerLevel: s.Player.Level,
		Turbo:       s.Session.TurboActive,
		Tuning:      &s.Tuning,
	}
}

// compact keeps the elements for which remove returns false, in order.
func compact[T any](items []T, remove func(*T) bool) []T {
	kept := items[:0]
	for i := range items {
		if !remove(&items[i]) {
			kept = append(kept, items[i])
		}
	}
	clear(items[len(kept):])
	return kept
}

// updateEntities scrolls and animates every entity and retires the finished ones.
func updateEntities(s *State, dt float64) {
	ctx := s.updateContext(dt)
	w := &s.World

	w.Obstacles = compact(w.Obstacles, func(o *object.Obstacle) bool { return o.Update(ctx) })
	w.Lifts = compact(w.Lifts, func(l *object.Lift) bool { return l.Update(ctx) })
	w.Pickups = compact(w.Pickups, func(p *object.Pickup) bool { return p.Update(ctx) })

	var drops []object.UFO
	w.UFOs = compact(w.UFOs, func(u *object.UFO) bool {
		remove, drop := u.Update(ctx, s.Tuning.Spawn.UFODropInterval)
		if drop {
			drops = append(drops, *u)
		}
		return remove
	})
	for _, u := range drops {
		ufoDrop(s, u)
	}

	updateEffects(s, ctx)
}

// updateEffects advances particles and floating text.
func updateEffects(s *State, ctx object.UpdateContext) {
	w := &s.World
	kept := w.Particles[:0]
	for _, p := range w.Particles {
		if p.Update(ctx) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(w.Particles[len(kept):])
	w.Particles = kept

	w.Texts = compact(w.Texts, func(t *object.FloatText) bool { return t.Update(ctx) })
}

// endRun moves the session into the terminal run-ended state.
func endRun(s *State, cause string) {
	p := s.Player
	p.Alive = false
	p.Turbo = false
	s.Session.Running = false
	s.Session.TurboActive = false
	s.Session.EndCause = cause
	s.emit(audio.CueCrash)
	s.World.Particles = object.Burst(s.World.Particles, s.rng, p.X+p.W/2, p.DrawY()+p.H/2, 30, 160, 1.2, object.ColorTurbo)
}
