package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/liftrunner/internal/audio"
	"github.com/tomz197/liftrunner/internal/input"
	"github.com/tomz197/liftrunner/internal/loop/config"
	"github.com/tomz197/liftrunner/internal/object"
	"github.com/tomz197/liftrunner/internal/physics"
)

// updateVertical runs the Grounded / Lifting / Jumping state machine.
// Requests that do not fit the current mode are ignored.
func updateVertical(s *State, in input.Intent, delta time.Duration) {
	p := s.Player
	dt := delta.Seconds()

	switch p.Vertical.Mode {
	case object.Grounded:
		idx := eligibleLift(s)

		if in.Lift && idx >= 0 {
			engageLift(s, idx)
			return
		}
		if in.Jump && p.JumpCooldown <= 0 {
			s.Session.LiftEligible = 0
			startJump(s)
			integrateJump(s, dt)
			return
		}

		if idx < 0 {
			s.Session.LiftEligible = 0
		} else {
			s.Session.LiftEligible += delta
			if s.Session.LiftEligible >= s.Tuning.AutoLiftDelay() {
				engageLift(s, idx)
				return
			}
		}
		p.Y = physics.Approach(p.Y, p.RestingY(), s.Tuning.Player.LaneEase, dt)

	case object.Lifting:
		advanceLift(s, dt)

	case object.Jumping:
		s.Session.LiftEligible = 0
		integrateJump(s, dt)
	}
}

// eligibleLift returns the index of the first lift the grounded player can
// engage, or -1. The player must be in the lift's lane on its source level and
// overlap it horizontally within the collision tolerance.
func eligibleLift(s *State) int {
	p := s.Player
	if !p.Grounded() {
		return -1
	}
	pr := p.Rect()
	for i, l := range s.World.Lifts {
		if !l.Active || l.Lane != p.Lane || l.Dir.Source() != p.Level {
			continue
		}
		if physics.OverlapsX(pr, l.Rect(), s.Tuning.Player.CollisionPad) {
			return i
		}
	}
	return -1
}

// engageLift consumes the lift at idx and applies its variant.
func engageLift(s *State, idx int) {
	p := s.Player
	l := &s.World.Lifts[idx]
	l.Active = false
	s.Session.LiftEligible = 0

	switch l.Kind {
	case object.LiftNormal:
		p.Vertical = object.Vertical{
			Mode: object.Lifting,
			Lift: object.LiftAnim{
				FromY: p.Y,
				ToY:   object.RestingY(p.Level.Other(), p.Lane, p.H),
			},
		}
		s.emit(audio.CueLift)
		if l.Dir == object.Down && s.chance(s.Tuning.Lift.TireDropChance) {
			spawnFallingTire(s)
		}

	case object.LiftGhost:
		lt := s.Tuning.Lift
		p.Level = p.Level.Other()
		p.Y = p.RestingY()
		p.X = physics.Clamp(p.X+lt.GhostAdvance, config.PlayerMinX, config.PlayerMaxX)
		s.World.Particles = object.Burst(s.World.Particles, s.rng, p.X+p.W/2, p.Y+p.H/2, lt.GhostParticles, 120, 0.8, object.ColorGhost)
		s.addScore(s.Tuning.Score.Ghost)
		s.floatText(p.X+p.W/2, p.Y-10, fmt.Sprintf("+%d GHOST", s.Tuning.Score.Ghost), object.ColorGhost)
		s.emit(audio.CueGhost)

	case object.LiftOccupied:
		endRun(s, "occupied lift")
	}
}

// advanceLift eases the player between levels and lands on completion.
func advanceLift(s *State, dt float64) {
	p := s.Player
	a := &p.Vertical.Lift
	a.T += dt / s.Tuning.Lift.Duration
	if a.T < 1 {
		p.Y = physics.Lerp(a.FromY, a.ToY, physics.EaseInOutCubic(a.T))
		return
	}

	p.Y = a.ToY
	p.Level = p.Level.Other()
	p.Vertical = object.Vertical{Mode: object.Grounded}
	s.addScore(s.Tuning.Score.Lift)
	s.floatText(p.X+p.W/2, p.Y-10, fmt.Sprintf("+%d", s.Tuning.Score.Lift), object.ColorLift)
}

func startJump(s *State) {
	p := s.Player
	p.Vertical = object.Vertical{
		Mode: object.Jumping,
		Jump: object.JumpArc{VY: s.Tuning.Jump.Velocity},
	}
	s.emit(audio.CueJump)
}

// integrateJump applies gravity and lands the player when height returns to zero.
func integrateJump(s *State, dt float64) {
	p := s.Player
	j := &p.Vertical.Jump
	j.VY -= s.Tuning.Jump.Gravity * dt
	j.Height += j.VY * dt
	if j.Height <= 0 {
		p.Vertical = object.Vertical{Mode: object.Grounded}
		p.JumpCooldown = s.Tuning.Jump.Cooldown
	}
}
