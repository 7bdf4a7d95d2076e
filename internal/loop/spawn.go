package loop

import (
	"math"

	"github.com/tomz197/liftrunner/internal/loop/config"
	"github.com/tomz197/liftrunner/internal/object"
)

// spawnX is the left edge of the off-screen spawn area.
const spawnX = config.PlayfieldWidth + config.SpawnMarginX

// preload populates a fresh run so the road is not empty at the start.
func preload(s *State) {
	for i := 0; i < s.Tuning.Spawn.PreloadObstacle; i++ {
		spawnObstacle(s)
	}
	spawnLiftDir(s, object.Up)
	spawnLiftDir(s, object.Down)
}

// spawn rolls every spawner for this frame. Per-second rates become rate*dt.
func spawn(s *State, dt float64) {
	t := s.Tuning.Spawn
	st := s.stage()

	if len(s.World.Obstacles) < t.MinObstacles || s.chance(t.ObstacleRate*st.SpawnMult*dt) {
		spawnObstacle(s)
	}
	if s.chance(t.LiftRate * dt) {
		spawnLift(s)
	}
	if s.World.countPickups(object.Bonus) < t.MaxBonuses && s.chance(t.BonusRate*dt) {
		spawnBonus(s, spawnX+s.rng.Float64()*200)
	}
	if shieldEligible(s) && s.chance(t.ShieldRate*dt) {
		spawnShield(s)
	}
	if len(s.World.UFOs) == 0 && s.chance(t.UFORate*dt) {
		spawnUFO(s)
	}
}

// spawnObstacle appends an obstacle on a random level and lane, at least one
// randomized gap behind the rightmost obstacle.
func spawnObstacle(s *State) {
	t := s.Tuning
	st := s.stage()

	level := object.Level(s.rng.Intn(2))
	lane := s.rng.Intn(config.LanesPerLevel)

	x := spawnX + s.rng.Float64()*200
	if n := len(s.World.Obstacles); n > 0 {
		rightmost := s.World.Obstacles[0].X
		for _, o := range s.World.Obstacles[1:] {
			rightmost = math.Max(rightmost, o.X)
		}
		gap := t.Spawn.GapMin + s.rng.Float64()*(t.Spawn.GapMax-t.Spawn.GapMin)
		x = math.Max(x, rightmost+gap)
	}

	speed := t.Obstacle.SpeedMin + s.rng.Float64()*t.Obstacle.SpeedSpread + st.SpeedBonus
	s.World.Obstacles = append(s.World.Obstacles, object.NewObstacle(rollObstacleKind(s, st), level, lane, x, speed))
}

// rollObstacleKind picks a kind from the stage weights.
func rollObstacleKind(s *State, st config.StageTuning) object.ObstacleKind {
	total := st.Block + st.Bush + st.Tire
	r := s.rng.Float64() * total
	switch {
	case r < st.Block:
		return object.Block
	case r < st.Block+st.Bush:
		return object.Bush
	}
	return object.Tire
}

// spawnLift picks a direction, favouring up, and falls back to the other one
// when the chosen direction is at its cap.
func spawnLift(s *State) {
	limit := s.Tuning.Spawn.MaxLiftsPerDir
	dir := object.Down
	if s.rng.Float64() < s.Tuning.Lift.UpChance {
		dir = object.Up
	}
	if s.World.countLifts(dir) >= limit {
		other := object.Up
		if dir == object.Up {
			other = object.Down
		}
		if s.World.countLifts(other) >= limit {
			return
		}
		dir = other
	}
	spawnLiftDir(s, dir)
}

// spawnLiftDir appends a lift in dir, keeping the minimum gap to the rightmost lift.
func spawnLiftDir(s *State, dir object.LiftDir) {
	lt := s.Tuning.Lift

	x := config.PlayfieldWidth + 200 + s.rng.Float64()*400
	for _, l := range s.World.Lifts {
		x = math.Max(x, l.X+s.Tuning.Spawn.LiftMinGap)
	}

	kind := object.LiftNormal
	switch {
	case s.rng.Float64() < lt.GhostChance:
		kind = object.LiftGhost
	case s.rng.Float64() < lt.OccupiedChance:
		kind = object.LiftOccupied
	}
	s.World.Lifts = append(s.World.Lifts, object.NewLift(dir, kind, x))
}

// rollBonusValue returns 100, 500 or 1000 points.
func rollBonusValue(s *State) int {
	r := s.rng.Float64()
	switch {
	case r < 0.6:
		return 100
	case r < 0.9:
		return 500
	}
	return 1000
}

// spawnBonus appends a bonus at x on a random level and lane.
func spawnBonus(s *State, x float64) {
	level := object.Level(s.rng.Intn(2))
	lane := s.rng.Intn(config.LanesPerLevel)
	p := object.NewPickup(object.Bonus, level, lane, x, rollBonusValue(s), s.Tuning.Spawn.BonusTTL)
	s.World.Pickups = append(s.World.Pickups, p)
}

// shieldEligible reports whether no shield is live and enough run time has
// passed since the previous shield spawn (or since the run start).
func shieldEligible(s *State) bool {
	if s.World.countPickups(object.Shield) > 0 {
		return false
	}
	return s.Session.Elapsed-s.Session.lastShieldAt >= s.Tuning.Spawn.ShieldInterval
}

func spawnShield(s *State) {
	level := object.Level(s.rng.Intn(2))
	lane := s.rng.Intn(config.LanesPerLevel)
	x := spawnX + s.rng.Float64()*200
	s.World.Pickups = append(s.World.Pickups, object.NewPickup(object.Shield, level, lane, x, 0, s.Tuning.Spawn.ShieldTTL))
	s.Session.lastShieldAt = s.Session.Elapsed
}

func spawnUFO(s *State) {
	ot := s.Tuning.Obstacle
	y := object.UFOMinY + s.rng.Float64()*(object.UFOMaxY-object.UFOMinY)
	speed := ot.UFOSpeedMin + s.rng.Float64()*ot.UFOSpeedSpan
	s.World.UFOs = append(s.World.UFOs, object.NewUFO(spawnX, y, speed))
}

// ufoDrop rolls a bonus drop below u. Drops only happen while the UFO is
// clear of the player's reachable range, and respect the bonus cap.
func ufoDrop(s *State, u object.UFO) {
	if u.X <= config.PlayerMaxX+s.Player.W+40 {
		return
	}
	if s.World.countPickups(object.Bonus) >= s.Tuning.Spawn.MaxBonuses {
		return
	}
	if !s.chance(s.Tuning.Spawn.UFODropChance) {
		return
	}
	spawnBonus(s, u.X)
}

// spawnFallingTire drops a tire ahead of the player after a descent.
func spawnFallingTire(s *State) {
	p := s.Player
	lane := s.rng.Intn(config.LanesPerLevel)
	x := p.X + p.W + s.Tuning.Lift.TireDropLead
	speed := s.Tuning.Obstacle.SpeedMin + s.stage().SpeedBonus
	s.World.Obstacles = append(s.World.Obstacles, object.NewFallingTire(lane, x, speed))
}
