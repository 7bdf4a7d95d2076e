package loop

import (
	"testing"

	"github.com/tomz197/liftrunner/internal/input"
	"github.com/tomz197/liftrunner/internal/loop/config"
	"github.com/tomz197/liftrunner/internal/object"
	"github.com/tomz197/liftrunner/internal/physics"
)

func TestSpawnedObstaclesStartOffscreenWithGaps(t *testing.T) {
	s := NewState(config.DefaultTuning(), 3)
	s.Reset()

	prev := 0.0
	for i := 0; i < 40; i++ {
		spawnObstacle(s)
		o := s.World.Obstacles[len(s.World.Obstacles)-1]
		if o.X < spawnX {
			t.Fatalf("obstacle %d spawned at x=%v, inside the playfield", i, o.X)
		}
		if i > 0 && o.X-prev < s.Tuning.Spawn.GapMin-1e-9 {
			t.Fatalf("obstacle %d only %v behind the previous one", i, o.X-prev)
		}
		if physics.Overlaps(o.Rect(), s.Player.Rect()) {
			t.Fatalf("obstacle %d overlaps the player", i)
		}
		if o.Lane < 0 || o.Lane >= config.LanesPerLevel {
			t.Fatalf("obstacle lane = %d", o.Lane)
		}
		prev = o.X
	}
}

func TestStartRunPreloadsWorld(t *testing.T) {
	s := NewState(config.DefaultTuning(), 3)
	s.StartRun()
	if n := len(s.World.Obstacles); n != s.Tuning.Spawn.PreloadObstacle {
		t.Fatalf("obstacles = %d, want %d", n, s.Tuning.Spawn.PreloadObstacle)
	}
	if s.World.countLifts(object.Up) != 1 || s.World.countLifts(object.Down) != 1 {
		t.Fatalf("lifts = %+v, want one per direction", s.World.Lifts)
	}
	for _, l := range s.World.Lifts {
		if l.X < config.PlayfieldWidth {
			t.Fatalf("lift spawned on screen at %v", l.X)
		}
	}
}

func TestSpawnLiftRespectsCap(t *testing.T) {
	s := newTestState(t)
	for i := 0; i < 20; i++ {
		spawnLift(s)
	}
	limit := s.Tuning.Spawn.MaxLiftsPerDir
	if s.World.countLifts(object.Up) != limit || s.World.countLifts(object.Down) != limit {
		t.Fatalf("up=%d down=%d, want %d each",
			s.World.countLifts(object.Up), s.World.countLifts(object.Down), limit)
	}
	for i := 1; i < len(s.World.Lifts); i++ {
		gap := s.World.Lifts[i].X - s.World.Lifts[i-1].X
		if gap < s.Tuning.Spawn.LiftMinGap-1e-9 {
			t.Fatalf("lift %d only %v behind the previous one, want at least %v",
				i, gap, s.Tuning.Spawn.LiftMinGap)
		}
	}
}

func TestShieldSpawnInterval(t *testing.T) {
	s := newTestState(t)
	if shieldEligible(s) {
		t.Fatal("shield eligible at run start")
	}
	s.Session.Elapsed = s.Tuning.Spawn.ShieldInterval
	if !shieldEligible(s) {
		t.Fatal("shield not eligible after the interval")
	}
	spawnShield(s)
	if shieldEligible(s) {
		t.Fatal("shield eligible while one is live")
	}
	s.World.Pickups = s.World.Pickups[:0]
	if shieldEligible(s) {
		t.Fatal("shield eligible right after the previous spawn")
	}
}

func TestUFODropRespectsCap(t *testing.T) {
	s := newTestState(t)
	s.Tuning.Spawn.UFODropChance = 1
	far := object.NewUFO(config.PlayfieldWidth, object.UFOMinY, 100)

	for i := 0; i < 10; i++ {
		ufoDrop(s, far)
	}
	if n := s.World.countPickups(object.Bonus); n != s.Tuning.Spawn.MaxBonuses {
		t.Fatalf("bonuses = %d, want cap %d", n, s.Tuning.Spawn.MaxBonuses)
	}
}

func TestUFODoesNotDropNearPlayer(t *testing.T) {
	s := newTestState(t)
	s.Tuning.Spawn.UFODropChance = 1
	ufoDrop(s, object.NewUFO(config.PlayerMaxX, object.UFOMinY, 100))
	if len(s.World.Pickups) != 0 {
		t.Fatal("UFO dropped a bonus within the player's reach")
	}
}

func TestUFODropsWhileFlying(t *testing.T) {
	s := newTestState(t)
	s.Tuning.Spawn.UFODropChance = 1
	s.World.UFOs = append(s.World.UFOs, object.NewUFO(config.PlayfieldWidth, object.UFOMinY, 0))

	steps := int(s.Tuning.Spawn.UFODropInterval/frame.Seconds()) + 5
	for i := 0; i < steps; i++ {
		Step(s, input.Intent{}, frame)
	}
	if s.World.countPickups(object.Bonus) != 1 {
		t.Fatalf("bonuses = %d after one drop interval, want 1", s.World.countPickups(object.Bonus))
	}
}

func TestRollBonusValue(t *testing.T) {
	s := newTestState(t)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := rollBonusValue(s)
		if v != 100 && v != 500 && v != 1000 {
			t.Fatalf("bonus value %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Fatalf("values seen = %v, want all three", seen)
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	s := newTestState(t)
	s.World.Obstacles = append(s.World.Obstacles, object.NewObstacle(object.Bush, object.High, 0, 500, 0))
	s.World.Particles = object.Burst(s.World.Particles, s.rng, 10, 10, 3, 50, 1, object.ColorGhost)

	snap := s.Snapshot()
	snap.Player.X = -1
	snap.Obstacles[0].X = -1
	snap.Particles[0].X = -1
	snap.Session.Score = 999

	if s.Player.X == -1 || s.World.Obstacles[0].X == -1 || s.World.Particles[0].X == -1 {
		t.Fatal("snapshot shares memory with the state")
	}
	if s.Session.Score == 999 {
		t.Fatal("snapshot session aliases the state")
	}
	if snap.StageName != "Dusk" || snap.Palette == 0 {
		t.Fatalf("stage=%q palette=%d", snap.StageName, snap.Palette)
	}
}
