package loop

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/tomz197/liftrunner/internal/audio"
	"github.com/tomz197/liftrunner/internal/input"
	"github.com/tomz197/liftrunner/internal/loop/config"
	"github.com/tomz197/liftrunner/internal/object"
)

const frame = 10 * time.Millisecond

// quietTuning disables every random spawner so scenarios are fully scripted.
func quietTuning() config.Tuning {
	t := config.DefaultTuning()
	t.Spawn.MinObstacles = 0
	t.Spawn.ObstacleRate = 0
	t.Spawn.LiftRate = 0
	t.Spawn.BonusRate = 0
	t.Spawn.ShieldRate = 0
	t.Spawn.UFORate = 0
	t.Spawn.PreloadObstacle = 0
	t.Lift.TireDropChance = 0
	return t
}

func newTestState(t *testing.T) *State {
	t.Helper()
	s := NewState(quietTuning(), 1)
	s.Reset()
	return s
}

// addLift places a lift under the player's start position.
func addLift(s *State, dir object.LiftDir, kind object.LiftKind) *object.Lift {
	s.World.Lifts = append(s.World.Lifts, object.NewLift(dir, kind, s.Player.X-10))
	return &s.World.Lifts[len(s.World.Lifts)-1]
}

func hasCue(s *State, c audio.Cue) bool {
	return slices.Contains(s.Cues, c)
}

func TestLaneChangeStaysInBounds(t *testing.T) {
	s := newTestState(t)
	for i := 0; i < 5; i++ {
		Step(s, input.Intent{LaneUp: true}, frame)
	}
	if s.Player.Lane != config.LanesPerLevel-1 {
		t.Fatalf("lane = %d, want %d", s.Player.Lane, config.LanesPerLevel-1)
	}
	for i := 0; i < 5; i++ {
		Step(s, input.Intent{LaneDown: true}, frame)
	}
	if s.Player.Lane != 0 {
		t.Fatalf("lane = %d, want 0", s.Player.Lane)
	}
}

func TestLaneChangeIgnoredWhileLifting(t *testing.T) {
	s := newTestState(t)
	addLift(s, object.Up, object.LiftNormal)
	Step(s, input.Intent{Lift: true}, frame)
	if !s.Player.Lifting() {
		t.Fatal("expected lift to engage")
	}
	lane := s.Player.Lane
	Step(s, input.Intent{LaneUp: true}, frame)
	if s.Player.Lane != lane {
		t.Fatalf("lane changed while lifting: %d -> %d", lane, s.Player.Lane)
	}
}

func TestHorizontalMovementClamped(t *testing.T) {
	s := newTestState(t)
	for i := 0; i < 600; i++ {
		Step(s, input.Intent{Right: true}, frame)
	}
	if s.Player.X != config.PlayerMaxX {
		t.Fatalf("x = %v, want %v", s.Player.X, config.PlayerMaxX)
	}
	for i := 0; i < 600; i++ {
		Step(s, input.Intent{Left: true}, frame)
	}
	if s.Player.X != config.PlayerMinX {
		t.Fatalf("x = %v, want %v", s.Player.X, config.PlayerMinX)
	}
}

func TestUpLiftCarriesPlayerToHighLevel(t *testing.T) {
	s := newTestState(t)
	lift := addLift(s, object.Up, object.LiftNormal)

	Step(s, input.Intent{Lift: true}, frame)
	if !s.Player.Lifting() {
		t.Fatal("expected lifting after lift request")
	}
	if lift.Active {
		t.Fatal("lift still active after engagement")
	}
	if !hasCue(s, audio.CueLift) {
		t.Fatalf("cues = %v, want lift cue", s.Cues)
	}

	for i := 0; i < 200 && s.Player.Lifting(); i++ {
		Step(s, input.Intent{}, frame)
	}
	p := s.Player
	if !p.Grounded() {
		t.Fatal("lift never finished")
	}
	if p.Level != object.High {
		t.Fatalf("level = %v, want high", p.Level)
	}
	if p.Y != p.RestingY() {
		t.Fatalf("y = %v, want resting %v", p.Y, p.RestingY())
	}
	want := s.Tuning.Score.Lift + int(s.Session.Elapsed)
	if s.Session.Score != want {
		t.Fatalf("score = %d, want %d", s.Session.Score, want)
	}
}

func TestLiftIsOneShot(t *testing.T) {
	s := newTestState(t)
	s.Tuning.Scroll.LiftSpeed = 0
	addLift(s, object.Up, object.LiftNormal)
	Step(s, input.Intent{Lift: true}, frame)

	// Put the player back on the source level, still over the used lift.
	*s.Player = object.NewPlayer()
	Step(s, input.Intent{Lift: true}, frame)
	if !s.Player.Grounded() {
		t.Fatal("used lift engaged a second time")
	}
	for i := 0; i < 30; i++ {
		Step(s, input.Intent{}, frame)
	}
	if !s.Player.Grounded() {
		t.Fatal("used lift auto-engaged")
	}
}

func TestLiftOnOtherLevelIgnored(t *testing.T) {
	s := newTestState(t)
	addLift(s, object.Down, object.LiftNormal)
	Step(s, input.Intent{Lift: true}, frame)
	if !s.Player.Grounded() {
		t.Fatal("down lift engaged from the low level")
	}
}

func TestLiftRequiresLiftLane(t *testing.T) {
	s := newTestState(t)
	addLift(s, object.Up, object.LiftNormal)
	Step(s, input.Intent{LaneUp: true, Lift: true}, frame)
	if !s.Player.Grounded() {
		t.Fatal("lift engaged from a different lane")
	}
}

func TestAutoLiftAfterDelay(t *testing.T) {
	s := newTestState(t)
	addLift(s, object.Up, object.LiftNormal)

	frames := int(s.Tuning.AutoLiftDelay() / frame)
	for i := 1; i < frames; i++ {
		Step(s, input.Intent{}, frame)
		if !s.Player.Grounded() {
			t.Fatalf("auto lift engaged early on frame %d", i)
		}
	}
	Step(s, input.Intent{}, frame)
	if !s.Player.Lifting() {
		t.Fatalf("auto lift did not engage on frame %d", frames)
	}
}

func TestAutoLiftTimerResetsWhenIneligible(t *testing.T) {
	s := newTestState(t)
	s.Tuning.Scroll.LiftSpeed = 0
	addLift(s, object.Up, object.LiftNormal)

	for i := 0; i < 10; i++ {
		Step(s, input.Intent{}, frame)
	}
	Step(s, input.Intent{LaneUp: true}, frame)
	if s.Session.LiftEligible != 0 {
		t.Fatalf("eligibility = %v after leaving the lane, want 0", s.Session.LiftEligible)
	}
	Step(s, input.Intent{LaneDown: true}, frame)

	frames := int(s.Tuning.AutoLiftDelay() / frame)
	for i := 2; i < frames; i++ {
		Step(s, input.Intent{}, frame)
		if !s.Player.Grounded() {
			t.Fatalf("auto lift engaged after %d eligible frames", i)
		}
	}
	Step(s, input.Intent{}, frame)
	if !s.Player.Lifting() {
		t.Fatal("auto lift did not engage after the timer restarted")
	}
}

func TestGhostLiftTeleportsImmediately(t *testing.T) {
	s := newTestState(t)
	addLift(s, object.Up, object.LiftGhost)
	startX := s.Player.X

	Step(s, input.Intent{Lift: true}, frame)
	p := s.Player
	if !p.Grounded() || p.Level != object.High {
		t.Fatalf("mode=%v level=%v, want grounded on high", p.Vertical.Mode, p.Level)
	}
	if p.Y != p.RestingY() {
		t.Fatalf("y = %v, want %v", p.Y, p.RestingY())
	}
	if want := startX + s.Tuning.Lift.GhostAdvance; p.X != want {
		t.Fatalf("x = %v, want %v", p.X, want)
	}
	if s.Session.Score != s.Tuning.Score.Ghost {
		t.Fatalf("score = %d, want %d", s.Session.Score, s.Tuning.Score.Ghost)
	}
	if !hasCue(s, audio.CueGhost) {
		t.Fatalf("cues = %v, want ghost cue", s.Cues)
	}
	if len(s.World.Particles) == 0 {
		t.Fatal("ghost teleport spawned no particles")
	}
}

func TestOccupiedLiftEndsRun(t *testing.T) {
	s := newTestState(t)
	addLift(s, object.Up, object.LiftOccupied)

	Step(s, input.Intent{Lift: true}, frame)
	if s.Player.Alive || s.Session.Running {
		t.Fatal("occupied lift did not end the run")
	}
	if s.Session.EndCause != "occupied lift" {
		t.Fatalf("cause = %q", s.Session.EndCause)
	}
	if !hasCue(s, audio.CueCrash) {
		t.Fatalf("cues = %v, want crash", s.Cues)
	}
}

func TestStepIsNoOpAfterRunEnds(t *testing.T) {
	s := newTestState(t)
	s.World.Obstacles = append(s.World.Obstacles,
		object.NewObstacle(object.Block, object.Low, s.Player.Lane, s.Player.X+10, 0))
	Step(s, input.Intent{}, frame)
	if s.Player.Alive {
		t.Fatal("block collision did not end the run")
	}
	if s.Session.EndCause != "hit block" {
		t.Fatalf("cause = %q", s.Session.EndCause)
	}

	before := s.Session
	x := s.Player.X
	Step(s, input.Intent{Right: true, Turbo: true, LaneUp: true}, frame)
	if s.Session != before || s.Player.X != x {
		t.Fatal("step mutated state after the run ended")
	}
	if len(s.Cues) != 0 {
		t.Fatalf("cues = %v after run ended, want none", s.Cues)
	}
}

func TestShieldAbsorbsOneHit(t *testing.T) {
	s := newTestState(t)
	s.Player.ShieldTime = 5
	startX := s.Player.X
	s.World.Obstacles = append(s.World.Obstacles,
		object.NewObstacle(object.Block, object.Low, s.Player.Lane, s.Player.X+10, 0))

	Step(s, input.Intent{}, frame)
	if !s.Player.Alive {
		t.Fatal("shielded player died")
	}
	if s.Player.ShieldTime != 0 {
		t.Fatalf("shield = %v, want 0", s.Player.ShieldTime)
	}
	if len(s.World.Obstacles) != 0 {
		t.Fatal("absorbed obstacle was not removed")
	}
	if want := startX - s.Tuning.Player.ShieldNudge; s.Player.X != want {
		t.Fatalf("x = %v, want %v", s.Player.X, want)
	}
	if !hasCue(s, audio.CueShieldBreak) {
		t.Fatalf("cues = %v, want shield break", s.Cues)
	}

	s.World.Obstacles = append(s.World.Obstacles,
		object.NewObstacle(object.Bush, object.Low, s.Player.Lane, s.Player.X+10, 0))
	Step(s, input.Intent{}, frame)
	if s.Player.Alive {
		t.Fatal("second hit without shield did not end the run")
	}
}

func TestObstacleOnOtherLevelIgnored(t *testing.T) {
	s := newTestState(t)
	s.World.Obstacles = append(s.World.Obstacles,
		object.NewObstacle(object.Block, object.High, s.Player.Lane, s.Player.X+10, 0))
	Step(s, input.Intent{}, frame)
	if !s.Player.Alive {
		t.Fatal("obstacle on the other level killed the player")
	}
}

func TestJumpClearsTire(t *testing.T) {
	s := newTestState(t)
	Step(s, input.Intent{Jump: true}, frame)
	if !s.Player.Jumping() {
		t.Fatal("jump did not start")
	}
	if !hasCue(s, audio.CueJump) {
		t.Fatalf("cues = %v, want jump", s.Cues)
	}
	for i := 0; i < 20 && s.Player.JumpHeight() <= s.Tuning.Jump.Clearance; i++ {
		Step(s, input.Intent{}, frame)
	}

	s.World.Obstacles = append(s.World.Obstacles,
		object.NewObstacle(object.Tire, object.Low, s.Player.Lane, s.Player.X+10, 0))
	Step(s, input.Intent{}, frame)
	if !s.Player.Alive {
		t.Fatal("tire hit a player above the clearance height")
	}
}

func TestJumpAndLiftAreExclusive(t *testing.T) {
	s := newTestState(t)
	s.Tuning.Scroll.LiftSpeed = 0
	Step(s, input.Intent{Jump: true}, frame)
	addLift(s, object.Up, object.LiftNormal)

	Step(s, input.Intent{Lift: true}, frame)
	if !s.Player.Jumping() {
		t.Fatalf("mode = %v while airborne, want jumping", s.Player.Vertical.Mode)
	}

	*s.Player = object.NewPlayer()
	s.World.Lifts = s.World.Lifts[:0]
	addLift(s, object.Up, object.LiftNormal)
	Step(s, input.Intent{Lift: true}, frame)
	Step(s, input.Intent{Jump: true}, frame)
	if !s.Player.Lifting() {
		t.Fatalf("mode = %v after jump request while lifting, want lifting", s.Player.Vertical.Mode)
	}
}

func TestJumpCooldownAfterLanding(t *testing.T) {
	s := newTestState(t)
	Step(s, input.Intent{Jump: true}, frame)
	for i := 0; i < 200 && s.Player.Jumping(); i++ {
		Step(s, input.Intent{}, frame)
	}
	if !s.Player.Grounded() {
		t.Fatal("player never landed")
	}
	if s.Player.JumpCooldown <= 0 {
		t.Fatal("landing did not start the cooldown")
	}
	Step(s, input.Intent{Jump: true}, frame)
	if !s.Player.Grounded() {
		t.Fatal("jumped during cooldown")
	}
}

func TestOvertakeScoredOnce(t *testing.T) {
	s := newTestState(t)
	o := object.NewObstacle(object.Block, object.High, s.Player.Lane, 0, 0)
	o.X = s.Player.X - o.W - 1
	s.World.Obstacles = append(s.World.Obstacles, o)

	Step(s, input.Intent{}, frame)
	if s.Session.Overtakes != 1 || s.Session.Score != s.Tuning.Score.Overtake {
		t.Fatalf("overtakes=%d score=%d after first pass", s.Session.Overtakes, s.Session.Score)
	}
	Step(s, input.Intent{}, frame)
	if s.Session.Overtakes != 1 || s.Session.Score != s.Tuning.Score.Overtake {
		t.Fatalf("overtakes=%d score=%d, obstacle scored twice", s.Session.Overtakes, s.Session.Score)
	}
}

func TestTimeScoresWholeSeconds(t *testing.T) {
	s := newTestState(t)
	for i := 0; i < 250; i++ {
		Step(s, input.Intent{}, frame)
	}
	if s.Session.Score != 2 {
		t.Fatalf("score = %d after 2.5s, want 2", s.Session.Score)
	}
}

func TestTurboNeedsEnergy(t *testing.T) {
	s := newTestState(t)
	Step(s, input.Intent{Turbo: true}, frame)
	if !s.Session.TurboActive || !hasCue(s, audio.CueTurboOn) {
		t.Fatal("turbo did not activate with a full gauge")
	}

	s.Session.TurboEnergy = s.Tuning.Turbo.Threshold - 1
	Step(s, input.Intent{Turbo: true}, frame)
	if s.Session.TurboActive {
		t.Fatal("turbo active below the threshold")
	}
	if !hasCue(s, audio.CueTurboOff) {
		t.Fatalf("cues = %v, want turbo off", s.Cues)
	}
}

func TestTurboBoostsSpeed(t *testing.T) {
	plain := newTestState(t)
	boosted := newTestState(t)
	Step(plain, input.Intent{Right: true}, frame)
	Step(boosted, input.Intent{Right: true, Turbo: true}, frame)

	dPlain := plain.Player.X - config.PlayerStartX
	dBoost := boosted.Player.X - config.PlayerStartX
	if math.Abs(dBoost-dPlain*plain.Tuning.Player.TurboMult) > 1e-9 {
		t.Fatalf("turbo moved %v, plain %v", dBoost, dPlain)
	}
}

func TestTurboEnergyStaysInBounds(t *testing.T) {
	s := newTestState(t)
	full := s.Tuning.Turbo.Max
	for i := 0; i < 1200; i++ {
		Step(s, input.Intent{Turbo: i < 400}, frame)
		if e := s.Session.TurboEnergy; e < 0 || e > full {
			t.Fatalf("energy = %v on frame %d", e, i)
		}
	}
	if s.Session.TurboEnergy != full {
		t.Fatalf("energy = %v after regenerating, want %v", s.Session.TurboEnergy, full)
	}
}

func TestBonusPickupScores(t *testing.T) {
	s := newTestState(t)
	s.World.Pickups = append(s.World.Pickups,
		object.NewPickup(object.Bonus, object.Low, s.Player.Lane, s.Player.X+10, 500, 8))

	Step(s, input.Intent{}, frame)
	if s.Session.Score != 500 {
		t.Fatalf("score = %d, want 500", s.Session.Score)
	}
	if len(s.World.Pickups) != 0 {
		t.Fatal("collected pickup was not removed")
	}
	if !hasCue(s, audio.CuePickup) {
		t.Fatalf("cues = %v, want pickup", s.Cues)
	}
}

func TestShieldPickupGrantsShield(t *testing.T) {
	s := newTestState(t)
	s.World.Pickups = append(s.World.Pickups,
		object.NewPickup(object.Shield, object.Low, s.Player.Lane, s.Player.X+10, 0, 10))

	Step(s, input.Intent{}, frame)
	if s.Player.ShieldTime != s.Tuning.Shield.Duration {
		t.Fatalf("shield = %v, want %v", s.Player.ShieldTime, s.Tuning.Shield.Duration)
	}
}

func TestComboDoublesThirdBonus(t *testing.T) {
	s := newTestState(t)
	for i := 0; i < 3; i++ {
		s.Session.Elapsed = float64(i)
		collectBonus(s, 100, 0, 0)
	}
	if s.Session.Score != 400 {
		t.Fatalf("score = %d, want 400", s.Session.Score)
	}
	if s.Session.Combo.Count != 0 {
		t.Fatalf("combo = %d after doubling, want reset", s.Session.Combo.Count)
	}

	s.Session.Elapsed = 3
	collectBonus(s, 100, 0, 0)
	if s.Session.Combo.Count != 1 {
		t.Fatalf("combo = %d, want 1", s.Session.Combo.Count)
	}
}

func TestComboWindowExpires(t *testing.T) {
	s := newTestState(t)
	for _, at := range []float64{0, 2, 5} {
		s.Session.Elapsed = at
		collectBonus(s, 100, 0, 0)
	}
	if s.Session.Score != 300 {
		t.Fatalf("score = %d, want 300 without a combo", s.Session.Score)
	}
	if s.Session.Combo.Count != 2 {
		t.Fatalf("combo = %d, want 2", s.Session.Combo.Count)
	}
}

func TestStageAdvancesOnScore(t *testing.T) {
	s := newTestState(t)
	s.Session.Score = s.Tuning.Stages[1].AtScore
	Step(s, input.Intent{}, frame)
	if s.Session.Stage != 1 {
		t.Fatalf("stage = %d, want 1", s.Session.Stage)
	}
	if s.Session.StageMessage != config.StageMessageSeconds {
		t.Fatalf("stage message = %v", s.Session.StageMessage)
	}
	if !hasCue(s, audio.CueStage) {
		t.Fatalf("cues = %v, want stage", s.Cues)
	}
}

func TestStageAdvancesOnTime(t *testing.T) {
	s := newTestState(t)
	s.Session.Elapsed = s.Tuning.Stages[1].AtSeconds - 0.005
	s.Session.secondsScored = int(s.Session.Elapsed)
	Step(s, input.Intent{}, frame)
	if s.Session.Stage != 1 {
		t.Fatalf("stage = %d, want 1", s.Session.Stage)
	}
	if s.StageName() != "Neon" {
		t.Fatalf("stage name = %q", s.StageName())
	}
}

func TestStageSkipsToHighestMet(t *testing.T) {
	s := newTestState(t)
	s.Session.Score = s.Tuning.Stages[2].AtScore
	Step(s, input.Intent{}, frame)
	if s.Session.Stage != 2 {
		t.Fatalf("stage = %d, want 2", s.Session.Stage)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	s := newTestState(t)
	Step(s, input.Intent{Pause: true}, frame)
	if !s.Session.Paused || s.Session.Elapsed != 0 {
		t.Fatalf("paused=%v elapsed=%v", s.Session.Paused, s.Session.Elapsed)
	}
	Step(s, input.Intent{Right: true}, frame)
	if s.Player.X != config.PlayerStartX {
		t.Fatal("player moved while paused")
	}
	Step(s, input.Intent{Pause: true}, frame)
	if s.Session.Paused || s.Session.Elapsed == 0 {
		t.Fatal("unpause did not resume the simulation")
	}
}

func TestDownLiftMayDropTire(t *testing.T) {
	s := newTestState(t)
	s.Tuning.Lift.TireDropChance = 1
	s.Player.Level = object.High
	s.Player.Y = s.Player.RestingY()
	addLift(s, object.Down, object.LiftNormal)

	Step(s, input.Intent{Lift: true}, frame)
	if len(s.World.Obstacles) != 1 {
		t.Fatalf("obstacles = %d, want one falling tire", len(s.World.Obstacles))
	}
	o := s.World.Obstacles[0]
	if o.Kind != object.Tire || !o.Falling {
		t.Fatalf("obstacle = %v falling=%v", o.Kind, o.Falling)
	}
	if o.X <= s.Player.X+s.Player.W {
		t.Fatalf("tire at %v is not ahead of the player", o.X)
	}
}

func TestResetKeepsBest(t *testing.T) {
	s := newTestState(t)
	s.addScore(300)
	if !s.Session.BestChanged || s.Session.Best != 300 {
		t.Fatalf("best=%d changed=%v", s.Session.Best, s.Session.BestChanged)
	}
	s.Reset()
	if s.Session.Score != 0 || s.Session.Best != 300 {
		t.Fatalf("score=%d best=%d after reset", s.Session.Score, s.Session.Best)
	}
	if s.Session.TurboEnergy != s.Tuning.Turbo.Max {
		t.Fatalf("energy = %v after reset", s.Session.TurboEnergy)
	}
}

func TestLongRunKeepsInvariants(t *testing.T) {
	s := NewState(config.DefaultTuning(), 7)
	s.StartRun()

	pattern := []input.Intent{
		{Right: true},
		{LaneUp: true},
		{Turbo: true, Right: true},
		{Jump: true},
		{Left: true},
		{LaneDown: true},
		{Lift: true},
		{},
	}
	lastScore := 0
	for i := 0; i < 3000 && s.Player.Alive; i++ {
		Step(s, pattern[(i/7)%len(pattern)], frame)

		p := s.Player
		if s.Session.Score < lastScore {
			t.Fatalf("score dropped from %d to %d on frame %d", lastScore, s.Session.Score, i)
		}
		lastScore = s.Session.Score
		if p.Lane < 0 || p.Lane >= config.LanesPerLevel {
			t.Fatalf("lane = %d on frame %d", p.Lane, i)
		}
		if p.X < config.PlayerMinX || p.X > config.PlayerMaxX {
			t.Fatalf("x = %v on frame %d", p.X, i)
		}
		if s.Session.Best < s.Session.Score {
			t.Fatalf("best %d below score %d", s.Session.Best, s.Session.Score)
		}
		if s.World.countPickups(object.Bonus) > s.Tuning.Spawn.MaxBonuses {
			t.Fatalf("too many bonuses on frame %d", i)
		}
		for _, d := range []object.LiftDir{object.Up, object.Down} {
			if n := s.World.countLifts(d); n > s.Tuning.Spawn.MaxLiftsPerDir+1 {
				t.Fatalf("%d %v lifts on frame %d", n, d, i)
			}
		}
	}
}

func TestDecayOnlyAnimatesEffects(t *testing.T) {
	s := newTestState(t)
	s.World.Obstacles = append(s.World.Obstacles,
		object.NewObstacle(object.Block, object.Low, s.Player.Lane, s.Player.X+10, 0))
	Step(s, input.Intent{}, frame)
	if len(s.World.Particles) == 0 {
		t.Fatal("crash spawned no particles")
	}
	ox := s.World.Obstacles[0].X

	for i := 0; i < 200; i++ {
		Decay(s, frame)
	}
	if len(s.World.Particles) != 0 {
		t.Fatalf("%d particles left after decay", len(s.World.Particles))
	}
	if s.World.Obstacles[0].X != ox {
		t.Fatal("decay moved an obstacle")
	}
}
