package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning holds the gameplay parameters that can be overridden from a YAML file.
// Rates are chances per second; speeds are logical pixels per second.
type Tuning struct {
	Player   PlayerTuning   `yaml:"player"`
	Jump     JumpTuning     `yaml:"jump"`
	Lift     LiftTuning     `yaml:"lift"`
	Scroll   ScrollTuning   `yaml:"scroll"`
	Turbo    TurboTuning    `yaml:"turbo"`
	Spawn    SpawnTuning    `yaml:"spawn"`
	Score    ScoreTuning    `yaml:"score"`
	Shield   ShieldTuning   `yaml:"shield"`
	Obstacle ObstacleTuning `yaml:"obstacle"`
	Stages   []StageTuning  `yaml:"stages"`
}

// PlayerTuning defines horizontal movement and collision tolerance.
type PlayerTuning struct {
	Speed        float64 `yaml:"speed"`         // Horizontal speed
	TurboMult    float64 `yaml:"turbo_mult"`    // Speed multiplier with turbo
	LaneEase     float64 `yaml:"lane_ease"`     // Exponential smoothing rate toward lane Y
	CollisionPad float64 `yaml:"collision_pad"` // Rect shrink per side for overlap tests
	ShieldNudge  float64 `yaml:"shield_nudge"`  // Pushback when a shield absorbs a hit
}

// JumpTuning defines the jump arc.
type JumpTuning struct {
	Velocity  float64 `yaml:"velocity"`  // Initial upward speed
	Gravity   float64 `yaml:"gravity"`   // Downward acceleration
	Cooldown  float64 `yaml:"cooldown"`  // Seconds after landing before the next jump
	Clearance float64 `yaml:"clearance"` // Height above which obstacles are cleared
}

// LiftTuning defines lift engagement and variants.
type LiftTuning struct {
	AutoDelayMs    int     `yaml:"auto_delay_ms"`  // Continuous eligibility before auto-trigger
	Duration       float64 `yaml:"duration"`       // Normal lift animation length
	GhostChance    float64 `yaml:"ghost_chance"`   // Chance a spawned lift is a ghost
	OccupiedChance float64 `yaml:"occupied_chance"`
	UpChance       float64 `yaml:"up_chance"`
	GhostAdvance   float64 `yaml:"ghost_advance"` // Forward jump on ghost teleport
	GhostParticles int     `yaml:"ghost_particles"`
	TireDropChance float64 `yaml:"tire_drop_chance"` // Chance a descent drops a tire
	TireDropLead   float64 `yaml:"tire_drop_lead"`   // Distance ahead of the player
}

// ScrollTuning defines how the world moves relative to the player.
type ScrollTuning struct {
	PlayerFactor      float64 `yaml:"player_factor"`       // Per-frame player speed factor without turbo
	PlayerFactorTurbo float64 `yaml:"player_factor_turbo"` // Per-frame player speed factor with turbo
	SameLevelShare    float64 `yaml:"same_level_share"`
	OtherLevelShare   float64 `yaml:"other_level_share"`
	LiftSpeed         float64 `yaml:"lift_speed"`
	LiftTurboBoost    float64 `yaml:"lift_turbo_boost"`
	PickupSpeed       float64 `yaml:"pickup_speed"`
}

// TurboTuning defines the energy gauge.
type TurboTuning struct {
	Max       float64 `yaml:"max"`
	Drain     float64 `yaml:"drain"`     // Per second while active
	Regen     float64 `yaml:"regen"`     // Per second while inactive
	Threshold float64 `yaml:"threshold"` // Boost applies only above this
}

// SpawnTuning defines population and spawn chances.
type SpawnTuning struct {
	MinObstacles    int     `yaml:"min_obstacles"`
	ObstacleRate    float64 `yaml:"obstacle_rate"`
	GapMin          float64 `yaml:"gap_min"`
	GapMax          float64 `yaml:"gap_max"`
	LiftRate        float64 `yaml:"lift_rate"`
	LiftMinGap      float64 `yaml:"lift_min_gap"`
	MaxLiftsPerDir  int     `yaml:"max_lifts_per_dir"`
	BonusRate       float64 `yaml:"bonus_rate"`
	MaxBonuses      int     `yaml:"max_bonuses"`
	BonusTTL        float64 `yaml:"bonus_ttl"`
	ShieldRate      float64 `yaml:"shield_rate"`
	ShieldInterval  float64 `yaml:"shield_interval"` // Minimum seconds between shield spawns
	ShieldTTL       float64 `yaml:"shield_ttl"`
	UFORate         float64 `yaml:"ufo_rate"`
	UFODropInterval float64 `yaml:"ufo_drop_interval"`
	UFODropChance   float64 `yaml:"ufo_drop_chance"`
	PreloadObstacle int     `yaml:"preload_obstacles"`
}

// ScoreTuning defines point awards.
type ScoreTuning struct {
	Overtake    int     `yaml:"overtake"`
	Lift        int     `yaml:"lift"`
	Ghost       int     `yaml:"ghost"`
	ComboWindow float64 `yaml:"combo_window"` // Seconds for three bonuses
	ComboCount  int     `yaml:"combo_count"`
	ComboMult   int     `yaml:"combo_mult"`
}

// ShieldTuning defines the shield pickup effect.
type ShieldTuning struct {
	Duration float64 `yaml:"duration"`
}

// ObstacleTuning defines obstacle motion.
type ObstacleTuning struct {
	SpeedMin     float64 `yaml:"speed_min"`
	SpeedSpread  float64 `yaml:"speed_spread"`
	BushSpin     float64 `yaml:"bush_spin"` // Radians per second
	BushBob      float64 `yaml:"bush_bob"`  // Bob amplitude
	TireSpin     float64 `yaml:"tire_spin"`
	TireGravity  float64 `yaml:"tire_gravity"`
	UFOSpeedMin  float64 `yaml:"ufo_speed_min"`
	UFOSpeedSpan float64 `yaml:"ufo_speed_span"`
}

// StageTuning defines one progression tier.
type StageTuning struct {
	Name       string  `yaml:"name"`
	Palette    int     `yaml:"palette"` // ANSI 256-colour index for the canvas
	AtSeconds  float64 `yaml:"at_seconds"`
	AtScore    int     `yaml:"at_score"`
	SpawnMult  float64 `yaml:"spawn_mult"`
	SpeedBonus float64 `yaml:"speed_bonus"`
	Block      float64 `yaml:"block"` // Obstacle type weights
	Bush       float64 `yaml:"bush"`
	Tire       float64 `yaml:"tire"`
}

// AutoLiftDelay returns the auto-trigger delay as an exact duration.
func (t Tuning) AutoLiftDelay() time.Duration {
	return time.Duration(t.Lift.AutoDelayMs) * time.Millisecond
}

// DefaultTuning returns the stock game balance.
func DefaultTuning() Tuning {
	return Tuning{
		Player: PlayerTuning{
			Speed:        180,
			TurboMult:    6.2 / 3.6,
			LaneEase:     10,
			CollisionPad: 4,
			ShieldNudge:  24,
		},
		Jump: JumpTuning{
			Velocity:  520,
			Gravity:   1600,
			Cooldown:  0.35,
			Clearance: 18,
		},
		Lift: LiftTuning{
			AutoDelayMs:    150,
			Duration:       0.9,
			GhostChance:    0.20,
			OccupiedChance: 0.12,
			UpChance:       0.65,
			GhostAdvance:   120,
			GhostParticles: 18,
			TireDropChance: 0.35,
			TireDropLead:   220,
		},
		Scroll: ScrollTuning{
			PlayerFactor:      3.6,
			PlayerFactorTurbo: 6.2,
			SameLevelShare:    0.4 * 60,
			OtherLevelShare:   0.2 * 60,
			LiftSpeed:         (3.2 + 1.2) * 60,
			LiftTurboBoost:    (6.2 - 3.6) * 0.6 * 60,
			PickupSpeed:       3.2 * 60,
		},
		Turbo: TurboTuning{
			Max:       100,
			Drain:     35,
			Regen:     15,
			Threshold: 5,
		},
		Spawn: SpawnTuning{
			MinObstacles:    6,
			ObstacleRate:    0.6,
			GapMin:          140,
			GapMax:          230,
			LiftRate:        0.48,
			LiftMinGap:      420,
			MaxLiftsPerDir:  2,
			BonusRate:       0.25,
			MaxBonuses:      2,
			BonusTTL:        8,
			ShieldRate:      0.05,
			ShieldInterval:  50,
			ShieldTTL:       10,
			UFORate:         0.03,
			UFODropInterval: 2.5,
			UFODropChance:   0.5,
			PreloadObstacle: 5,
		},
		Score: ScoreTuning{
			Overtake:    5,
			Lift:        50,
			Ghost:       200,
			ComboWindow: 4,
			ComboCount:  3,
			ComboMult:   2,
		},
		Shield: ShieldTuning{Duration: 6},
		Obstacle: ObstacleTuning{
			SpeedMin:     3.2 * 60,
			SpeedSpread:  1.4 * 60,
			BushSpin:     2,
			BushBob:      3,
			TireSpin:     6,
			TireGravity:  1400,
			UFOSpeedMin:  90,
			UFOSpeedSpan: 60,
		},
		Stages: []StageTuning{
			{Name: "Dusk", Palette: 45, SpawnMult: 1.0, SpeedBonus: 0, Block: 0.70, Bush: 0.15, Tire: 0.15},
			{Name: "Neon", Palette: 201, AtSeconds: 45, AtScore: 1500, SpawnMult: 1.25, SpeedBonus: 18, Block: 0.60, Bush: 0.20, Tire: 0.20},
			{Name: "Inferno", Palette: 208, AtSeconds: 90, AtScore: 4000, SpawnMult: 1.5, SpeedBonus: 36, Block: 0.50, Bush: 0.25, Tire: 0.25},
		},
	}
}

// LoadTuning overlays the YAML file at path on DefaultTuning.
// An empty path returns the defaults. A stages list sets the stage count;
// entry i overlays default stage i, entries past the defaults start from zero.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning %s: %w", path, err)
	}
	var raw struct {
		Stages []yaml.Node `yaml:"stages"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	defaults := t.Stages
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if raw.Stages != nil {
		stages := make([]StageTuning, len(raw.Stages))
		copy(stages, defaults)
		for i := range raw.Stages {
			if err := raw.Stages[i].Decode(&stages[i]); err != nil {
				return t, fmt.Errorf("parse tuning %s stage %d: %w", path, i, err)
			}
		}
		t.Stages = stages
	} else {
		t.Stages = defaults
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects parameter combinations the simulation cannot run with.
func (t Tuning) Validate() error {
	var errs []error
	if len(t.Stages) == 0 {
		errs = append(errs, errors.New("at least one stage is required"))
	}
	for i := 1; i < len(t.Stages); i++ {
		if t.Stages[i].AtSeconds < t.Stages[i-1].AtSeconds {
			errs = append(errs, fmt.Errorf("stage %d starts before stage %d", i, i-1))
		}
	}
	for i, s := range t.Stages {
		if s.Block+s.Bush+s.Tire <= 0 {
			errs = append(errs, fmt.Errorf("stage %d has no obstacle weights", i))
		}
		if s.Palette < 1 || s.Palette > 255 {
			errs = append(errs, fmt.Errorf("stage %d palette %d outside 1..255", i, s.Palette))
		}
	}
	if t.Lift.Duration <= 0 {
		errs = append(errs, errors.New("lift duration must be positive"))
	}
	if t.Lift.AutoDelayMs < 0 {
		errs = append(errs, errors.New("auto lift delay must not be negative"))
	}
	if t.Jump.Gravity <= 0 || t.Jump.Velocity <= 0 {
		errs = append(errs, errors.New("jump velocity and gravity must be positive"))
	}
	if t.Turbo.Max <= 0 || t.Turbo.Threshold < 0 || t.Turbo.Threshold >= t.Turbo.Max {
		errs = append(errs, errors.New("turbo threshold must lie in [0, max)"))
	}
	if t.Spawn.GapMax < t.Spawn.GapMin {
		errs = append(errs, errors.New("spawn gap_max must be >= gap_min"))
	}
	if t.Score.ComboCount < 1 {
		errs = append(errs, errors.New("combo count must be at least 1"))
	}
	return errors.Join(errs...)
}
