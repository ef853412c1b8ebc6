package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/bossmind/internal/model"
)

// Agent is the tuning profile of one hostile agent.
// All durations are in seconds, distances in world units.
type Agent struct {
	Name      string  `yaml:"name"`
	Class     string  `yaml:"class"` // "basic" | "boss"
	MaxHealth float64 `yaml:"max_health"`
	Armor     float64 `yaml:"armor"`

	Spawn      SpawnConfig      `yaml:"spawn"`
	Movement   MovementConfig   `yaml:"movement"`
	Perception PerceptionConfig `yaml:"perception"`
	Timings    TimingConfig     `yaml:"timings"`
	Shield     ShieldConfig     `yaml:"shield"`
	Stagger    StaggerConfig    `yaml:"stagger"`
	Rage       RageConfig       `yaml:"rage"`
	Phases     PhaseConfig      `yaml:"phases"`
	HyperArmor HyperArmorConfig `yaml:"hyper_armor"`
	Counter    CounterConfig    `yaml:"counter"`
	Teleport   TeleportConfig   `yaml:"teleport"`
	Combo      ComboConfig      `yaml:"combo"`
	Learning   LearningConfig   `yaml:"learning"`
	Prediction PredictionConfig `yaml:"prediction"`

	Attacks []AttackConfig `yaml:"attacks"`
}

// SpawnConfig places the agent in the arena.
type SpawnConfig struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	PatrolMin float64 `yaml:"patrol_min"`
	PatrolMax float64 `yaml:"patrol_max"`
}

type MovementConfig struct {
	PatrolEnabled bool    `yaml:"patrol_enabled"`
	ChaseEnabled  bool    `yaml:"chase_enabled"`
	PatrolSpeed   float64 `yaml:"patrol_speed"`
	ChaseSpeed    float64 `yaml:"chase_speed"`
	// StopDistance is how close the agent walks before holding position.
	StopDistance float64 `yaml:"stop_distance"`
	// EdgeProbe is how far ahead the ground probe looks.
	EdgeProbe float64 `yaml:"edge_probe"`
	// StuckTicks consecutive stuck detections force a reposition.
	StuckTicks   int     `yaml:"stuck_ticks"`
	StuckEpsilon float64 `yaml:"stuck_epsilon"`
}

type PerceptionConfig struct {
	DetectRadius float64 `yaml:"detect_radius"`
	// LoseRadius must be >= DetectRadius; the gap is the hysteresis band.
	LoseRadius float64 `yaml:"lose_radius"`
	// FOVDegrees is the full cone width; 360 means omnidirectional.
	FOVDegrees float64 `yaml:"fov_degrees"`
	RequireLOS bool    `yaml:"require_los"`
	LoseGrace  float64 `yaml:"lose_grace"`
	EyeHeight  float64 `yaml:"eye_height"`
}

type TimingConfig struct {
	IdleDwell    float64 `yaml:"idle_dwell"`
	AlertDwell   float64 `yaml:"alert_dwell"`
	HurtRecovery float64 `yaml:"hurt_recovery"`
	DeathLinger  float64 `yaml:"death_linger"`
}

type ShieldConfig struct {
	MaxHits    int     `yaml:"max_hits"`
	RegenDelay float64 `yaml:"regen_delay"`
	// RegenRate is hits restored per second once the delay elapsed.
	RegenRate float64 `yaml:"regen_rate"`
}

type StaggerConfig struct {
	Threshold        float64 `yaml:"threshold"`
	Duration         float64 `yaml:"duration"`
	Immunity         float64 `yaml:"immunity"`
	DamageMultiplier float64 `yaml:"damage_multiplier"`
}

type RageConfig struct {
	// Threshold is a health fraction; 0 disables rage.
	Threshold          float64 `yaml:"threshold"`
	DamageMultiplier   float64 `yaml:"damage_multiplier"`
	SpeedMultiplier    float64 `yaml:"speed_multiplier"`
	CooldownMultiplier float64 `yaml:"cooldown_multiplier"`
	ArmorPenalty       float64 `yaml:"armor_penalty"`
}

type PhaseConfig struct {
	Phase2Threshold float64 `yaml:"phase2_threshold"`
	Phase3Threshold float64 `yaml:"phase3_threshold"`
	// ArmorBonus is indexed by phase-1.
	ArmorBonus         []float64 `yaml:"armor_bonus"`
	SpeedMultiplier    float64   `yaml:"speed_multiplier"`
	CooldownMultiplier float64   `yaml:"cooldown_multiplier"`
	TransitionDuration float64   `yaml:"transition_duration"`
	KnockbackRadius    float64   `yaml:"knockback_radius"`
	KnockbackForce     float64   `yaml:"knockback_force"`
}

type HyperArmorConfig struct {
	DamageReduction float64 `yaml:"damage_reduction"`
}

type CounterConfig struct {
	Enabled        bool    `yaml:"enabled"`
	Range          float64 `yaml:"range"`
	SpeedThreshold float64 `yaml:"speed_threshold"`
	Chance         float64 `yaml:"chance"`
	Cooldown       float64 `yaml:"cooldown"`
	Damage         float64 `yaml:"damage"`
	Windup         float64 `yaml:"windup"`
	Recovery       float64 `yaml:"recovery"`
	Reach          float64 `yaml:"reach"`
}

type TeleportConfig struct {
	// DamageThreshold of damage taken within DamageWindow triggers a reactive teleport.
	DamageThreshold float64 `yaml:"damage_threshold"`
	DamageWindow    float64 `yaml:"damage_window"`
	BehindOffset    float64 `yaml:"behind_offset"`
}

type ComboConfig struct {
	MaxChain   int     `yaml:"max_chain"`
	Window     float64 `yaml:"window"`
	DamageStep float64 `yaml:"damage_step"`
}

type LearningConfig struct {
	MemoryDuration float64 `yaml:"memory_duration"`
	SampleInterval float64 `yaml:"sample_interval"`
	MinSamples     int     `yaml:"min_samples"`
	LearningRate   float64 `yaml:"learning_rate"`
	// MoveThreshold is the horizontal speed that counts as a dodge.
	MoveThreshold float64 `yaml:"move_threshold"`
	// JumpEvadeThreshold swaps dash for a ranged attack above this jump frequency.
	JumpEvadeThreshold float64 `yaml:"jump_evade_threshold"`
	// DodgeThreshold swaps a projectile for a bomb above this dodge ratio.
	DodgeThreshold float64 `yaml:"dodge_threshold"`
}

type PredictionConfig struct {
	SampleInterval float64 `yaml:"sample_interval"`
	Smoothing      float64 `yaml:"smoothing"`
	PredictionTime float64 `yaml:"prediction_time"`
	Accuracy       float64 `yaml:"accuracy"`
	DodgeBias      float64 `yaml:"dodge_bias"`
	JumpBias       float64 `yaml:"jump_bias"`
}

// AttackConfig is the static part of an attack profile.
type AttackConfig struct {
	Kind     string  `yaml:"kind"`
	Cooldown float64 `yaml:"cooldown"`
	MinRange float64 `yaml:"min_range"`
	MaxRange float64 `yaml:"max_range"`
	Damage   float64 `yaml:"damage"`
	MinPhase int     `yaml:"min_phase"`
	// Chance is the per-tick draw for special abilities (ignored for baseline attacks).
	Chance     float64 `yaml:"chance"`
	Windup     float64 `yaml:"windup"`
	Active     float64 `yaml:"active"`
	Recovery   float64 `yaml:"recovery"`
	HyperArmor bool    `yaml:"hyper_armor"`
	Speed      float64 `yaml:"speed"`
	Radius     float64 `yaml:"radius"`
	Count      int     `yaml:"count"`
	Knockback  float64 `yaml:"knockback"`
}

// UnmarshalYAML starts from the class defaults so documents only need to list overrides.
func (a *Agent) UnmarshalYAML(n *yaml.Node) error {
	var head struct {
		Class string `yaml:"class"`
	}
	if err := n.Decode(&head); err != nil {
		return err
	}

	type plain Agent
	base := DefaultBasic()
	if head.Class == model.ClassBoss.String() {
		base = DefaultBoss()
	}
	p := plain(base)
	if err := n.Decode(&p); err != nil {
		return err
	}
	*a = Agent(p)
	return nil
}

// Validate checks thresholds, bands and attack kinds.
func (a Agent) Validate() error {
	var errs []error
	if _, ok := model.ParseClass(a.Class); !ok {
		errs = append(errs, fmt.Errorf("unknown class %q", a.Class))
	}
	if a.MaxHealth <= 0 {
		errs = append(errs, errors.New("max_health must be positive"))
	}
	if a.Armor < 0 || a.Armor > 0.95 {
		errs = append(errs, fmt.Errorf("armor %.2f outside [0,0.95]", a.Armor))
	}
	if a.Perception.LoseRadius < a.Perception.DetectRadius {
		errs = append(errs, fmt.Errorf("lose_radius %.2f below detect_radius %.2f",
			a.Perception.LoseRadius, a.Perception.DetectRadius))
	}
	if p := a.Phases; p.Phase2Threshold > 0 && p.Phase3Threshold >= p.Phase2Threshold {
		errs = append(errs, fmt.Errorf("phase3_threshold %.2f must be below phase2_threshold %.2f",
			p.Phase3Threshold, p.Phase2Threshold))
	}
	if a.Spawn.PatrolMax < a.Spawn.PatrolMin {
		errs = append(errs, errors.New("patrol_max below patrol_min"))
	}
	seen := make(map[model.AttackKind]bool, len(a.Attacks))
	for _, atk := range a.Attacks {
		kind, ok := model.ParseAttackKind(atk.Kind)
		if !ok || kind == model.AttackNone || kind == model.AttackCounter {
			errs = append(errs, fmt.Errorf("unknown attack kind %q", atk.Kind))
			continue
		}
		if seen[kind] {
			errs = append(errs, fmt.Errorf("attack %q listed twice", atk.Kind))
		}
		seen[kind] = true
		if atk.MaxRange < atk.MinRange {
			errs = append(errs, fmt.Errorf("attack %q: max_range below min_range", atk.Kind))
		}
		if atk.Cooldown < 0 {
			errs = append(errs, fmt.Errorf("attack %q: negative cooldown", atk.Kind))
		}
	}
	return errors.Join(errs...)
}

// DefaultBasic returns the profile of a plain patrolling grunt.
func DefaultBasic() Agent {
	return Agent{
		Name:      "grunt",
		Class:     model.ClassBasic.String(),
		MaxHealth: 100,
		Armor:     0,
		Spawn:     SpawnConfig{X: 0, PatrolMin: -5, PatrolMax: 5},
		Movement: MovementConfig{
			PatrolEnabled: true,
			ChaseEnabled:  true,
			PatrolSpeed:   1.5,
			ChaseSpeed:    3,
			StopDistance:  1.2,
			EdgeProbe:     0.6,
			StuckTicks:    30,
			StuckEpsilon:  0.001,
		},
		Perception: PerceptionConfig{
			DetectRadius: 8,
			LoseRadius:   11,
			FOVDegrees:   150,
			RequireLOS:   true,
			LoseGrace:    2,
			EyeHeight:    1,
		},
		Timings: TimingConfig{
			IdleDwell:    1.5,
			AlertDwell:   0.5,
			HurtRecovery: 0.4,
			DeathLinger:  1,
		},
		Stagger: StaggerConfig{DamageMultiplier: 1},
		Rage:    RageConfig{DamageMultiplier: 1, SpeedMultiplier: 1, CooldownMultiplier: 1},
		Phases: PhaseConfig{
			ArmorBonus:         []float64{0, 0, 0},
			SpeedMultiplier:    1,
			CooldownMultiplier: 1,
		},
		Combo: ComboConfig{MaxChain: 2, Window: 0.8, DamageStep: 0.2},
		Learning: LearningConfig{
			MemoryDuration: 6,
			SampleInterval: 0.2,
			MinSamples:     10,
			LearningRate:   0.2,
			MoveThreshold:  0.5,
		},
		Prediction: PredictionConfig{
			SampleInterval: 0.1,
			Smoothing:      0.4,
			PredictionTime: 0.3,
			Accuracy:       0.5,
		},
		Attacks: []AttackConfig{
			{Kind: "melee", Cooldown: 1.2, MinRange: 0, MaxRange: 1.5, Damage: 10, MinPhase: 1,
				Windup: 0.3, Active: 0.1, Recovery: 0.4, Radius: 0.8},
		},
	}
}

// DefaultBoss returns the full-repertoire boss profile.
func DefaultBoss() Agent {
	return Agent{
		Name:      "warden",
		Class:     model.ClassBoss.String(),
		MaxHealth: 5000,
		Armor:     0.2,
		Spawn:     SpawnConfig{X: 8, PatrolMin: 2, PatrolMax: 16},
		Movement: MovementConfig{
			PatrolEnabled: true,
			ChaseEnabled:  true,
			PatrolSpeed:   2,
			ChaseSpeed:    4,
			StopDistance:  1.5,
			EdgeProbe:     1,
			StuckTicks:    45,
			StuckEpsilon:  0.001,
		},
		Perception: PerceptionConfig{
			DetectRadius: 14,
			LoseRadius:   20,
			FOVDegrees:   360,
			RequireLOS:   false,
			LoseGrace:    3,
			EyeHeight:    2,
		},
		Timings: TimingConfig{
			IdleDwell:   0,
			DeathLinger: 3,
		},
		Shield: ShieldConfig{MaxHits: 3, RegenDelay: 5, RegenRate: 0.5},
		Stagger: StaggerConfig{
			Threshold:        800,
			Duration:         2,
			Immunity:         4,
			DamageMultiplier: 1.5,
		},
		Rage: RageConfig{
			Threshold:          0.25,
			DamageMultiplier:   1.3,
			SpeedMultiplier:    1.25,
			CooldownMultiplier: 0.7,
			ArmorPenalty:       0.15,
		},
		Phases: PhaseConfig{
			Phase2Threshold:    0.6,
			Phase3Threshold:    0.3,
			ArmorBonus:         []float64{0, 0.1, 0.2},
			SpeedMultiplier:    1.15,
			CooldownMultiplier: 0.85,
			TransitionDuration: 1.5,
			KnockbackRadius:    6,
			KnockbackForce:     12,
		},
		HyperArmor: HyperArmorConfig{DamageReduction: 0.7},
		Counter: CounterConfig{
			Enabled:        true,
			Range:          3,
			SpeedThreshold: 4,
			Chance:         0.35,
			Cooldown:       6,
			Damage:         45,
			Windup:         0.1,
			Recovery:       0.3,
			Reach:          2,
		},
		Teleport: TeleportConfig{
			DamageThreshold: 300,
			DamageWindow:    2,
			BehindOffset:    2.5,
		},
		Combo: ComboConfig{MaxChain: 3, Window: 1, DamageStep: 0.25},
		Learning: LearningConfig{
			MemoryDuration:     10,
			SampleInterval:     0.1,
			MinSamples:         20,
			LearningRate:       0.25,
			MoveThreshold:      0.5,
			JumpEvadeThreshold: 0.35,
			DodgeThreshold:     0.6,
		},
		Prediction: PredictionConfig{
			SampleInterval: 0.1,
			Smoothing:      0.35,
			PredictionTime: 0.5,
			Accuracy:       0.8,
			DodgeBias:      1.5,
			JumpBias:       1,
		},
		Attacks: []AttackConfig{
			{Kind: "melee", Cooldown: 1.5, MinRange: 0, MaxRange: 2.5, Damage: 25, MinPhase: 1,
				Windup: 0.35, Active: 0.15, Recovery: 0.4, Radius: 1.2, Knockback: 3},
			{Kind: "bomb", Cooldown: 5, MinRange: 2.5, MaxRange: 5, Damage: 30, MinPhase: 1,
				Windup: 0.4, Active: 0.1, Recovery: 0.5, Speed: 8, Radius: 2},
			{Kind: "dash", Cooldown: 4, MinRange: 5, MaxRange: 9, Damage: 35, MinPhase: 1,
				Windup: 0.45, Active: 0.5, Recovery: 0.6, Speed: 16, Radius: 1, HyperArmor: true, Knockback: 6},
			{Kind: "laser", Cooldown: 6, MinRange: 9, MaxRange: 14, Damage: 40, MinPhase: 1,
				Windup: 0.8, Active: 0.3, Recovery: 0.7, Radius: 0.6},
			{Kind: "projectile", Cooldown: 2.5, MinRange: 0, MaxRange: 20, Damage: 15, MinPhase: 1,
				Windup: 0.3, Active: 0.1, Recovery: 0.3, Speed: 12, Radius: 0.4, Count: 1},
			{Kind: "drone_spawn", Cooldown: 20, MinRange: 0, MaxRange: 20, Damage: 8, MinPhase: 2, Chance: 0.01,
				Windup: 0.8, Active: 0.1, Recovery: 0.6, Count: 2},
			{Kind: "ground_slam", Cooldown: 9, MinRange: 0, MaxRange: 6, Damage: 50, MinPhase: 2, Chance: 0.02,
				Windup: 0.5, Active: 1.5, Recovery: 0.8, Radius: 4, HyperArmor: true, Knockback: 10},
			{Kind: "teleport", Cooldown: 10, MinRange: 6, MaxRange: 20, Damage: 0, MinPhase: 2, Chance: 0.015,
				Windup: 0.4, Active: 0.05, Recovery: 0.4},
			{Kind: "rocket", Cooldown: 8, MinRange: 6, MaxRange: 20, Damage: 45, MinPhase: 2, Chance: 0.02,
				Windup: 0.6, Active: 0.1, Recovery: 0.5, Speed: 10, Radius: 2.5, Count: 3},
		},
	}
}
