package config

import (
	"errors"
	"fmt"
)

// Scripted target behaviours.
const (
	BehaviorIdle   = "idle"
	BehaviorRusher = "rusher"
	BehaviorKiter  = "kiter"
	BehaviorJumper = "jumper"
)

// TargetConfig describes the scripted player the simulator pits agents against.
type TargetConfig struct {
	Name      string  `yaml:"name"`
	Behavior  string  `yaml:"behavior"`
	MaxHealth float64 `yaml:"max_health"`
	SpawnX    float64 `yaml:"spawn_x"`

	Speed     float64 `yaml:"speed"`
	DashSpeed float64 `yaml:"dash_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
	Gravity   float64 `yaml:"gravity"`

	AttackDamage   float64 `yaml:"attack_damage"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackInterval float64 `yaml:"attack_interval"`
	// PreferredRange is the distance a kiter tries to hold.
	PreferredRange float64 `yaml:"preferred_range"`
	// JumpChance is the per-second probability of a jump.
	JumpChance float64 `yaml:"jump_chance"`
	// DashChance is the per-second probability of a dash.
	DashChance float64 `yaml:"dash_chance"`
}

// DefaultTarget returns a melee rusher with player-like mobility.
func DefaultTarget() TargetConfig {
	return TargetConfig{
		Name:           "player",
		Behavior:       BehaviorRusher,
		MaxHealth:      600,
		SpawnX:         18,
		Speed:          5,
		DashSpeed:      14,
		JumpSpeed:      9,
		Gravity:        30,
		AttackDamage:   40,
		AttackRange:    1.8,
		AttackInterval: 0.45,
		PreferredRange: 8,
		JumpChance:     0.4,
		DashChance:     0.2,
	}
}

// Validate checks the target section.
func (t TargetConfig) Validate() error {
	var errs []error
	switch t.Behavior {
	case BehaviorIdle, BehaviorRusher, BehaviorKiter, BehaviorJumper:
	default:
		errs = append(errs, fmt.Errorf("unknown target behavior %q", t.Behavior))
	}
	if t.MaxHealth <= 0 {
		errs = append(errs, errors.New("target max_health must be positive"))
	}
	if t.Gravity < 0 {
		errs = append(errs, errors.New("target gravity must not be negative"))
	}
	return errors.Join(errs...)
}
