package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Engine holds all configuration for the combat simulator.
type Engine struct {
	LogLevel   string     `yaml:"log_level"`
	TickRateHz int        `yaml:"tick_rate_hz"`
	Difficulty Difficulty `yaml:"difficulty"`
	Seed       uint64     `yaml:"seed"`

	// MaxTicks bounds a simulated encounter (0 = unbounded).
	MaxTicks int `yaml:"max_ticks"`

	Trace TraceConfig `yaml:"trace"`
	Store StoreConfig `yaml:"store"`
	Arena ArenaConfig `yaml:"arena"`

	Target TargetConfig `yaml:"target"`
	Agents []Agent      `yaml:"agents"`
}

// TraceConfig controls the compressed combat event trace.
type TraceConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// StoreConfig selects where encounter summaries are persisted.
type StoreConfig struct {
	// Driver is "sqlite", "postgres" or "" (disabled).
	Driver   string         `yaml:"driver"`
	Path     string         `yaml:"path"`
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// ArenaConfig describes the flat test arena used by the simulator.
type ArenaConfig struct {
	MinX    float64 `yaml:"min_x"`
	MaxX    float64 `yaml:"max_x"`
	GroundY float64 `yaml:"ground_y"`
	Walls   []Wall  `yaml:"walls"`
}

// Wall is a vertical line-of-sight blocker.
type Wall struct {
	X      float64 `yaml:"x"`
	Bottom float64 `yaml:"bottom"`
	Top    float64 `yaml:"top"`
}

// TickSeconds returns the fixed tick length.
func (e Engine) TickSeconds() float64 {
	if e.TickRateHz <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(e.TickRateHz)
}

// DefaultEngine returns Engine config with one boss and one basic agent.
func DefaultEngine() Engine {
	boss := DefaultBoss()
	grunt := DefaultBasic()
	grunt.Spawn = SpawnConfig{X: -12, PatrolMin: -18, PatrolMax: -6}

	return Engine{
		LogLevel:   "info",
		TickRateHz: 60,
		Difficulty: DifficultyNormal,
		Seed:       1,
		MaxTicks:   60 * 180,
		Trace: TraceConfig{
			Enabled: false,
			Dir:     "traces",
		},
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   "encounters.db",
			Database: DatabaseConfig{
				Host:     "127.0.0.1",
				Port:     5432,
				User:     "bossmind",
				Password: "bossmind",
				DBName:   "bossmind",
				SSLMode:  "disable",
			},
		},
		Arena: ArenaConfig{
			MinX:    -20,
			MaxX:    20,
			GroundY: 0,
		},
		Target: DefaultTarget(),
		Agents: []Agent{boss, grunt},
	}
}

// LoadEngine loads engine config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadEngine(path string) (Engine, error) {
	cfg := DefaultEngine()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := validateSchema(data); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("checking config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks cross-field constraints the schema cannot express.
func (e Engine) Validate() error {
	var errs []error
	if e.TickRateHz <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate_hz must be positive, got %d", e.TickRateHz))
	}
	if _, ok := difficultyPresets[e.Difficulty]; !ok {
		errs = append(errs, fmt.Errorf("unknown difficulty %q", e.Difficulty))
	}
	if e.Arena.MaxX <= e.Arena.MinX {
		errs = append(errs, fmt.Errorf("arena max_x %.2f must exceed min_x %.2f", e.Arena.MaxX, e.Arena.MinX))
	}
	switch e.Store.Driver {
	case "", "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", e.Store.Driver))
	}
	if err := e.Target.Validate(); err != nil {
		errs = append(errs, err)
	}
	seen := make(map[string]bool, len(e.Agents))
	for i := range e.Agents {
		a := &e.Agents[i]
		if seen[a.Name] {
			errs = append(errs, fmt.Errorf("duplicate agent name %q", a.Name))
		}
		seen[a.Name] = true
		if err := a.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("agent %q: %w", a.Name, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// toJSONValue converts a decoded YAML document into the value shapes the
// schema validator understands (map[string]any, []any, float64, string, bool).
func toJSONValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
