package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/udisondev/bossmind/internal/ai"
	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/db"
	"github.com/udisondev/bossmind/internal/encounter"
	"github.com/udisondev/bossmind/internal/sim"
	"github.com/udisondev/bossmind/internal/trace"
)

const EngineConfigPath = "config/combatsim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	realtime   bool
	trace      bool
	history    int
	seed       uint64
	difficulty string
	behavior   string
}

func parseFlags(args []string) (options, error) {
	opts := options{configPath: EngineConfigPath}
	if p := os.Getenv("BOSSMIND_CONFIG"); p != "" {
		opts.configPath = p
	}

	fs := flag.NewFlagSet("combatsim", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", opts.configPath, "engine config file")
	fs.BoolVar(&opts.realtime, "realtime", false, "pace ticks on the wall clock")
	fs.BoolVar(&opts.trace, "trace", false, "write a compressed event trace")
	fs.IntVar(&opts.history, "history", 0, "print the last N stored encounters and exit")
	fs.Uint64Var(&opts.seed, "seed", 0, "override the config seed")
	fs.StringVar(&opts.difficulty, "difficulty", "", "override difficulty (easy|normal|hard)")
	fs.StringVar(&opts.behavior, "target", "", "override target behavior (idle|rusher|kiter|jumper)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func run(ctx context.Context, args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadEngine(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading engine config: %w", err)
	}
	applyOverrides(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("combatsim starting",
		"config", opts.configPath,
		"log_level", cfg.LogLevel,
		"tick_rate_hz", cfg.TickRateHz)

	var store db.EncounterStore
	if cfg.Store.Driver != "" {
		store, err = db.Open(ctx, cfg.Store)
		if err != nil {
			return fmt.Errorf("opening encounter store: %w", err)
		}
		defer store.Close()
		slog.Info("encounter store ready", "driver", cfg.Store.Driver)
	}

	if opts.history > 0 {
		if store == nil {
			return fmt.Errorf("history needs a store driver")
		}
		return printHistory(ctx, store, opts.history)
	}

	s, err := sim.New(cfg)
	if err != nil {
		return err
	}
	if cfg.Trace.Enabled {
		path := filepath.Join(cfg.Trace.Dir, trace.FileName("combat", time.Now()))
		if err := s.EnableTrace(path); err != nil {
			return fmt.Errorf("enabling trace: %w", err)
		}
		slog.Info("trace enabled", "path", path)
	}

	res, err := s.Run(ctx, opts.realtime)
	if err != nil {
		return fmt.Errorf("running simulation: %w", err)
	}

	for _, sum := range res.Summaries {
		logSummary(sum)
		if store == nil {
			continue
		}
		// A cancelled ctx must not lose the results.
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		err := store.SaveEncounter(saveCtx, sum)
		cancel()
		if err != nil {
			return fmt.Errorf("saving encounter: %w", err)
		}
	}
	return nil
}

func applyOverrides(cfg *config.Engine, opts options) {
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}
	if opts.difficulty != "" {
		cfg.Difficulty = config.Difficulty(opts.difficulty)
	}
	if opts.behavior != "" {
		cfg.Target.Behavior = opts.behavior
	}
	if opts.trace {
		cfg.Trace.Enabled = true
	}
}

func logSummary(s encounter.Summary) {
	slog.Info("encounter summary",
		"agent", s.AgentName,
		"class", s.Class,
		"outcome", s.Outcome,
		"duration", fmt.Sprintf("%.1fs", s.Duration),
		"phase", s.PhaseReached,
		"attacks", s.TotalAttacks(),
		"hits", s.AttacksHit,
		"damage_taken", s.DamageTaken,
		"damage_dealt", s.DamageDealt,
		"staggers", s.Staggers,
		"shield_breaks", s.ShieldBreaks)
}

func printHistory(ctx context.Context, store db.EncounterStore, n int) error {
	sums, err := store.ListEncounters(ctx, db.ListFilter{Limit: n})
	if err != nil {
		return fmt.Errorf("listing encounters: %w", err)
	}
	for _, s := range sums {
		fmt.Printf("%s  %-12s %-8s %-9s phase=%d attacks=%d taken=%.0f dealt=%.0f digest=%s\n",
			s.EndedAt.Format(time.RFC3339), s.AgentName, s.Difficulty, s.Outcome,
			s.PhaseReached, s.TotalAttacks(), s.DamageTaken, s.DamageDealt, s.ProfileDigest[:min(12, len(s.ProfileDigest))])
	}
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
