// Package sim wires agents, the arena and telemetry into one runnable encounter.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/bossmind/internal/ai"
	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/encounter"
	"github.com/udisondev/bossmind/internal/model"
	"github.com/udisondev/bossmind/internal/trace"
	"github.com/udisondev/bossmind/internal/world"
)

// Result is what a finished run produced.
type Result struct {
	Ticks       uint64
	SimTime     float64
	TargetAlive bool
	TargetHP    float64
	TracePath   string
	Summaries   []encounter.Summary
}

// Simulation is one encounter: a scripted target against every configured agent.
type Simulation struct {
	cfg     config.Engine
	arena   *world.Arena
	target  *world.Dummy
	manager *ai.TickManager

	engines  []*ai.Engine
	trackers []*encounter.Tracker
	trace    *trace.Writer
	detach   []func()

	simTime  float64
	done     chan struct{}
	doneOnce sync.Once
}

// New builds the arena, the target and one engine per configured agent.
func New(cfg config.Engine) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("building simulation: %w", err)
	}

	arena := world.NewArena(cfg.Arena)
	target := world.NewDummy(arena.IDs().NextTargetID(), cfg.Target, cfg.Arena.GroundY, cfg.Seed)
	arena.AddTarget(target)

	interval := time.Duration(cfg.TickSeconds() * float64(time.Second))
	s := &Simulation{
		cfg:     cfg,
		arena:   arena,
		target:  target,
		manager: ai.NewTickManager(interval),
		done:    make(chan struct{}),
	}
	s.manager.SetAfterStep(s.afterStep)

	preset := cfg.Difficulty.Preset()
	for _, profile := range cfg.Agents {
		id := arena.IDs().NextAgentID()
		e, err := ai.NewEngine(id, profile, ai.Deps{
			World:      arena,
			Sink:       arena,
			Rand:       rand.New(rand.NewPCG(cfg.Seed, uint64(id))),
			Difficulty: preset,
		})
		if err != nil {
			return nil, err
		}
		e.SetTarget(target)

		tr, err := encounter.Track(e, cfg.Difficulty)
		if err != nil {
			return nil, err
		}
		arena.AddCombatant(e)
		s.engines = append(s.engines, e)
		s.trackers = append(s.trackers, tr)
	}

	slog.Info("simulation ready",
		"agents", len(s.engines),
		"target", cfg.Target.Name,
		"behavior", cfg.Target.Behavior,
		"difficulty", cfg.Difficulty,
		"seed", cfg.Seed)
	return s, nil
}

// EnableTrace records every agent event to path. Call before Run.
func (s *Simulation) EnableTrace(path string) error {
	w, err := trace.Create(path)
	if err != nil {
		return err
	}
	s.trace = w
	for _, e := range s.engines {
		s.detach = append(s.detach, w.Attach(e.Events()))
	}
	return nil
}

// Arena returns the simulated arena.
func (s *Simulation) Arena() *world.Arena { return s.arena }

// Target returns the scripted target.
func (s *Simulation) Target() *world.Dummy { return s.target }

// Engines returns the agents in spawn order.
func (s *Simulation) Engines() []*ai.Engine { return s.engines }

// Run plays the encounter to its end. With realtime set the tick manager
// paces steps on the wall clock; otherwise steps run back to back.
func (s *Simulation) Run(ctx context.Context, realtime bool) (Result, error) {
	for _, e := range s.engines {
		s.manager.Register(e.ID(), e)
	}

	var err error
	if realtime {
		err = s.runRealtime(ctx)
	} else {
		err = s.runFast(ctx)
	}

	res, ferr := s.finish()
	return res, errors.Join(err, ferr)
}

func (s *Simulation) runFast(ctx context.Context) error {
	for !s.finished() {
		if err := ctx.Err(); err != nil {
			slog.Info("simulation interrupted", "ticks", s.manager.Ticks())
			return nil
		}
		s.manager.Step()
	}
	return nil
}

func (s *Simulation) runRealtime(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := s.manager.Start(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("tick manager: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-s.done:
		case <-gctx.Done():
		}
		s.manager.Stop()
		return nil
	})

	return g.Wait()
}

// afterStep runs on the tick goroutine after every agent ticked.
func (s *Simulation) afterStep(dt float64) {
	s.simTime += dt
	s.arena.Step(dt)
	if s.finished() {
		s.doneOnce.Do(func() { close(s.done) })
	}
}

func (s *Simulation) finished() bool {
	if !s.target.Alive() {
		return true
	}
	if limit := s.cfg.MaxTicks; limit > 0 && s.manager.Ticks() >= uint64(limit) {
		return true
	}
	for _, e := range s.engines {
		if e.State() != model.StateDead {
			return false
		}
	}
	return true
}

func (s *Simulation) finish() (Result, error) {
	outcome := encounter.OutcomeTimeout
	if !s.target.Alive() {
		outcome = encounter.OutcomeVictory
	}

	res := Result{
		Ticks:       s.manager.Ticks(),
		SimTime:     s.simTime,
		TargetAlive: s.target.Alive(),
		TargetHP:    s.target.Health().Current(),
	}
	for _, tr := range s.trackers {
		res.Summaries = append(res.Summaries, tr.Finish(outcome))
	}
	for _, detach := range s.detach {
		detach()
	}
	for _, e := range s.engines {
		s.manager.Unregister(e.ID())
	}

	var err error
	if s.trace != nil {
		res.TracePath = s.trace.Path()
		err = errors.Join(s.trace.Err(), s.trace.Close())
	}

	slog.Info("simulation finished",
		"ticks", res.Ticks,
		"sim_time", res.SimTime,
		"target_alive", res.TargetAlive,
		"target_hp", res.TargetHP)
	return res, err
}
