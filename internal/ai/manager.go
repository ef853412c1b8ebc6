package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// ErrControllerNotFound is returned when no controller is registered under an ID.
var ErrControllerNotFound = errors.New("controller not found")

// TickManager drives every registered controller at a fixed rate.
// Controllers are ticked sequentially in ID order from a single goroutine.
type TickManager struct {
	controllers     sync.Map // map[uint32]Controller
	interval        time.Duration
	stopCh          chan struct{}
	stopOnce        sync.Once
	controllerCount atomic.Int32
	ticks           atomic.Uint64

	// afterStep runs on the tick goroutine once every controller has ticked.
	afterStep func(dt float64)
}

// NewTickManager creates a manager ticking every interval.
func NewTickManager(interval time.Duration) *TickManager {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &TickManager{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// SetAfterStep installs fn to run after every step, on the tick goroutine.
// Must be called before Start.
func (m *TickManager) SetAfterStep(fn func(dt float64)) {
	m.afterStep = fn
}

// Register starts controller and adds it to the tick loop.
func (m *TickManager) Register(objectID uint32, controller Controller) {
	if _, loaded := m.controllers.LoadOrStore(objectID, controller); loaded {
		slog.Warn("controller already registered", "objectID", objectID)
		return
	}
	m.controllerCount.Add(1)
	controller.Start()

	slog.Debug("controller registered",
		"objectID", objectID,
		"state", controller.State())
}

// Unregister stops and removes a controller.
func (m *TickManager) Unregister(objectID uint32) {
	value, ok := m.controllers.LoadAndDelete(objectID)
	if !ok {
		return
	}
	m.controllerCount.Add(-1)

	controller := value.(Controller)
	controller.Stop()

	slog.Debug("controller unregistered", "objectID", objectID)
}

// Start runs the tick loop until ctx is cancelled or Stop is called.
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("tick manager started", "interval", m.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("tick manager stopping")
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("tick manager stopped")
			return nil

		case <-ticker.C:
			m.Step()
		}
	}
}

// Stop ends the tick loop.
func (m *TickManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// Step ticks every controller once by the manager interval and unregisters
// the ones that expired.
func (m *TickManager) Step() {
	m.StepBy(m.interval.Seconds())
}

// StepBy ticks every controller once by dt seconds.
func (m *TickManager) StepBy(dt float64) {
	var expired []uint32
	for _, id := range m.ids() {
		value, ok := m.controllers.Load(id)
		if !ok {
			continue
		}
		controller := value.(Controller)
		controller.Tick(dt)
		if controller.Expired() {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		m.Unregister(id)
	}
	if m.afterStep != nil {
		m.afterStep(dt)
	}

	n := m.ticks.Add(1)
	if IsDebugEnabled() && n%600 == 0 {
		slog.Debug("tick completed", "tick", n, "controllers", m.Count())
	}
}

// ids returns registered IDs sorted so tick order is deterministic.
func (m *TickManager) ids() []uint32 {
	ids := make([]uint32, 0, m.Count())
	m.controllers.Range(func(key, _ any) bool {
		ids = append(ids, key.(uint32))
		return true
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Count returns the number of registered controllers.
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// Ticks returns how many steps ran.
func (m *TickManager) Ticks() uint64 {
	return m.ticks.Load()
}

// GetController returns the controller registered under objectID.
func (m *TickManager) GetController(objectID uint32) (Controller, error) {
	value, ok := m.controllers.Load(objectID)
	if !ok {
		return nil, fmt.Errorf("objectID %d: %w", objectID, ErrControllerNotFound)
	}
	return value.(Controller), nil
}
