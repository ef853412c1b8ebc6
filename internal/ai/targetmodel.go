package ai

import (
	"math"

	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/model"
)

// ActionRecord is one sample of target behaviour.
type ActionRecord struct {
	Position    model.Vec2
	Velocity    model.Vec2
	Timestamp   float64
	WasAirborne bool
	WasDashing  bool
}

// Biases are the learned behaviour tendencies of the target, each in [0,1].
type Biases struct {
	JumpFrequency  float64
	DodgeLeft      float64
	DodgeRight     float64
	Aggressiveness float64
}

// TargetModel keeps a time-bounded history of target samples and eases the
// derived biases toward the observed frequencies.
type TargetModel struct {
	cfg config.LearningConfig

	records []ActionRecord
	head    int
	size    int

	sampleTimer float64
	biases      Biases
	updates     int
}

// NewTargetModel sizes the ring buffer to hold one memory window of samples.
func NewTargetModel(cfg config.LearningConfig) *TargetModel {
	if cfg.SampleInterval <= 0 {
		cfg.SampleInterval = 0.1
	}
	capacity := int(math.Ceil(cfg.MemoryDuration/cfg.SampleInterval)) + 1
	return &TargetModel{
		cfg:     cfg,
		records: make([]ActionRecord, max(capacity, 1)),
	}
}

// Observe samples the target at the configured interval and refreshes the biases.
// self is the observing agent's position, used to judge approach direction.
func (m *TargetModel) Observe(now, dt float64, self model.Vec2, t model.TargetSnapshot) {
	m.sampleTimer += dt
	if m.sampleTimer < m.cfg.SampleInterval {
		return
	}
	m.sampleTimer = 0

	m.push(ActionRecord{
		Position:    t.Position,
		Velocity:    t.Velocity,
		Timestamp:   now,
		WasAirborne: !t.Grounded,
		WasDashing:  t.Dashing,
	})
	m.Prune(now)

	if m.size >= m.cfg.MinSamples && m.size > 0 {
		m.recompute(self)
	}
}

func (m *TargetModel) push(r ActionRecord) {
	idx := (m.head + m.size) % len(m.records)
	if m.size == len(m.records) {
		m.records[m.head] = r
		m.head = (m.head + 1) % len(m.records)
		return
	}
	m.records[idx] = r
	m.size++
}

// Prune drops samples older than the memory window.
func (m *TargetModel) Prune(now float64) {
	for m.size > 0 && now-m.records[m.head].Timestamp > m.cfg.MemoryDuration {
		m.head = (m.head + 1) % len(m.records)
		m.size--
	}
}

func (m *TargetModel) recompute(self model.Vec2) {
	var jumps, left, right, toward float64
	thr := m.cfg.MoveThreshold
	for i := 0; i < m.size; i++ {
		r := m.records[(m.head+i)%len(m.records)]
		if r.WasAirborne {
			jumps++
		}
		switch {
		case r.Velocity.X < -thr:
			left++
		case r.Velocity.X > thr:
			right++
		}
		dir := model.Sign(self.X - r.Position.X)
		if r.WasDashing || (dir != 0 && model.Sign(r.Velocity.X) == dir && math.Abs(r.Velocity.X) > thr) {
			toward++
		}
	}

	n := float64(m.size)
	rate := m.cfg.LearningRate
	m.biases = Biases{
		JumpFrequency:  model.Lerp(m.biases.JumpFrequency, jumps/n, rate),
		DodgeLeft:      model.Lerp(m.biases.DodgeLeft, left/n, rate),
		DodgeRight:     model.Lerp(m.biases.DodgeRight, right/n, rate),
		Aggressiveness: model.Lerp(m.biases.Aggressiveness, toward/n, rate),
	}
	m.updates++
}

// Ready reports whether enough samples have been folded into the biases.
func (m *TargetModel) Ready() bool {
	return m.updates > 0 && m.size >= m.cfg.MinSamples
}

func (m *TargetModel) Biases() Biases { return m.biases }

// Len returns the number of retained samples.
func (m *TargetModel) Len() int { return m.size }

// Records returns the retained samples, oldest first.
func (m *TargetModel) Records() []ActionRecord {
	out := make([]ActionRecord, m.size)
	for i := range out {
		out[i] = m.records[(m.head+i)%len(m.records)]
	}
	return out
}

// Reset forgets everything learned.
func (m *TargetModel) Reset() {
	m.head, m.size, m.updates = 0, 0, 0
	m.sampleTimer = 0
	m.biases = Biases{}
}
