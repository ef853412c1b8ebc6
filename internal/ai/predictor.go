package ai

import (
	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/model"
)

// Predictor keeps an exponentially smoothed estimate of target velocity and
// projects an aim point ahead of the target.
type Predictor struct {
	cfg      config.PredictionConfig
	accuracy float64

	velocity    model.Vec2
	sampleTimer float64
	samples     int
}

// NewPredictor scales the configured accuracy by the difficulty preset.
func NewPredictor(cfg config.PredictionConfig, accuracyScale float64) *Predictor {
	if cfg.Smoothing <= 0 || cfg.Smoothing > 1 {
		cfg.Smoothing = 1
	}
	return &Predictor{
		cfg:      cfg,
		accuracy: model.Clamp(cfg.Accuracy*accuracyScale, 0, 1),
	}
}

// Observe folds in a velocity sample at the configured sub-interval.
func (p *Predictor) Observe(dt float64, t model.TargetSnapshot) {
	p.sampleTimer += dt
	if p.samples > 0 && p.sampleTimer < p.cfg.SampleInterval {
		return
	}
	p.sampleTimer = 0
	if p.samples == 0 {
		p.velocity = t.Velocity
	} else {
		p.velocity = p.velocity.Lerp(t.Velocity, p.cfg.Smoothing)
	}
	p.samples++
}

// AimPoint projects pos forward by the smoothed velocity. When the target model
// is ready its dodge and jump biases nudge the aim as well.
func (p *Predictor) AimPoint(pos model.Vec2, b Biases, modelReady bool) model.Vec2 {
	aim := pos.Add(p.velocity.Scale(p.cfg.PredictionTime * p.accuracy))
	if modelReady {
		aim.X += (b.DodgeRight - b.DodgeLeft) * p.cfg.DodgeBias * p.accuracy
		aim.Y += b.JumpFrequency * p.cfg.JumpBias * p.accuracy
	}
	return aim
}

// Velocity returns the smoothed estimate.
func (p *Predictor) Velocity() model.Vec2 { return p.velocity }

// Accuracy returns the effective accuracy after difficulty scaling.
func (p *Predictor) Accuracy() float64 { return p.accuracy }

// Reset drops the estimate.
func (p *Predictor) Reset() {
	p.velocity = model.Vec2{}
	p.sampleTimer = 0
	p.samples = 0
}
