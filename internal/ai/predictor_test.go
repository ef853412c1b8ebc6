package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/model"
)

func predictionConfig() config.PredictionConfig {
	return config.PredictionConfig{
		SampleInterval: 0.1,
		Smoothing:      0.3,
		PredictionTime: 0.5,
		Accuracy:       1,
		DodgeBias:      2,
		JumpBias:       1,
	}
}

func TestPredictor_ConvergesOnStationaryTarget(t *testing.T) {
	p := NewPredictor(predictionConfig(), 1)

	moving := snapAt(4)
	moving.Velocity = model.V(6, 0)
	p.Observe(0.1, moving)
	assert.InDelta(t, 7, p.AimPoint(moving.Position, Biases{}, false).X, 1e-9)

	still := snapAt(4)
	prev := p.AimPoint(still.Position, Biases{}, false).Dist(still.Position)
	for range 60 {
		p.Observe(0.1, still)
		d := p.AimPoint(still.Position, Biases{}, false).Dist(still.Position)
		assert.LessOrEqual(t, d, prev)
		prev = d
	}
	assert.Less(t, prev, 1e-6)
}

func TestPredictor_LeadsMovingTarget(t *testing.T) {
	p := NewPredictor(predictionConfig(), 1)
	s := snapAt(0)
	s.Velocity = model.V(-4, 0)
	for range 30 {
		p.Observe(0.1, s)
	}
	aim := p.AimPoint(s.Position, Biases{}, false)
	assert.InDelta(t, -2, aim.X, 1e-6)
	assert.InDelta(t, 0, aim.Y, 1e-9)
}

func TestPredictor_AccuracyScale(t *testing.T) {
	cfg := predictionConfig()
	cfg.Accuracy = 0.8

	assert.InDelta(t, 0.4, NewPredictor(cfg, 0.5).Accuracy(), 1e-9)
	assert.Equal(t, 1.0, NewPredictor(cfg, 2).Accuracy())
}

func TestPredictor_BiasesOnlyWhenModelReady(t *testing.T) {
	p := NewPredictor(predictionConfig(), 1)
	p.Observe(0.1, snapAt(0))
	b := Biases{JumpFrequency: 0.5, DodgeRight: 0.75, DodgeLeft: 0.25}

	assert.Equal(t, model.V(0, 0), p.AimPoint(model.Vec2{}, b, false))

	aim := p.AimPoint(model.Vec2{}, b, true)
	assert.InDelta(t, 1, aim.X, 1e-9)
	assert.InDelta(t, 0.5, aim.Y, 1e-9)
}
