package ai

import (
	"math"

	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/model"
)

// Edge is the detection transition produced by one perception update.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeAcquired
	EdgeLost
)

// Perception tracks whether the agent currently knows where its target is.
//
// Acquisition needs the target inside the detect radius, inside the view cone
// and (optionally) in line of sight. Once acquired, tracking holds as long as the
// target stays within the larger lose radius; losing sight inside that radius
// starts a grace timer. Either condition failing produces a single Lost edge.
type Perception struct {
	cfg config.PerceptionConfig

	detected  bool
	lastKnown model.Vec2
	loseTimer float64
}

// NewPerception creates a perception that has not detected anything.
func NewPerception(cfg config.PerceptionConfig) *Perception {
	if cfg.LoseRadius < cfg.DetectRadius {
		cfg.LoseRadius = cfg.DetectRadius
	}
	return &Perception{cfg: cfg}
}

// Update evaluates one tick. ok=false means the target reference is gone.
func (p *Perception) Update(dt float64, self *model.Agent, target model.TargetSnapshot, ok bool, world World) Edge {
	if !ok || !target.Alive {
		return p.drop()
	}

	eye := self.Position.Add(model.V(0, p.cfg.EyeHeight))
	dist := self.Position.Dist(target.Position)

	if !p.detected {
		if dist > p.cfg.DetectRadius || !p.inCone(self, target.Position) || !p.visible(world, eye, target.Position) {
			return EdgeNone
		}
		p.detected = true
		p.lastKnown = target.Position
		p.loseTimer = 0
		return EdgeAcquired
	}

	if dist > p.cfg.LoseRadius {
		return p.drop()
	}
	if p.visible(world, eye, target.Position) {
		p.lastKnown = target.Position
		p.loseTimer = 0
		return EdgeNone
	}

	p.loseTimer += dt
	if p.loseTimer >= p.cfg.LoseGrace {
		return p.drop()
	}
	return EdgeNone
}

func (p *Perception) drop() Edge {
	if !p.detected {
		return EdgeNone
	}
	p.detected = false
	p.loseTimer = 0
	return EdgeLost
}

func (p *Perception) inCone(self *model.Agent, pos model.Vec2) bool {
	if p.cfg.FOVDegrees <= 0 || p.cfg.FOVDegrees >= 360 {
		return true
	}
	to := pos.Sub(self.Position)
	if to.LenSq() == 0 {
		return true
	}
	cos := to.Norm().Dot(self.FacingVec())
	half := p.cfg.FOVDegrees / 2 * math.Pi / 180
	return cos >= math.Cos(half)
}

func (p *Perception) visible(world World, eye, pos model.Vec2) bool {
	if !p.cfg.RequireLOS || world == nil {
		return true
	}
	return world.LineOfSight(eye, pos)
}

// Detected reports whether the target is currently tracked.
func (p *Perception) Detected() bool { return p.detected }

// LastKnown returns the last position the target was seen at.
func (p *Perception) LastKnown() model.Vec2 { return p.lastKnown }

// LoseTimer returns how long the tracked target has been out of sight.
func (p *Perception) LoseTimer() float64 { return p.loseTimer }

// Reset forgets the target without producing an edge.
func (p *Perception) Reset() {
	p.detected = false
	p.loseTimer = 0
}
