package ai

import "github.com/udisondev/bossmind/internal/model"

// World answers the physics queries the engine needs.
// Injected at construction to keep the engine free of physics imports.
type World interface {
	// LineOfSight reports whether nothing blocks the segment from → to.
	LineOfSight(from, to model.Vec2) bool
	// Grounded reports whether there is ground directly beneath pos.
	Grounded(pos model.Vec2) bool
	// Overlap returns the IDs of targets inside region.
	Overlap(region model.Rect) []uint32
}

// Target is a read-only handle to the opposing combatant.
// ok=false means the reference is gone.
type Target interface {
	Snapshot() (snap model.TargetSnapshot, ok bool)
}

// Rand is the random source used for per-tick draws. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}
