package world

import "sync/atomic"

// ObjectIDGenerator hands out unique IDs for everything in an arena.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = invalid)
//	0x10000000 - 0x1FFFFFFF: Hostile agents
//	0x20000000 - 0x2FFFFFFF: Targets
//	0x30000000 - 0x3FFFFFFF: Projectiles and drones
type ObjectIDGenerator struct {
	nextAgentID  atomic.Uint32
	nextTargetID atomic.Uint32
	nextEffectID atomic.Uint32
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextAgentID.Store(0x10000000)
	gen.nextTargetID.Store(0x20000000)
	gen.nextEffectID.Store(0x30000000)
	return gen
}

// NextAgentID generates the next agent ID.
func (g *ObjectIDGenerator) NextAgentID() uint32 {
	return g.nextAgentID.Add(1)
}

// NextTargetID generates the next target ID.
func (g *ObjectIDGenerator) NextTargetID() uint32 {
	return g.nextTargetID.Add(1)
}

// NextEffectID generates the next projectile or drone ID.
func (g *ObjectIDGenerator) NextEffectID() uint32 {
	return g.nextEffectID.Add(1)
}

// IsAgentID reports whether id lies in the agent range.
func IsAgentID(id uint32) bool {
	return id >= 0x10000000 && id < 0x20000000
}

// IsTargetID reports whether id lies in the target range.
func IsTargetID(id uint32) bool {
	return id >= 0x20000000 && id < 0x30000000
}
