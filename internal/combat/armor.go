package combat

import (
	"math"

	"github.com/udisondev/bossmind/internal/model"
)

// MaxArmor caps effective armor so some damage always lands.
const MaxArmor = 0.95

// ArmorInputs are the terms of the effective armor formula.
type ArmorInputs struct {
	Base         float64
	PhaseBonus   float64
	Raging       bool
	RagePenalty  float64
	HyperArmor   bool
	HyperArmorDR float64
}

// EffectiveArmor computes clamp(base + phaseBonus - ragePenalty, 0, MaxArmor).
// While hyper armor is active the result is max(armor, HyperArmorDR) before the clamp.
func EffectiveArmor(in ArmorInputs) float64 {
	a := in.Base + in.PhaseBonus
	if in.Raging {
		a -= in.RagePenalty
	}
	if in.HyperArmor {
		a = math.Max(a, in.HyperArmorDR)
	}
	return model.Clamp(a, 0, MaxArmor)
}

// ApplyArmor scales damage by (1 - armor).
func ApplyArmor(damage, armor float64) float64 {
	return damage * (1 - armor)
}
