package model

// AttackKind identifies one entry of an agent's attack repertoire.
type AttackKind int32

const (
	AttackNone AttackKind = iota
	AttackMelee
	AttackDash
	AttackLaser
	AttackProjectile
	AttackBomb
	AttackRocket
	AttackGroundSlam
	AttackTeleport
	AttackDroneSpawn
	// AttackCounter is the reactive strike that pre-empts the normal policy.
	AttackCounter

	attackKindCount
)

// NumAttackKinds sizes per-kind lookup arrays.
const NumAttackKinds = int(attackKindCount)

var attackKindNames = [...]string{
	AttackNone:       "none",
	AttackMelee:      "melee",
	AttackDash:       "dash",
	AttackLaser:      "laser",
	AttackProjectile: "projectile",
	AttackBomb:       "bomb",
	AttackRocket:     "rocket",
	AttackGroundSlam: "ground_slam",
	AttackTeleport:   "teleport",
	AttackDroneSpawn: "drone_spawn",
	AttackCounter:    "counter",
}

func (k AttackKind) String() string {
	if k < 0 || int(k) >= len(attackKindNames) {
		return "unknown"
	}
	return attackKindNames[k]
}

// ParseAttackKind maps a config name ("melee", "ground_slam", ...) to a kind.
func ParseAttackKind(name string) (AttackKind, bool) {
	for i, n := range attackKindNames {
		if n == name {
			return AttackKind(i), true
		}
	}
	return AttackNone, false
}

// IsSpecial reports whether the attack is a special ability, only available
// from phase 2 onward.
func (k AttackKind) IsSpecial() bool {
	switch k {
	case AttackDroneSpawn, AttackGroundSlam, AttackTeleport, AttackRocket:
		return true
	}
	return false
}

// SpecialMinPhase is the earliest phase a special ability unlocks in.
const SpecialMinPhase = 2

// IsRanged reports whether the attack resolves away from the agent's body.
func (k AttackKind) IsRanged() bool {
	switch k {
	case AttackLaser, AttackProjectile, AttackBomb, AttackRocket:
		return true
	}
	return false
}
