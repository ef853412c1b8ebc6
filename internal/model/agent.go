package model

// Flags are the mutually-coordinated behavioural flags of an agent.
// The cancellation path clears Attacking, Dashing and Teleporting together.
type Flags struct {
	Staggered          bool
	Raging             bool
	Shielded           bool
	PhaseTransitioning bool
	Attacking          bool
	Dashing            bool
	Teleporting        bool
}

// Agent is the engine-owned record of one hostile agent.
// Health lives in the injected combat.HealthPool; everything else is here.
type Agent struct {
	ID    uint32
	Name  string
	Class Class

	Position Vec2
	Velocity Vec2
	// Facing is +1 (right) or -1 (left).
	Facing int

	Armor float64
	Phase int

	// SpeedMultiplier accumulates one-time phase multipliers.
	SpeedMultiplier float64
	// CooldownMultiplier accumulates one-time phase cooldown reductions.
	CooldownMultiplier float64

	Flags Flags
}

// NewAgent creates an agent facing right in phase 1.
func NewAgent(id uint32, name string, class Class, pos Vec2, armor float64) *Agent {
	return &Agent{
		ID:                 id,
		Name:               name,
		Class:              class,
		Position:           pos,
		Facing:             1,
		Armor:              armor,
		Phase:              1,
		SpeedMultiplier:    1,
		CooldownMultiplier: 1,
	}
}

// FaceToward turns the agent toward x. Keeps the current facing when x is level.
func (a *Agent) FaceToward(x float64) {
	switch {
	case x > a.Position.X:
		a.Facing = 1
	case x < a.Position.X:
		a.Facing = -1
	}
}

// TurnAround flips facing.
func (a *Agent) TurnAround() {
	a.Facing = -a.Facing
}

// FacingVec returns the facing direction as a unit vector.
func (a *Agent) FacingVec() Vec2 {
	return Vec2{X: float64(a.Facing)}
}

// Stop zeroes velocity.
func (a *Agent) Stop() {
	a.Velocity = Vec2{}
}

// TargetSnapshot is the read-only view of the opposing target for one tick.
type TargetSnapshot struct {
	ID       uint32
	Position Vec2
	Velocity Vec2
	Grounded bool
	Dashing  bool
	Alive    bool
}
