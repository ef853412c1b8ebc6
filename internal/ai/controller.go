package ai

import "github.com/udisondev/bossmind/internal/model"

// Controller represents a tickable hostile agent.
type Controller interface {
	// Start enables ticking
	Start()

	// Stop disables ticking and releases listeners
	Stop()

	// ID returns the agent's object ID
	ID() uint32

	// State returns the current behavioural state
	State() model.State

	// ForceState overrides the current state (scripting and debugging)
	ForceState(s model.State) bool

	// Tick advances the agent by dt seconds
	Tick(dt float64)

	// Expired reports whether the agent can be removed
	Expired() bool
}

var _ Controller = (*Engine)(nil)
