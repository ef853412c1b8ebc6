package model

// State is the behavioural state of a hostile agent.
type State int32

const (
	// StateIdle - standing still, waiting to start a patrol
	StateIdle State = iota
	// StatePatrol - walking between patrol bounds
	StatePatrol
	// StateAlert - target just spotted, short surprise pause
	StateAlert
	// StateChase - closing in on the target
	StateChase
	// StateAttack - executing an attack sub-state
	StateAttack
	// StateHurt - recovering from a hit (basic agents only)
	StateHurt
	// StateDead - terminal
	StateDead
)

// AllStates lists every state in declaration order.
var AllStates = []State{StateIdle, StatePatrol, StateAlert, StateChase, StateAttack, StateHurt, StateDead}

// String returns human-readable state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StatePatrol:
		return "PATROL"
	case StateAlert:
		return "ALERT"
	case StateChase:
		return "CHASE"
	case StateAttack:
		return "ATTACK"
	case StateHurt:
		return "HURT"
	case StateDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// ParseState is the inverse of String. Returns false for unknown names.
func ParseState(name string) (State, bool) {
	for _, s := range AllStates {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// Class distinguishes the two agent archetypes. They share one record and differ
// only in which states, strategies and attack profiles are populated.
type Class int32

const (
	ClassBasic Class = iota
	ClassBoss
)

func (c Class) String() string {
	switch c {
	case ClassBasic:
		return "basic"
	case ClassBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// ParseClass maps a config name to a Class.
func ParseClass(name string) (Class, bool) {
	switch name {
	case "basic":
		return ClassBasic, true
	case "boss":
		return ClassBoss, true
	}
	return 0, false
}

// States returns the states this class can occupy.
// Bosses fold alert and hurt into their attack-interrupt logic.
func (c Class) States() []State {
	if c == ClassBoss {
		return []State{StatePatrol, StateChase, StateAttack, StateDead}
	}
	return AllStates
}
