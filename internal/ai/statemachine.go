package ai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/looplab/fsm"

	"github.com/udisondev/bossmind/internal/model"
)

// Transition event names. Forced transitions use forceEvent(state).
const (
	evIdle   = "idle"
	evPatrol = "patrol"
	evAlert  = "alert"
	evChase  = "chase"
	evAttack = "attack"
	evHurt   = "hurt"
	evDie    = "die"
)

func forceEvent(s model.State) string {
	return "force_" + strings.ToLower(s.String())
}

// StateMachine wraps the agent's FSM. Exactly one state is current at any
// time; every transition runs the exit hook of the old state and then the
// entry hook of the new one, once each. Dead is never a source state.
type StateMachine struct {
	fsm   *fsm.FSM
	class model.Class

	onExit  func(from, to model.State)
	onEnter func(from, to model.State)
}

func newStateMachine(class model.Class, initial model.State, onExit, onEnter func(from, to model.State)) *StateMachine {
	sm := &StateMachine{class: class, onExit: onExit, onEnter: onEnter}
	sm.fsm = fsm.NewFSM(
		initial.String(),
		transitionTable(class),
		fsm.Callbacks{
			"leave_state": func(_ context.Context, e *fsm.Event) {
				sm.hook(sm.onExit, e)
			},
			"enter_state": func(_ context.Context, e *fsm.Event) {
				sm.hook(sm.onEnter, e)
			},
		},
	)
	return sm
}

func (sm *StateMachine) hook(fn func(from, to model.State), e *fsm.Event) {
	if fn == nil {
		return
	}
	from, _ := model.ParseState(e.Src)
	to, _ := model.ParseState(e.Dst)
	fn(from, to)
}

// transitionTable lists the permitted transitions of a class.
func transitionTable(class model.Class) fsm.Events {
	names := func(states ...model.State) []string {
		out := make([]string, len(states))
		for i, s := range states {
			out[i] = s.String()
		}
		return out
	}

	var events fsm.Events
	switch class {
	case model.ClassBoss:
		events = fsm.Events{
			{Name: evPatrol, Src: names(model.StateChase, model.StateAttack), Dst: model.StatePatrol.String()},
			{Name: evChase, Src: names(model.StatePatrol, model.StateAttack), Dst: model.StateChase.String()},
			{Name: evAttack, Src: names(model.StateChase), Dst: model.StateAttack.String()},
			{Name: evDie, Src: names(model.StatePatrol, model.StateChase, model.StateAttack), Dst: model.StateDead.String()},
		}
	default:
		living := []model.State{model.StateIdle, model.StatePatrol, model.StateAlert, model.StateChase, model.StateAttack, model.StateHurt}
		events = fsm.Events{
			{Name: evIdle, Src: names(model.StatePatrol, model.StateAlert, model.StateChase, model.StateAttack, model.StateHurt), Dst: model.StateIdle.String()},
			{Name: evPatrol, Src: names(model.StateIdle, model.StateAlert, model.StateChase, model.StateAttack, model.StateHurt), Dst: model.StatePatrol.String()},
			{Name: evAlert, Src: names(model.StateIdle, model.StatePatrol), Dst: model.StateAlert.String()},
			{Name: evChase, Src: names(model.StateAlert, model.StateAttack, model.StateHurt), Dst: model.StateChase.String()},
			{Name: evAttack, Src: names(model.StateChase), Dst: model.StateAttack.String()},
			{Name: evHurt, Src: names(model.StateIdle, model.StatePatrol, model.StateAlert, model.StateChase, model.StateAttack), Dst: model.StateHurt.String()},
			{Name: evDie, Src: names(living...), Dst: model.StateDead.String()},
		}
	}

	states := class.States()
	for _, dst := range states {
		var src []model.State
		for _, s := range states {
			if s != dst && s != model.StateDead {
				src = append(src, s)
			}
		}
		if len(src) == 0 {
			continue
		}
		events = append(events, fsm.EventDesc{Name: forceEvent(dst), Src: names(src...), Dst: dst.String()})
	}
	return events
}

// Current returns the current state.
func (sm *StateMachine) Current() model.State {
	s, _ := model.ParseState(sm.fsm.Current())
	return s
}

// Is reports whether the machine is in s.
func (sm *StateMachine) Is(s model.State) bool {
	return sm.fsm.Is(s.String())
}

// Can reports whether event is permitted from the current state.
func (sm *StateMachine) Can(event string) bool {
	return sm.fsm.Can(event)
}

// Fire attempts a transition. Returns false when the event is not permitted
// from the current state.
func (sm *StateMachine) Fire(event string) bool {
	if !sm.fsm.Can(event) {
		return false
	}
	if err := sm.fsm.Event(context.Background(), event); err != nil {
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) && IsDebugEnabled() {
			slog.Debug("transition rejected", "class", sm.class, "event", event, "state", sm.fsm.Current(), "error", err)
		}
		return false
	}
	return true
}

// Force moves the machine to s from any living state the class allows.
func (sm *StateMachine) Force(s model.State) bool {
	return sm.Fire(forceEvent(s))
}
