package cli

import (
	"fmt"

	"github.com/bdutremble/projects/internal/domain/project"
	"github.com/felixgeelhaar/statekit"
)

const (
	stateIdle   = "idle"
	stateActive = "active"

	eventSelect = "select"
	eventClear  = "clear"
)

type sessionContext struct {
	SessionID string
}

// Session holds the project currently being worked on. The project is a
// snapshot from the service and is replaced, never edited, after mutations.
type Session struct {
	id          string
	interpreter *statekit.Interpreter[sessionContext]
	current     *project.Project
}

// NewSession creates a session in the idle state.
func NewSession(id string) (*Session, error) {
	builder := statekit.NewMachine[sessionContext]("selection").
		WithInitial(statekit.StateID(stateIdle)).
		WithContext(sessionContext{SessionID: id})

	builder.State(stateIdle).
		On(eventSelect).Target(stateActive).
		Done()

	builder.State(stateActive).
		On(eventSelect).Target(stateActive).
		On(eventClear).Target(stateIdle).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build selection machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &Session{id: id, interpreter: interpreter}, nil
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Select makes proj the current project. A nil project clears the selection.
func (s *Session) Select(proj *project.Project) {
	if proj == nil {
		s.Clear()
		return
	}
	s.current = proj
	s.interpreter.Send(statekit.Event{Type: eventSelect})
}

// Clear drops the current project.
func (s *Session) Clear() {
	s.current = nil
	s.interpreter.Send(statekit.Event{Type: eventClear})
}

// Current returns the selected project, or nil when idle.
func (s *Session) Current() *project.Project {
	if !s.Active() {
		return nil
	}
	return s.current
}

// Active reports whether a project is selected.
func (s *Session) Active() bool {
	return string(s.interpreter.State().Value) == stateActive
}

// State returns the name of the current selection state.
func (s *Session) State() string {
	return string(s.interpreter.State().Value)
}
