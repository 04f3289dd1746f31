package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/pixelcalc/internal/calc"
	"github.com/dshills/pixelcalc/internal/input/key"
)

// Command is an application-level action that is not a calculator input.
type Command uint8

const (
	// CommandNone means the binding is a calculator input.
	CommandNone Command = iota
	// CommandQuit exits the application.
	CommandQuit
)

// String returns the action name of the command.
func (c Command) String() string {
	switch c {
	case CommandQuit:
		return "quit"
	default:
		return "none"
	}
}

// ActionUnbind removes a binding when used as an action name.
const ActionUnbind = "none"

// ErrUnknownAction indicates an action name that is neither a calculator
// input nor a command.
var ErrUnknownAction = errors.New("unknown action")

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the canonical key specification.
	Keys string

	// Action is the action name the binding was created from.
	Action string

	// Input is the calculator input; zero when Command is set.
	Input calc.Input

	// Command is the application command, CommandNone for inputs.
	Command Command

	// Source indicates where the binding was defined ("default", "user").
	Source string
}

// IsCommand returns true if the binding triggers an application command.
func (b Binding) IsCommand() bool {
	return b.Command != CommandNone
}

// NewBinding parses a key specification and an action name.
func NewBinding(keys, action string) (Binding, error) {
	b, _, err := newBinding(keys, action)
	return b, err
}

func newBinding(keys, action string) (Binding, key.Event, error) {
	ev, err := key.Parse(keys)
	if err != nil {
		return Binding{}, key.Event{}, &BindingError{Keys: keys, Action: action, Err: err}
	}

	b := Binding{Keys: ev.String(), Action: action}
	if action == CommandQuit.String() {
		b.Command = CommandQuit
		return b, ev, nil
	}

	in, err := calc.ParseInput(action)
	if err != nil {
		return Binding{}, key.Event{}, &BindingError{
			Keys:   keys,
			Action: action,
			Err:    fmt.Errorf("%w: %q", ErrUnknownAction, action),
		}
	}
	b.Input = in
	return b, ev, nil
}

// BindingError reports a binding that could not be created.
type BindingError struct {
	Keys   string
	Action string
	Err    error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("binding %q -> %q: %v", e.Keys, e.Action, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}
