package calc

import "strings"

// ErrorToken is shown in place of a result when dividing by zero.
const ErrorToken = "Error"

// initialDisplay is the reset state of the display.
const initialDisplay = "0"

// Engine is the calculator state machine.
// An Engine is not safe for concurrent use; inputs are handled one at a time.
type Engine struct {
	// display is the text currently shown. Never empty.
	display string

	// operand is the first operand captured by ChooseOperator.
	// Only meaningful while op != OpNone.
	operand float64

	// op is the pending operator, OpNone when idle.
	op Operator

	// fresh means the next digit starts a new number.
	fresh bool

	observer func(display string)
}

// State is a snapshot of the engine state.
type State struct {
	Display  string
	Operand  float64
	Operator Operator
	Fresh    bool
}

// Pending returns true if an operator is waiting for its second operand.
func (s State) Pending() bool {
	return s.Operator != OpNone
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver registers a function called with the display text after
// every handled input.
func WithObserver(fn func(display string)) Option {
	return func(e *Engine) {
		e.observer = fn
	}
}

// New creates an engine in the reset state.
func New(opts ...Option) *Engine {
	e := &Engine{display: initialDisplay}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Display returns the current display text.
func (e *Engine) Display() string {
	return e.display
}

// State returns a snapshot of the current state.
func (e *Engine) State() State {
	return State{
		Display:  e.display,
		Operand:  e.operand,
		Operator: e.op,
		Fresh:    e.fresh,
	}
}

// Pending returns true in the PendingOp state.
func (e *Engine) Pending() bool {
	return e.op != OpNone
}

// IsError returns true while the error token is displayed.
func (e *Engine) IsError() bool {
	return e.display == ErrorToken
}

// Apply dispatches in to the matching operation and returns the display.
func (e *Engine) Apply(in Input) string {
	switch in.Kind {
	case InputDigit:
		return e.AppendDigit(in.Digit)
	case InputDecimal:
		return e.AppendDecimalPoint()
	case InputOperator:
		return e.ChooseOperator(in.Op)
	case InputCompute:
		return e.Compute()
	case InputClear:
		return e.ClearAll()
	case InputClearEntry:
		return e.ClearEntry()
	case InputBackspace:
		return e.Backspace()
	default:
		return e.display
	}
}

// AppendDigit types d ('0'-'9'). Other runes are ignored.
//
// The digit replaces the display when it shows "0", the error token, or when
// a fresh entry is expected; otherwise it is appended. A computed result is
// appended to, since compute leaves the fresh-entry flag unset.
func (e *Engine) AppendDigit(d rune) string {
	if d < '0' || d > '9' {
		return e.display
	}

	if e.display == initialDisplay || e.fresh || e.IsError() {
		e.display = string(d)
		e.fresh = false
	} else {
		e.display += string(d)
	}
	return e.notify()
}

// AppendDecimalPoint types a decimal point. It is a no-op if the display
// already contains one.
func (e *Engine) AppendDecimalPoint() string {
	switch {
	case e.fresh || e.IsError():
		e.display = "0."
		e.fresh = false
	case !strings.Contains(e.display, "."):
		e.display += "."
	}
	return e.notify()
}

// ChooseOperator captures the display as the first operand of op.
// A previously pending operator is resolved first, so operators chain left
// to right. OpNone is ignored, as is any operator while the error token is
// displayed: "Error" has no numeric value, so capturing it would only carry
// NaN into the next result.
func (e *Engine) ChooseOperator(op Operator) string {
	if !op.Valid() || e.IsError() {
		return e.display
	}

	if e.op != OpNone {
		e.Compute()
		if e.IsError() {
			// The chain divided by zero; drop the new operator.
			return e.display
		}
	}

	e.operand = parseNumber(e.display)
	e.op = op
	e.fresh = true
	return e.notify()
}

// Compute applies the pending operator to the captured operand and the
// display. It is a no-op when nothing is pending or when no second operand
// has been typed since the operator was chosen.
func (e *Engine) Compute() string {
	if e.op == OpNone || e.fresh {
		return e.notify()
	}

	second := parseNumber(e.display)
	if result, ok := e.op.apply(e.operand, second); ok {
		e.display = formatNumber(round8(result))
	} else {
		e.display = ErrorToken
	}

	e.op = OpNone
	e.operand = 0
	return e.notify()
}

// ClearAll returns the engine to its initial state.
func (e *Engine) ClearAll() string {
	e.display = initialDisplay
	e.operand = 0
	e.op = OpNone
	e.fresh = false
	return e.notify()
}

// ClearEntry resets the display only; a pending operator survives.
func (e *Engine) ClearEntry() string {
	e.display = initialDisplay
	return e.notify()
}

// Backspace drops the last character of the display. The display never
// becomes empty: a single character, a lone sign, or the error token reset
// it to "0". A lone "-" is not a number, so "-5" backspaces to "0".
func (e *Engine) Backspace() string {
	if len(e.display) <= 1 || e.IsError() {
		e.display = initialDisplay
		return e.notify()
	}

	e.display = e.display[:len(e.display)-1]
	if e.display == "-" {
		e.display = initialDisplay
	}
	return e.notify()
}

func (e *Engine) notify() string {
	if e.observer != nil {
		e.observer(e.display)
	}
	return e.display
}
