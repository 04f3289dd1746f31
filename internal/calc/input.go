package calc

import (
	"errors"
	"fmt"
)

// ErrUnknownInput is returned by ParseInput for unrecognized action names.
var ErrUnknownInput = errors.New("unknown calculator input")

// InputKind identifies the class of a calculator input.
type InputKind uint8

const (
	// InputNone is the zero value and is ignored by Engine.Apply.
	InputNone InputKind = iota
	InputDigit
	InputDecimal
	InputOperator
	InputCompute
	InputClear
	InputClearEntry
	InputBackspace
)

// String returns the action name of the kind.
func (k InputKind) String() string {
	switch k {
	case InputNone:
		return "none"
	case InputDigit:
		return "digit"
	case InputDecimal:
		return "decimal"
	case InputOperator:
		return "operator"
	case InputCompute:
		return "calculate"
	case InputClear:
		return "clear"
	case InputClearEntry:
		return "clear-entry"
	case InputBackspace:
		return "backspace"
	default:
		return fmt.Sprintf("InputKind(%d)", k)
	}
}

// Input is a single discrete calculator input event.
type Input struct {
	Kind InputKind

	// Digit is '0'-'9' for InputDigit.
	Digit rune

	// Op is the operator for InputOperator.
	Op Operator
}

// Digit returns a digit input.
func Digit(d rune) Input { return Input{Kind: InputDigit, Digit: d} }

// Decimal returns a decimal-point input.
func Decimal() Input { return Input{Kind: InputDecimal} }

// Operate returns an operator input.
func Operate(op Operator) Input { return Input{Kind: InputOperator, Op: op} }

// Compute returns a compute ("=") input.
func Compute() Input { return Input{Kind: InputCompute} }

// Clear returns a clear-all input.
func Clear() Input { return Input{Kind: InputClear} }

// ClearEntry returns a clear-entry input.
func ClearEntry() Input { return Input{Kind: InputClearEntry} }

// Backspace returns a backspace input.
func Backspace() Input { return Input{Kind: InputBackspace} }

// String returns the action name that ParseInput accepts for this input.
func (in Input) String() string {
	switch in.Kind {
	case InputDigit:
		return string(in.Digit)
	case InputOperator:
		return in.Op.Symbol()
	default:
		return in.Kind.String()
	}
}

// ParseInput parses an action name: "0"-"9", an operator symbol, or one of
// "decimal", "calculate", "clear", "clear-entry", "backspace".
// "." and "=" are accepted as aliases of "decimal" and "calculate".
func ParseInput(name string) (Input, error) {
	if len(name) == 1 && name[0] >= '0' && name[0] <= '9' {
		return Digit(rune(name[0])), nil
	}
	if op := ParseOperator(name); op != OpNone {
		return Operate(op), nil
	}

	switch name {
	case "decimal", ".":
		return Decimal(), nil
	case "calculate", "=":
		return Compute(), nil
	case "clear":
		return Clear(), nil
	case "clear-entry":
		return ClearEntry(), nil
	case "backspace":
		return Backspace(), nil
	}

	return Input{}, fmt.Errorf("%w: %q", ErrUnknownInput, name)
}
