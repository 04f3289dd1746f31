package calc

import "fmt"

// Operator is one of the four arithmetic operations.
// The zero value OpNone means no operation is pending.
type Operator uint8

const (
	// OpNone is the absence of an operator.
	OpNone Operator = iota
	// OpAdd adds the operands.
	OpAdd
	// OpSubtract subtracts the second operand from the first.
	OpSubtract
	// OpMultiply multiplies the operands.
	OpMultiply
	// OpDivide divides the first operand by the second.
	OpDivide
)

// Valid returns true for the four arithmetic operators.
func (op Operator) Valid() bool {
	return op >= OpAdd && op <= OpDivide
}

// Symbol returns the conventional button/key symbol for the operator.
func (op Operator) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return ""
	}
}

// String returns the operator name.
func (op Operator) String() string {
	switch op {
	case OpNone:
		return "none"
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return fmt.Sprintf("Operator(%d)", op)
	}
}

// ParseOperator returns the operator for a symbol ("+", "-", "*", "/").
// Returns OpNone if the symbol is not an operator.
func ParseOperator(symbol string) Operator {
	switch symbol {
	case "+":
		return OpAdd
	case "-":
		return OpSubtract
	case "*":
		return OpMultiply
	case "/":
		return OpDivide
	default:
		return OpNone
	}
}

// apply evaluates a op b. ok is false for division by zero.
func (op Operator) apply(a, b float64) (result float64, ok bool) {
	switch op {
	case OpAdd:
		return a + b, true
	case OpSubtract:
		return a - b, true
	case OpMultiply:
		return a * b, true
	case OpDivide:
		if b == 0 {
			return 0, false
		}
		return a / b, true
	default:
		return 0, false
	}
}
