// Package calc implements the PixelCalc input/display state machine.
//
// An Engine accepts one discrete input at a time (digit, decimal point,
// operator, compute, clear, clear-entry, backspace) and produces the text
// shown on the calculator display after each one.
//
// # States
//
//	       ChooseOperator             ChooseOperator (resolves old op first)
//	Idle ──────────────────► PendingOp ◄──────┐
//	 ▲                         │  └───────────┘
//	 └──────── Compute ────────┘
//
// ClearAll returns to Idle from any state. Digits, the decimal point,
// backspace and clear-entry only change the display text and the
// fresh-entry flag.
//
// Operators chain strictly left to right with no precedence: 2 + 3 * 4 =
// evaluates (2+3)*4.
//
// # Numbers
//
// Operands are float64 values parsed from the longest numeric prefix of the
// display text. Results are rounded to 8 decimal places before formatting so
// 0.1 + 0.2 shows 0.3. Division by zero shows the ErrorToken instead of a
// number.
//
// # Usage
//
//	e := calc.New(calc.WithObserver(func(display string) {
//		fmt.Println(display)
//	}))
//	e.AppendDigit('1')
//	e.ChooseOperator(calc.OpDivide)
//	e.AppendDigit('3')
//	e.Compute() // "0.33333333"
package calc
