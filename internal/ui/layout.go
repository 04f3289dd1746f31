package ui

import (
	"github.com/dshills/pixelcalc/internal/calc"
	"github.com/dshills/pixelcalc/internal/renderer/backend"
)

// Grid geometry, in cells.
const (
	columns         = 4
	rows            = 5
	margin          = 1
	colGap          = 1
	displayHeight   = 3
	minButtonWidth  = 3
	maxButtonWidth  = 9
	maxButtonHeight = 3
)

// ButtonKind groups buttons for styling.
type ButtonKind uint8

const (
	KindDigit ButtonKind = iota
	KindOperator
	KindAction
	KindEquals
)

// Button is one clickable key of the on-screen keypad.
type Button struct {
	Label string
	Input calc.Input
	Kind  ButtonKind
	Rect  backend.Rect
}

type cellSpec struct {
	label    string
	input    calc.Input
	kind     ButtonKind
	col, row int
	span     int
}

// keypad is the button grid, row by row.
var keypad = []cellSpec{
	{"C", calc.Clear(), KindAction, 0, 0, 1},
	{"CE", calc.ClearEntry(), KindAction, 1, 0, 1},
	{"<-", calc.Backspace(), KindAction, 2, 0, 1},
	{"/", calc.Operate(calc.OpDivide), KindOperator, 3, 0, 1},

	{"7", calc.Digit('7'), KindDigit, 0, 1, 1},
	{"8", calc.Digit('8'), KindDigit, 1, 1, 1},
	{"9", calc.Digit('9'), KindDigit, 2, 1, 1},
	{"*", calc.Operate(calc.OpMultiply), KindOperator, 3, 1, 1},

	{"4", calc.Digit('4'), KindDigit, 0, 2, 1},
	{"5", calc.Digit('5'), KindDigit, 1, 2, 1},
	{"6", calc.Digit('6'), KindDigit, 2, 2, 1},
	{"-", calc.Operate(calc.OpSubtract), KindOperator, 3, 2, 1},

	{"1", calc.Digit('1'), KindDigit, 0, 3, 1},
	{"2", calc.Digit('2'), KindDigit, 1, 3, 1},
	{"3", calc.Digit('3'), KindDigit, 2, 3, 1},
	{"+", calc.Operate(calc.OpAdd), KindOperator, 3, 3, 1},

	{"0", calc.Digit('0'), KindDigit, 0, 4, 2},
	{".", calc.Decimal(), KindDigit, 2, 4, 1},
	{"=", calc.Compute(), KindEquals, 3, 4, 1},
}

// Layout computes the display and button rectangles for a terminal of
// the given size. If the keypad does not fit, the screen switches to a
// one-line notice.
func (s *Screen) Layout(width, height int) {
	s.width, s.height = width, height
	s.buttons = s.buttons[:0]
	s.tooSmall = false

	btnW := min((width-2*margin-(columns-1)*colGap)/columns, maxButtonWidth)

	// Below the display: one blank row, the grid, the help line.
	avail := height - 2*margin - displayHeight - 2
	rowGap := 1
	btnH := (avail - (rows-1)*rowGap) / rows
	if btnH < 1 {
		rowGap = 0
		btnH = avail / rows
	}

	if btnW < minButtonWidth || btnH < 1 {
		s.tooSmall = true
		return
	}
	btnH = min(btnH, maxButtonHeight)

	panelW := columns*btnW + (columns-1)*colGap
	x0 := (width - panelW) / 2

	s.display = backend.Rect{X: x0, Y: margin, Width: panelW, Height: displayHeight}

	gridY := margin + displayHeight + 1
	for _, c := range keypad {
		s.buttons = append(s.buttons, Button{
			Label: c.label,
			Input: c.input,
			Kind:  c.kind,
			Rect: backend.Rect{
				X:      x0 + c.col*(btnW+colGap),
				Y:      gridY + c.row*(btnH+rowGap),
				Width:  c.span*btnW + (c.span-1)*colGap,
				Height: btnH,
			},
		})
	}

	s.help = backend.Rect{
		X:      x0,
		Y:      gridY + rows*btnH + (rows-1)*rowGap,
		Width:  panelW,
		Height: 1,
	}
}

// HitTest returns the button under (x, y).
func (s *Screen) HitTest(x, y int) (Button, bool) {
	if i := s.buttonAt(x, y); i >= 0 {
		return s.buttons[i], true
	}
	return Button{}, false
}

func (s *Screen) buttonAt(x, y int) int {
	for i, b := range s.buttons {
		if b.Rect.Contains(x, y) {
			return i
		}
	}
	return -1
}

// buttonFor returns the index of the button producing in, or -1.
func (s *Screen) buttonFor(in calc.Input) int {
	for i, b := range s.buttons {
		if b.Input == in {
			return i
		}
	}
	return -1
}
