// Package ui draws the calculator screen: a display box over a 4x5
// keypad, both sized to the terminal.
//
//	┌──────────────────────┐
//	│ +                 42 │
//	└──────────────────────┘
//	[  C ][ CE ][ <- ][  / ]
//	[  7 ][  8 ][  9 ][  * ]
//	[  4 ][  5 ][  6 ][  - ]
//	[  1 ][  2 ][  3 ][  + ]
//	[  0       ][  . ][  = ]
//
// The package holds no calculator state. Callers pass the display text
// in a View and turn clicks into inputs with HitTest.
package ui

import (
	"unicode/utf8"

	"github.com/dshills/pixelcalc/internal/calc"
	"github.com/dshills/pixelcalc/internal/renderer/backend"
)

// NoticeTooSmall is drawn instead of the keypad when it cannot fit.
const NoticeTooSmall = "terminal too small"

const ellipsis = "…"

// helpText is the hint line under the keypad.
const helpText = "q quit  c clear  Enter ="

// View is what the screen shows of the engine.
type View struct {
	// Display is the engine's display text.
	Display string
	// Pending is the operator awaiting its right operand, or calc.OpNone.
	Pending calc.Operator
}

// Screen lays out and draws the calculator.
type Screen struct {
	theme Theme

	width, height int
	tooSmall      bool
	display       backend.Rect
	help          backend.Rect
	buttons       []Button

	// pressed is the highlighted button index, or -1.
	pressed int
}

// NewScreen creates a screen drawn with theme. Call Layout before Draw.
func NewScreen(theme Theme) *Screen {
	return &Screen{
		theme:    theme,
		tooSmall: true,
		pressed:  -1,
	}
}

// Theme returns the current theme.
func (s *Screen) Theme() Theme {
	return s.theme
}

// SetTheme replaces the theme.
func (s *Screen) SetTheme(theme Theme) {
	s.theme = theme
}

// Size returns the size passed to the last Layout.
func (s *Screen) Size() (int, int) {
	return s.width, s.height
}

// TooSmall reports whether the last layout could not fit the keypad.
func (s *Screen) TooSmall() bool {
	return s.tooSmall
}

// DisplayRect returns the display box, border included.
func (s *Screen) DisplayRect() backend.Rect {
	return s.display
}

// Buttons returns a copy of the laid out buttons.
func (s *Screen) Buttons() []Button {
	out := make([]Button, len(s.buttons))
	copy(out, s.buttons)
	return out
}

// Press highlights the button producing in. It returns false if no
// button does.
func (s *Screen) Press(in calc.Input) bool {
	s.pressed = s.buttonFor(in)
	return s.pressed >= 0
}

// Release clears the highlight.
func (s *Screen) Release() {
	s.pressed = -1
}

// Pressed returns the highlighted button.
func (s *Screen) Pressed() (Button, bool) {
	if s.pressed < 0 || s.pressed >= len(s.buttons) {
		return Button{}, false
	}
	return s.buttons[s.pressed], true
}

// Draw renders the whole screen and shows it.
func (s *Screen) Draw(b backend.Backend, view View) {
	b.Clear()

	if s.tooSmall {
		backend.DrawText(b, 0, 0, NoticeTooSmall, s.theme.Notice, s.width)
		b.Show()
		return
	}

	s.drawDisplay(b, view)
	for i, btn := range s.buttons {
		s.drawButton(b, btn, i == s.pressed)
	}
	backend.DrawText(b, s.help.X, s.help.Y, helpText, s.theme.Help, s.help.Width)

	b.Show()
}

func (s *Screen) drawDisplay(b backend.Backend, view View) {
	r := s.display
	border := s.theme.Border
	right := r.X + r.Width - 1
	bottom := r.Y + r.Height - 1

	for x := r.X + 1; x < right; x++ {
		b.SetCell(x, r.Y, backend.Cell{Rune: '─', Style: border})
		b.SetCell(x, bottom, backend.Cell{Rune: '─', Style: border})
	}
	for y := r.Y + 1; y < bottom; y++ {
		b.SetCell(r.X, y, backend.Cell{Rune: '│', Style: border})
		b.SetCell(right, y, backend.Cell{Rune: '│', Style: border})
	}
	b.SetCell(r.X, r.Y, backend.Cell{Rune: '┌', Style: border})
	b.SetCell(right, r.Y, backend.Cell{Rune: '┐', Style: border})
	b.SetCell(r.X, bottom, backend.Cell{Rune: '└', Style: border})
	b.SetCell(right, bottom, backend.Cell{Rune: '┘', Style: border})

	inner := backend.Rect{X: r.X + 1, Y: r.Y + 1, Width: r.Width - 2, Height: r.Height - 2}
	b.Fill(inner, backend.Cell{Rune: ' ', Style: s.theme.Display})

	// One blank column of padding inside each border.
	textX := inner.X + 1
	textW := inner.Width - 2
	if view.Pending.Valid() && textW > 3 {
		b.SetCell(textX, inner.Y, backend.Cell{Rune: rune(view.Pending.Symbol()[0]), Style: s.theme.Display})
		textX += 2
		textW -= 2
	}

	text := fitDisplay(view.Display, textW)
	x := textX + textW - utf8.RuneCountInString(text)
	backend.DrawText(b, x, inner.Y, text, s.theme.Display, textW)
}

func (s *Screen) drawButton(b backend.Backend, btn Button, pressed bool) {
	style := s.theme.style(btn.Kind)
	if pressed {
		style.Reverse = !style.Reverse
	}

	r := btn.Rect
	b.Fill(r, backend.Cell{Rune: ' ', Style: style})

	n := utf8.RuneCountInString(btn.Label)
	x := r.X + (r.Width-n)/2
	y := r.Y + r.Height/2
	backend.DrawText(b, x, y, btn.Label, style, r.Width)
}

// fitDisplay keeps the rightmost width-1 runes of s behind an ellipsis
// when s is wider than width.
func fitDisplay(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return ellipsis
	}
	return ellipsis + string(runes[len(runes)-(width-1):])
}
