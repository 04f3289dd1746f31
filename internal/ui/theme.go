package ui

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dshills/pixelcalc/internal/renderer/backend"
)

// DefaultTheme is the theme used when none is configured.
const DefaultTheme = "amber"

// ErrUnknownTheme is returned for theme names without a built-in theme.
var ErrUnknownTheme = errors.New("unknown theme")

// ErrUnknownRole is returned for color overrides naming no theme role.
var ErrUnknownRole = errors.New("unknown color role")

// Theme holds the styles of every screen element.
type Theme struct {
	Name string

	Display  backend.Style
	Border   backend.Style
	Digit    backend.Style
	Operator backend.Style
	Action   backend.Style
	Equals   backend.Style
	Help     backend.Style
	Notice   backend.Style
}

var themes = map[string]Theme{
	"amber": {
		Name:     "amber",
		Display:  backend.Style{Foreground: "#ffb000", Background: "black", Bold: true},
		Border:   backend.Style{Foreground: "#ffb000"},
		Digit:    backend.Style{Foreground: "black", Background: "#ffb000"},
		Operator: backend.Style{Foreground: "black", Background: "darkorange", Bold: true},
		Action:   backend.Style{Foreground: "#ffb000", Background: "#553300"},
		Equals:   backend.Style{Foreground: "black", Background: "#ffcc00", Bold: true},
		Help:     backend.Style{Foreground: "gray"},
		Notice:   backend.Style{Foreground: "#ffb000", Bold: true},
	},
	"mono": {
		Name:     "mono",
		Display:  backend.Style{Bold: true},
		Border:   backend.Style{},
		Digit:    backend.Style{Reverse: true},
		Operator: backend.Style{Reverse: true, Bold: true},
		Action:   backend.Style{Reverse: true},
		Equals:   backend.Style{Reverse: true, Bold: true},
		Help:     backend.Style{},
		Notice:   backend.Style{Bold: true},
	},
}

// roles maps override names to the color they replace.
var roles = map[string]func(t *Theme) *backend.Color{
	"display_fg":  func(t *Theme) *backend.Color { return &t.Display.Foreground },
	"display_bg":  func(t *Theme) *backend.Color { return &t.Display.Background },
	"border_fg":   func(t *Theme) *backend.Color { return &t.Border.Foreground },
	"digit_fg":    func(t *Theme) *backend.Color { return &t.Digit.Foreground },
	"digit_bg":    func(t *Theme) *backend.Color { return &t.Digit.Background },
	"operator_fg": func(t *Theme) *backend.Color { return &t.Operator.Foreground },
	"operator_bg": func(t *Theme) *backend.Color { return &t.Operator.Background },
	"action_fg":   func(t *Theme) *backend.Color { return &t.Action.Foreground },
	"action_bg":   func(t *Theme) *backend.Color { return &t.Action.Background },
	"equals_fg":   func(t *Theme) *backend.Color { return &t.Equals.Foreground },
	"equals_bg":   func(t *Theme) *backend.Color { return &t.Equals.Background },
	"help_fg":     func(t *Theme) *backend.Color { return &t.Help.Foreground },
}

// ThemeByName returns a built-in theme.
func ThemeByName(name string) (Theme, error) {
	t, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return t, nil
}

// HasTheme reports whether name is a built-in theme.
func HasTheme(name string) bool {
	_, ok := themes[name]
	return ok
}

// ThemeNames returns the built-in theme names, sorted.
func ThemeNames() []string {
	return slices.Sorted(maps.Keys(themes))
}

// IsRole reports whether name is a color role accepted by WithColors.
func IsRole(name string) bool {
	_, ok := roles[name]
	return ok
}

// Roles returns the color role names, sorted.
func Roles() []string {
	return slices.Sorted(maps.Keys(roles))
}

// WithColors returns a copy of t with the given roles recolored.
func (t Theme) WithColors(colors map[string]string) (Theme, error) {
	for _, role := range slices.Sorted(maps.Keys(colors)) {
		field, ok := roles[role]
		if !ok {
			return t, fmt.Errorf("%w: %q", ErrUnknownRole, role)
		}
		*field(&t) = backend.Color(colors[role])
	}
	return t, nil
}

// style returns the style of a button kind.
func (t Theme) style(kind ButtonKind) backend.Style {
	switch kind {
	case KindOperator:
		return t.Operator
	case KindAction:
		return t.Action
	case KindEquals:
		return t.Equals
	default:
		return t.Digit
	}
}
