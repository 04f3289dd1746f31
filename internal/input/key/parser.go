package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "7", "+", "c", "C"
//   - Special keys: "Enter", "Escape", "Backspace", "Delete", "F1"
//   - With modifiers: "Ctrl+C", "Alt+Backspace", "Shift+Tab"
//   - Vim-style: "<C-c>", "<CR>", "<Esc>", "<BS>", "<Del>", "<minus>", "<lt>"
//
// The returned event is normalized (see Event.Normalize).
func Parse(spec string) (Event, error) {
	if strings.TrimSpace(spec) == "" {
		return Event{}, ErrEmptySpec
	}

	// A single character is always literal, including "+", "-" and "<".
	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return NewRuneEvent(r, ModNone), nil
	}

	spec = strings.TrimSpace(spec)

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	// "Ctrl+C" style; a trailing "+" is the key itself ("Shift++").
	if i := strings.LastIndex(strings.TrimSuffix(spec, "+"), "+"); i > 0 {
		return parseModifierStyle(spec[:i], spec[i+1:])
	}

	return parseKey(spec, ModNone)
}

// parseVimStyle parses the inside of Vim-style notation like "C-c", "CR", "S-Tab".
func parseVimStyle(inner string) (Event, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}

	parts := strings.Split(inner, "-")
	keyPart := parts[len(parts)-1]

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseKey(keyPart, mods)
}

// parseModifierStyle parses "Ctrl+Alt" modifiers followed by a key part.
func parseModifierStyle(modPart, keyPart string) (Event, error) {
	var mods Modifier
	for _, p := range strings.Split(modPart, "+") {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseKey(keyPart, mods)
}

// parseKey parses a key name or single character with already-known modifiers.
func parseKey(keyPart string, mods Modifier) (Event, error) {
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	// A single character is literal; do not trim it away if it is a space.
	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		return NewRuneEvent(r, mods).Normalize(), nil
	}

	keyPart = strings.TrimSpace(keyPart)
	switch strings.ToLower(keyPart) {
	case "space":
		return NewRuneEvent(' ', mods).Normalize(), nil
	case "minus":
		return NewRuneEvent('-', mods).Normalize(), nil
	case "plus":
		return NewRuneEvent('+', mods).Normalize(), nil
	case "lt":
		return NewRuneEvent('<', mods).Normalize(), nil
	case "gt":
		return NewRuneEvent('>', mods).Normalize(), nil
	}

	if k := KeyFromName(keyPart); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}

// NormalizeSpec parses and re-formats a key specification to its canonical form.
func NormalizeSpec(spec string) (string, error) {
	event, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return event.String(), nil
}
