package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsModified returns true if any modifier is pressed.
// For character events, Shift alone is not considered modified
// (since Shift changes the character itself).
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Normalize returns the event with the implicit Shift of character keys
// removed, so "+" typed as Shift+= matches a binding for "+".
// Ctrl combinations use the lowercase rune.
func (e Event) Normalize() Event {
	if !e.IsRune() {
		return e
	}
	e.Modifiers = e.Modifiers.Without(ModShift)
	if e.Modifiers.Has(ModCtrl) {
		e.Rune = unicode.ToLower(e.Rune)
	}
	return e
}

// String returns the canonical Vim-style specification that Parse accepts.
// Examples: "7", "+", "C", "<C-c>", "<CR>", "<Esc>", "<BS>", "<S-Tab>"
func (e Event) String() string {
	e = e.Normalize()

	if e.IsRune() && !e.IsModified() {
		if e.Rune == ' ' {
			return "<Space>"
		}
		if e.Rune == '<' {
			return "<lt>"
		}
		return string(e.Rune)
	}

	var parts []string
	if e.Modifiers.Has(ModCtrl) {
		parts = append(parts, "C")
	}
	if e.Modifiers.Has(ModAlt) {
		parts = append(parts, "A")
	}
	if e.Modifiers.Has(ModMeta) {
		parts = append(parts, "M")
	}
	if e.Modifiers.Has(ModShift) {
		parts = append(parts, "S")
	}

	var keyName string
	switch e.Key {
	case KeyRune:
		switch e.Rune {
		case ' ':
			keyName = "Space"
		case '-':
			keyName = "minus"
		default:
			keyName = string(e.Rune)
		}
	case KeyEscape:
		keyName = "Esc"
	case KeyEnter:
		keyName = "CR"
	case KeyBackspace:
		keyName = "BS"
	case KeyDelete:
		keyName = "Del"
	case KeyInsert:
		keyName = "Ins"
	default:
		keyName = e.Key.String()
	}

	parts = append(parts, keyName)
	return "<" + strings.Join(parts, "-") + ">"
}

// Equals returns true if two events represent the same key press
// after normalization.
func (e Event) Equals(other Event) bool {
	return e.Normalize() == other.Normalize()
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}
