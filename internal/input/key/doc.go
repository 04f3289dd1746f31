// Package key provides key event types and key specification parsing.
//
// This package defines the types the keymap binds calculator actions to:
//
//   - Key: Identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key press with modifiers
//
// # Key Specifications
//
// Key specifications can be written in multiple formats:
//
//   - Simple keys: "7", "+", "c", "Enter", "Escape", "Backspace"
//   - With modifiers: "Ctrl+C", "Alt+Backspace"
//   - Vim-style: "<C-c>", "<CR>", "<Esc>", "<BS>", "<Del>"
//
// Event.String returns the canonical form, which Parse accepts.
package key
