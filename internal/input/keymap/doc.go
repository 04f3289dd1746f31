// Package keymap maps key presses to calculator inputs and application
// commands.
//
// # Key Concepts
//
// Keymap: A collection of bindings keyed by normalized key events.
//
// Binding: Maps one key specification to an action name. Action names are
// calculator inputs ("0"-"9", "+", "-", "*", "/", "decimal", "calculate",
// "clear", "clear-entry", "backspace") or commands ("quit").
//
// # Precedence
//
// Later bindings for the same key replace earlier ones, so user bindings
// loaded with Merge override the defaults. Binding a key to "none" removes
// it.
//
// # Key Specifications
//
// Keys use the formats accepted by key.Parse:
//
//	"7"       - Single character
//	"Enter"   - Special key name
//	"<C-c>"   - Ctrl+C (angle bracket notation)
//	"Ctrl+C"  - Ctrl+C (readable notation)
package keymap
