package keymap

// SourceDefault marks built-in bindings.
const SourceDefault = "default"

// SourceUser marks bindings from the config file.
const SourceUser = "user"

// defaultBindings mirrors the keyboard handler of the original page, plus
// Delete for clear-entry and the quit keys a terminal needs.
var defaultBindings = map[string]string{
	"0": "0", "1": "1", "2": "2", "3": "3", "4": "4",
	"5": "5", "6": "6", "7": "7", "8": "8", "9": "9",

	"+": "+",
	"-": "-",
	"*": "*",
	"/": "/",

	".":      "decimal",
	"=":      "calculate",
	"Enter":  "calculate",
	"Escape": "clear",
	"c":      "clear",
	"C":      "clear",

	"Backspace": "backspace",
	"Delete":    "clear-entry",

	"Ctrl+C": "quit",
	"q":      "quit",
}

// Default returns the built-in keymap.
func Default() *Keymap {
	k := New()
	if err := k.Merge(defaultBindings, SourceDefault); err != nil {
		panic("keymap: invalid default binding: " + err.Error())
	}
	return k
}

// WithOverrides returns the default keymap with user bindings layered on top.
func WithOverrides(spec map[string]string) (*Keymap, error) {
	k := Default()
	if err := k.Merge(spec, SourceUser); err != nil {
		return nil, err
	}
	return k, nil
}
