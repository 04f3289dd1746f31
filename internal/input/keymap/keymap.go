package keymap

import (
	"errors"
	"sort"

	"github.com/dshills/pixelcalc/internal/input/key"
)

// Keymap holds key bindings.
type Keymap struct {
	bindings map[key.Event]Binding
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{bindings: make(map[key.Event]Binding)}
}

// Bind adds or replaces the binding for keys. The action "none" removes it.
func (k *Keymap) Bind(keys, action, source string) error {
	if action == ActionUnbind {
		ev, err := key.Parse(keys)
		if err != nil {
			return &BindingError{Keys: keys, Action: action, Err: err}
		}
		delete(k.bindings, ev)
		return nil
	}

	b, ev, err := newBinding(keys, action)
	if err != nil {
		return err
	}
	b.Source = source
	k.bindings[ev] = b
	return nil
}

// Merge binds every entry of spec (key specification -> action name) with
// the given source. All entries are attempted; the returned error joins
// every failure.
func (k *Keymap) Merge(spec map[string]string, source string) error {
	names := make([]string, 0, len(spec))
	for name := range spec {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := k.Bind(name, spec[name], source); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Lookup returns the binding for a key press.
func (k *Keymap) Lookup(ev key.Event) (Binding, bool) {
	b, ok := k.bindings[ev.Normalize()]
	return b, ok
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	return len(k.bindings)
}

// Bindings returns all bindings sorted by key specification.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.bindings))
	for _, b := range k.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Keys < out[j].Keys
	})
	return out
}

// Clone returns an independent copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	c := New()
	for ev, b := range k.bindings {
		c.bindings[ev] = b
	}
	return c
}
