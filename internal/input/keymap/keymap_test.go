package keymap

import (
	"errors"
	"testing"

	"github.com/dshills/pixelcalc/internal/calc"
	"github.com/dshills/pixelcalc/internal/input/key"
)

func TestDefaultKeymap(t *testing.T) {
	km := Default()

	tests := []struct {
		event key.Event
		want  calc.Input
	}{
		{key.NewRuneEvent('0', key.ModNone), calc.Digit('0')},
		{key.NewRuneEvent('7', key.ModNone), calc.Digit('7')},
		{key.NewRuneEvent('+', key.ModShift), calc.Operate(calc.OpAdd)},
		{key.NewRuneEvent('-', key.ModNone), calc.Operate(calc.OpSubtract)},
		{key.NewRuneEvent('*', key.ModShift), calc.Operate(calc.OpMultiply)},
		{key.NewRuneEvent('/', key.ModNone), calc.Operate(calc.OpDivide)},
		{key.NewRuneEvent('.', key.ModNone), calc.Decimal()},
		{key.NewRuneEvent('=', key.ModNone), calc.Compute()},
		{key.NewSpecialEvent(key.KeyEnter, key.ModNone), calc.Compute()},
		{key.NewSpecialEvent(key.KeyEscape, key.ModNone), calc.Clear()},
		{key.NewRuneEvent('c', key.ModNone), calc.Clear()},
		{key.NewRuneEvent('C', key.ModShift), calc.Clear()},
		{key.NewSpecialEvent(key.KeyBackspace, key.ModNone), calc.Backspace()},
		{key.NewSpecialEvent(key.KeyDelete, key.ModNone), calc.ClearEntry()},
	}

	for _, tt := range tests {
		b, ok := km.Lookup(tt.event)
		if !ok {
			t.Errorf("Lookup(%v) not found", tt.event)
			continue
		}
		if b.IsCommand() {
			t.Errorf("Lookup(%v) = command %v, want input", tt.event, b.Command)
			continue
		}
		if b.Input != tt.want {
			t.Errorf("Lookup(%v) = %+v, want %+v", tt.event, b.Input, tt.want)
		}
		if b.Source != SourceDefault {
			t.Errorf("Lookup(%v).Source = %q, want %q", tt.event, b.Source, SourceDefault)
		}
	}
}

func TestDefaultKeymap_Quit(t *testing.T) {
	km := Default()

	for _, ev := range []key.Event{
		key.NewRuneEvent('q', key.ModNone),
		key.NewRuneEvent('c', key.ModCtrl),
	} {
		b, ok := km.Lookup(ev)
		if !ok || b.Command != CommandQuit {
			t.Errorf("Lookup(%v) = %+v, %v, want quit", ev, b, ok)
		}
	}
}

func TestDefaultKeymap_Unbound(t *testing.T) {
	km := Default()

	for _, ev := range []key.Event{
		key.NewRuneEvent('x', key.ModNone),
		key.NewRuneEvent('7', key.ModAlt),
		key.NewSpecialEvent(key.KeyTab, key.ModNone),
	} {
		if b, ok := km.Lookup(ev); ok {
			t.Errorf("Lookup(%v) = %+v, want no binding", ev, b)
		}
	}
}

func TestKeymap_BindOverrides(t *testing.T) {
	km := Default()

	if err := km.Bind("x", "*", SourceUser); err != nil {
		t.Fatalf("Bind error = %v", err)
	}
	if err := km.Bind("c", "clear-entry", SourceUser); err != nil {
		t.Fatalf("Bind error = %v", err)
	}

	b, ok := km.Lookup(key.NewRuneEvent('x', key.ModNone))
	if !ok || b.Input != calc.Operate(calc.OpMultiply) {
		t.Errorf("x = %+v, %v, want multiply", b, ok)
	}
	if b.Source != SourceUser {
		t.Errorf("x source = %q, want %q", b.Source, SourceUser)
	}

	b, _ = km.Lookup(key.NewRuneEvent('c', key.ModNone))
	if b.Input != calc.ClearEntry() {
		t.Errorf("c = %+v, want clear-entry", b.Input)
	}
}

func TestKeymap_Unbind(t *testing.T) {
	km := Default()
	before := km.Len()

	if err := km.Bind("q", ActionUnbind, SourceUser); err != nil {
		t.Fatalf("Bind error = %v", err)
	}
	if _, ok := km.Lookup(key.NewRuneEvent('q', key.ModNone)); ok {
		t.Error("q should be unbound")
	}
	if km.Len() != before-1 {
		t.Errorf("Len() = %d, want %d", km.Len(), before-1)
	}
}

func TestKeymap_BindErrors(t *testing.T) {
	km := New()

	err := km.Bind("Hyper+X", "clear", SourceUser)
	var be *BindingError
	if !errors.As(err, &be) {
		t.Fatalf("Bind error = %v, want *BindingError", err)
	}
	if !errors.Is(err, key.ErrInvalidSpec) {
		t.Errorf("Bind error = %v, want ErrInvalidSpec", err)
	}

	err = km.Bind("x", "sqrt", SourceUser)
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("Bind error = %v, want ErrUnknownAction", err)
	}
	if km.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after failed binds", km.Len())
	}
}

func TestWithOverrides(t *testing.T) {
	km, err := WithOverrides(map[string]string{
		"x":     "*",
		"Enter": "none",
	})
	if err != nil {
		t.Fatalf("WithOverrides error = %v", err)
	}

	if _, ok := km.Lookup(key.NewSpecialEvent(key.KeyEnter, key.ModNone)); ok {
		t.Error("Enter should be unbound")
	}
	if b, ok := km.Lookup(key.NewRuneEvent('=', key.ModNone)); !ok || b.Input != calc.Compute() {
		t.Error("= should still compute")
	}
}

func TestWithOverrides_JoinsErrors(t *testing.T) {
	_, err := WithOverrides(map[string]string{
		"x":       "sqrt",
		"Hyper+Y": "clear",
	})
	if !errors.Is(err, ErrUnknownAction) || !errors.Is(err, key.ErrInvalidSpec) {
		t.Errorf("WithOverrides error = %v, want both failures", err)
	}
}

func TestKeymap_BindingsSortedAndCloned(t *testing.T) {
	km := Default()
	clone := km.Clone()
	if err := clone.Bind("x", "*", SourceUser); err != nil {
		t.Fatal(err)
	}

	if km.Len() == clone.Len() {
		t.Error("clone should be independent")
	}

	list := km.Bindings()
	for i := 1; i < len(list); i++ {
		if list[i-1].Keys > list[i].Keys {
			t.Fatalf("Bindings() not sorted at %d: %q > %q", i, list[i-1].Keys, list[i].Keys)
		}
	}
}
