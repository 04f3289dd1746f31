package key

import "testing"

func TestModifierHasWith(t *testing.T) {
	mod := ModNone.With(ModCtrl).With(ModShift)

	if !mod.Has(ModCtrl) || !mod.Has(ModShift) {
		t.Errorf("mod = %v, want Ctrl and Shift", mod)
	}
	if mod.Has(ModAlt) {
		t.Error("mod should not have Alt")
	}

	mod = mod.Without(ModShift)
	if mod != ModCtrl {
		t.Errorf("Without(ModShift) = %v, want Ctrl", mod)
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModCtrl | ModAlt, "Ctrl+Alt"},
		{ModShift | ModMeta, "Shift+Meta"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestModifierFromName(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
	}{
		{"ctrl", ModCtrl},
		{"Control", ModCtrl},
		{"C", ModCtrl},
		{"alt", ModAlt},
		{"opt", ModAlt},
		{"shift", ModShift},
		{"cmd", ModMeta},
		{"hyper", ModNone},
	}

	for _, tt := range tests {
		if got := ModifierFromName(tt.name); got != tt.want {
			t.Errorf("ModifierFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
