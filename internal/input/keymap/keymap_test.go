package keymap

import (
	"errors"
	"testing"

	"github.com/dshills/hxmotion/internal/input/mode"
)

func TestLoadDefaults(t *testing.T) {
	r := NewRegistry()
	if err := LoadDefaults(r); err != nil {
		t.Fatalf("LoadDefaults: %v", err)
	}

	tests := []struct {
		mode, keys, want string
	}{
		{mode.Normal, "w", "motion.nextWordStart"},
		{mode.Normal, "B", "motion.prevLongWordStart"},
		{mode.Select, "e", "motion.nextWordEnd"},
		{mode.Select, ".", "motion.repeatLast"},
		{mode.Normal, "q", "app.quit"},
		{mode.Select, "Esc", "mode.normal"},
	}
	for _, tt := range tests {
		b := r.Lookup(tt.mode, tt.keys)
		if b == nil {
			t.Errorf("Lookup(%s, %s) = nil", tt.mode, tt.keys)
			continue
		}
		if b.Action != tt.want {
			t.Errorf("Lookup(%s, %s) = %s, want %s", tt.mode, tt.keys, b.Action, tt.want)
		}
	}

	if b := r.Lookup(mode.Normal, "z"); b != nil {
		t.Errorf("Lookup(z) = %+v, want nil", b)
	}
}

func TestModeKeymapOverridesGlobal(t *testing.T) {
	r := NewRegistry()
	_ = r.Register((&Keymap{Name: "global"}).Add("q", "app.quit"))
	_ = r.Register((&Keymap{Name: "normal", Mode: mode.Normal}).Add("q", "toast.dismiss"))

	if got := r.Lookup(mode.Normal, "q").Action; got != "toast.dismiss" {
		t.Errorf("normal q = %s", got)
	}
	if got := r.Lookup(mode.Select, "q").Action; got != "app.quit" {
		t.Errorf("select q = %s", got)
	}
}

func TestPriorityAndReplace(t *testing.T) {
	r := NewRegistry()
	_ = r.Register((&Keymap{Name: "low", Mode: mode.Normal}).Add("w", "low.action"))
	_ = r.Register(&Keymap{Name: "high", Mode: mode.Normal, Priority: 10, Bindings: []Binding{{Keys: "w", Action: "high.action"}}})

	if got := r.Lookup(mode.Normal, "w").Action; got != "high.action" {
		t.Errorf("Lookup(w) = %s, want high.action", got)
	}

	r.Unregister("high")
	if got := r.Lookup(mode.Normal, "w").Action; got != "low.action" {
		t.Errorf("after unregister Lookup(w) = %s", got)
	}

	_ = r.Register((&Keymap{Name: "low", Mode: mode.Normal}).Add("w", "replaced"))
	if got := r.Lookup(mode.Normal, "w").Action; got != "replaced" {
		t.Errorf("after replace Lookup(w) = %s", got)
	}
}

func TestRegisterInvalid(t *testing.T) {
	r := NewRegistry()
	err := r.Register((&Keymap{Name: "bad"}).Add("", "x"))
	if !errors.Is(err, ErrInvalidBinding) {
		t.Errorf("err = %v, want ErrInvalidBinding", err)
	}
	err = r.Register((&Keymap{Name: "bad"}).Add("x", ""))
	if !errors.Is(err, ErrInvalidBinding) {
		t.Errorf("err = %v, want ErrInvalidBinding", err)
	}
}

func TestAllBindings(t *testing.T) {
	r := NewRegistry()
	if err := LoadDefaults(r); err != nil {
		t.Fatal(err)
	}
	all := r.AllBindings(mode.Normal)
	if len(all) != 12 {
		t.Fatalf("AllBindings(normal) has %d bindings, want 12", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Keys > all[i].Keys {
			t.Fatalf("bindings not sorted: %q before %q", all[i-1].Keys, all[i].Keys)
		}
	}
}
