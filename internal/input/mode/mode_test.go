package mode

import "testing"

func TestManagerDefaults(t *testing.T) {
	m := NewManager()
	if m.CurrentName() != Normal {
		t.Errorf("CurrentName() = %q, want normal", m.CurrentName())
	}
	if m.Extends() {
		t.Error("normal mode should not extend")
	}
}

func TestManagerSwitch(t *testing.T) {
	m := NewManager()

	var changes [][2]string
	m.OnChange(func(from, to Mode) {
		changes = append(changes, [2]string{from.Name, to.Name})
	})

	if err := m.Switch(Select); err != nil {
		t.Fatalf("Switch(select): %v", err)
	}
	if !m.IsMode(Select) || !m.Extends() {
		t.Error("expected select mode to extend")
	}

	// Switching to the current mode does not notify.
	if err := m.Switch(Select); err != nil {
		t.Fatal(err)
	}

	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}
	if !m.IsMode(Normal) {
		t.Errorf("Toggle() left mode %q", m.CurrentName())
	}

	if len(changes) != 2 {
		t.Fatalf("got %d change callbacks, want 2", len(changes))
	}
	if changes[0] != [2]string{Normal, Select} || changes[1] != [2]string{Select, Normal} {
		t.Errorf("changes = %v", changes)
	}
}

func TestManagerUnknownMode(t *testing.T) {
	m := NewManager()
	if err := m.Switch("insert"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if !m.IsMode(Normal) {
		t.Error("failed switch changed the mode")
	}
}

func TestManagerRegister(t *testing.T) {
	m := NewManager()
	m.Register(Mode{Name: "visual", DisplayName: "VIS", Extends: true})
	if err := m.Switch("visual"); err != nil {
		t.Fatal(err)
	}
	if m.Current().DisplayName != "VIS" {
		t.Errorf("DisplayName = %q", m.Current().DisplayName)
	}
}
