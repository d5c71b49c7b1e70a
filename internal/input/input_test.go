package input

import "testing"

func TestActionArgs(t *testing.T) {
	a := Action{Name: "toast.show"}.
		WithText("hello").
		WithArg("level", "warn").
		WithArg("n", 3).
		WithArg("f", float64(4)).
		WithArg("sticky", true)

	if a.Args.Text != "hello" {
		t.Errorf("Text = %q", a.Args.Text)
	}
	if got := a.Args.GetString("level"); got != "warn" {
		t.Errorf("GetString(level) = %q", got)
	}
	if got := a.Args.GetInt("n"); got != 3 {
		t.Errorf("GetInt(n) = %d", got)
	}
	if got := a.Args.GetInt("f"); got != 4 {
		t.Errorf("GetInt(f) = %d", got)
	}
	if !a.Args.GetBool("sticky") {
		t.Error("GetBool(sticky) = false")
	}
	if got := a.Args.GetString("missing"); got != "" {
		t.Errorf("GetString(missing) = %q", got)
	}
	if _, ok := (ActionArgs{}).Get("x"); ok {
		t.Error("Get on nil Extra should fail")
	}
}

func TestWithArgDoesNotShareMap(t *testing.T) {
	base := Action{Name: "x"}.WithArg("a", 1)
	derived := base.WithArg("b", 2)

	if _, ok := base.Args.Get("b"); ok {
		t.Error("WithArg modified the original action")
	}
	if derived.Args.GetInt("a") != 1 || derived.Args.GetInt("b") != 2 {
		t.Errorf("derived args = %v", derived.Args.Extra)
	}
}

func TestContextCount(t *testing.T) {
	c := NewContext()
	if c.Mode != "normal" {
		t.Errorf("Mode = %q", c.Mode)
	}
	if c.GetCount() != 1 || c.HasPendingCount() {
		t.Error("fresh context should have no count")
	}

	c.AccumulateCount(1)
	c.AccumulateCount(2)
	c.AccumulateCount(42) // ignored
	if c.GetCount() != 12 {
		t.Errorf("GetCount() = %d, want 12", c.GetCount())
	}

	clone := c.Clone()
	c.ClearPending()
	if c.HasPendingCount() {
		t.Error("ClearPending did not reset count")
	}
	if clone.GetCount() != 12 {
		t.Error("clone shares state with original")
	}
}

func TestActionSourceString(t *testing.T) {
	tests := map[ActionSource]string{
		SourceKeyboard:    "keyboard",
		SourceCommandLine: "command-line",
		SourcePlugin:      "plugin",
		SourceAPI:         "api",
		ActionSource(99):  "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", s, got, want)
		}
	}
}
