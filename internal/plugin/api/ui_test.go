package api

import (
	"errors"
	"strings"
	"sync"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

type notification struct {
	message string
	level   string
}

// mockNotifier implements Notifier for testing.
type mockNotifier struct {
	mu        sync.Mutex
	shown     []notification
	dismissed []string
	visible   string
}

func (m *mockNotifier) Notify(message, level string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch level {
	case "info", "warn", "error":
	default:
		return "", errors.New("unknown level " + level)
	}
	m.shown = append(m.shown, notification{message, level})
	m.visible = "toast-" + message
	return m.visible, nil
}

func (m *mockNotifier) Dismiss(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dismissed = append(m.dismissed, id)
	if m.visible == "" || (id != "" && id != m.visible) {
		return false
	}
	m.visible = ""
	return true
}

func setupUITest(t *testing.T, notifier Notifier) *lua.LState {
	t.Helper()
	L := lua.NewState()
	t.Cleanup(L.Close)

	r := NewRegistry()
	if err := r.Register(NewUIModule(notifier)); err != nil {
		t.Fatal(err)
	}
	if err := r.InjectAll(L, nil); err != nil {
		t.Fatal(err)
	}
	if err := L.DoString(`ks = require("ks")`); err != nil {
		t.Fatal(err)
	}
	return L
}

func TestUIModuleNotify(t *testing.T) {
	n := &mockNotifier{}
	L := setupUITest(t, n)

	err := L.DoString(`
		local id = ks.ui.notify("saved")
		assert(id == "toast-saved", id)
		ks.ui.notify("careful", "warn")
	`)
	if err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	want := []notification{{"saved", "info"}, {"careful", "warn"}}
	if len(n.shown) != len(want) {
		t.Fatalf("shown = %v, want %v", n.shown, want)
	}
	for i := range want {
		if n.shown[i] != want[i] {
			t.Errorf("shown[%d] = %v, want %v", i, n.shown[i], want[i])
		}
	}
}

func TestUIModuleNotifyBadLevel(t *testing.T) {
	L := setupUITest(t, &mockNotifier{})

	err := L.DoString(`ks.ui.notify("x", "loud")`)
	if err == nil || !strings.Contains(err.Error(), "unknown level") {
		t.Errorf("error = %v, want unknown level", err)
	}
}

func TestUIModuleDismiss(t *testing.T) {
	n := &mockNotifier{}
	L := setupUITest(t, n)

	err := L.DoString(`
		local id = ks.ui.notify("one")
		assert(ks.ui.dismiss("other") == false)
		assert(ks.ui.dismiss(id) == true)
		assert(ks.ui.dismiss() == false)
	`)
	if err != nil {
		t.Fatalf("DoString error = %v", err)
	}
	if len(n.dismissed) != 3 || n.dismissed[2] != "" {
		t.Errorf("dismissed = %v", n.dismissed)
	}
}

func TestUIModuleWithoutNotifier(t *testing.T) {
	L := setupUITest(t, nil)

	if err := L.DoString(`ks.ui.notify("x")`); err == nil {
		t.Error("notify without a notifier should fail")
	}
	if err := L.DoString(`assert(ks.ui.dismiss("x") == false)`); err != nil {
		t.Errorf("dismiss without a notifier error = %v", err)
	}
}
