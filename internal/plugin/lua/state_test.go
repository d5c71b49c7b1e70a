package lua

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func newTestState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	state, err := NewState(opts...)
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	t.Cleanup(func() { _ = state.Close() })
	return state
}

func TestStateDoString(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if v, ok := state.GetGlobal("x").(glua.LNumber); !ok || v != 2 {
		t.Errorf("x = %v, want 2", state.GetGlobal("x"))
	}

	if err := state.DoString(`this is not lua`); err == nil {
		t.Error("DoString() should fail on a syntax error")
	}
}

func TestStateSafeLibraries(t *testing.T) {
	state := newTestState(t)

	tests := []struct {
		name   string
		code   string
		wantOK bool
	}{
		{"string", `assert(string.upper("a") == "A")`, true},
		{"table", `local t = {} table.insert(t, 1) assert(#t == 1)`, true},
		{"math", `assert(math.floor(1.5) == 1)`, true},
		{"require string", `local s = require("string") assert(s.len("ab") == 2)`, true},
		{"io missing", `io.write("x")`, false},
		{"os missing", `os.exit(1)`, false},
		{"debug missing", `debug.traceback()`, false},
		{"dofile removed", `dofile("/etc/passwd")`, false},
		{"load removed", `load("return 1")()`, false},
		{"require io", `require("io")`, false},
		{"require from disk", `require("socket")`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := state.DoString(tt.code)
			if (err == nil) != tt.wantOK {
				t.Errorf("DoString(%q) error = %v, wantOK %v", tt.code, err, tt.wantOK)
			}
		})
	}
}

func TestStatePrintOutput(t *testing.T) {
	var out bytes.Buffer
	state := newTestState(t, WithOutput(&out))

	if err := state.DoString(`print("a", 1, true)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := out.String(); got != "a\t1\ttrue\n" {
		t.Errorf("print output = %q", got)
	}
}

func TestStateTimeout(t *testing.T) {
	state := newTestState(t, WithExecutionTimeout(50*time.Millisecond))

	err := state.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("DoString() error = %v, want ErrExecutionTimeout", err)
	}

	// The state stays usable after a timeout.
	if err := state.DoString(`y = 3`); err != nil {
		t.Errorf("DoString() after timeout error = %v", err)
	}
}

func TestStateCall(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(`function pair(a) return a, a * 2 end function none() end`); err != nil {
		t.Fatal(err)
	}

	results, err := state.Call("pair", glua.LNumber(3))
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if len(results) != 2 || results[0] != glua.LNumber(3) || results[1] != glua.LNumber(6) {
		t.Errorf("Call() = %v", results)
	}

	results, err = state.Call("none")
	if err != nil || results == nil || len(results) != 0 {
		t.Errorf("Call(none) = %v, %v; want empty slice", results, err)
	}

	if _, err := state.Call("missing"); err == nil || !strings.Contains(err.Error(), "not a function") {
		t.Errorf("Call(missing) error = %v", err)
	}
}

func TestStatePreload(t *testing.T) {
	state := newTestState(t)

	err := state.With(func(L *glua.LState) error {
		state.Sandbox().Preload("greet", func(L *glua.LState) int {
			mod := L.NewTable()
			L.SetField(mod, "name", glua.LString("hx"))
			L.Push(mod)
			return 1
		})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := state.DoString(`assert(require("greet").name == "hx")`); err != nil {
		t.Errorf("require preloaded module error = %v", err)
	}
}

func TestStateClosed(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatal(err)
	}
	if err := state.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := state.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want ErrStateClosed", err)
	}
	if state.GetGlobal("x") != glua.LNil {
		t.Error("GetGlobal on a closed state should be nil")
	}
}
