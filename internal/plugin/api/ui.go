package api

import (
	lua "github.com/yuin/gopher-lua"
)

// Notifier shows toast notifications on behalf of scripts.
type Notifier interface {
	// Notify shows message at level and returns the toast id.
	Notify(message, level string) (string, error)

	// Dismiss hides the toast with id. An empty id dismisses the visible
	// toast.
	Dismiss(id string) bool
}

// UIModule implements the ks.ui API module.
type UIModule struct {
	notifier Notifier
}

// NewUIModule creates a new UI module.
func NewUIModule(notifier Notifier) *UIModule {
	return &UIModule{notifier: notifier}
}

// Name returns the module name.
func (m *UIModule) Name() string {
	return "ui"
}

// Register registers the module into the Lua state.
func (m *UIModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "notify", L.NewFunction(m.notify))
	L.SetField(mod, "dismiss", L.NewFunction(m.dismiss))

	L.SetGlobal("_ks_ui", mod)
	return nil
}

// notify(message[, level]) -> id
// level is "info" (default), "warn" or "error".
func (m *UIModule) notify(L *lua.LState) int {
	message := L.CheckString(1)
	level := L.OptString(2, "info")

	if m.notifier == nil {
		L.RaiseError("ui not available")
		return 0
	}

	id, err := m.notifier.Notify(message, level)
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}
	L.Push(lua.LString(id))
	return 1
}

// dismiss([id]) -> bool
func (m *UIModule) dismiss(L *lua.LState) int {
	id := L.OptString(1, "")

	if m.notifier == nil {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(m.notifier.Dismiss(id)))
	return 1
}
