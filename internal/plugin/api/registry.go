package api

import (
	"fmt"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Version is reported to scripts as ks.version.
const Version = "1.0.0"

// Module represents a Lua API module.
type Module interface {
	// Name returns the module name (e.g., "motion", "ui").
	Name() string

	// Register registers the module functions into the Lua state under
	// the _ks_<name> global.
	Register(L *lua.LState) error
}

// Preloader makes a module loadable through require. The sandbox
// implements it.
type Preloader interface {
	Preload(name string, loader lua.LGFunction)
}

// Registry manages API modules and their registration.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates a new API registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]Module),
	}
}

// Register adds a module to the registry.
func (r *Registry) Register(mod Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[mod.Name()]; exists {
		return fmt.Errorf("module %q already registered", mod.Name())
	}
	r.modules[mod.Name()] = mod
	return nil
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mod, ok := r.modules[name]
	return mod, ok
}

// List returns all registered module names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InjectAll registers all modules into L and installs the ks module
// through preloader.
func (r *Registry) InjectAll(L *lua.LState, preloader Preloader) error {
	names := r.List()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range names {
		if err := r.modules[name].Register(L); err != nil {
			return fmt.Errorf("failed to register module %q: %w", name, err)
		}
	}

	installKSLoader(L, preloader, names)
	return nil
}

// installKSLoader collects the _ks_* globals into the ks table and
// removes them from the global environment.
func installKSLoader(L *lua.LState, preloader Preloader, names []string) {
	ksModule := L.NewTable()
	for _, name := range names {
		globalName := "_ks_" + name
		if val := L.GetGlobal(globalName); val != lua.LNil {
			L.SetField(ksModule, name, val)
			L.SetGlobal(globalName, lua.LNil)
		}
	}
	L.SetField(ksModule, "version", lua.LString(Version))

	loader := func(L *lua.LState) int {
		L.Push(ksModule)
		return 1
	}
	if preloader != nil {
		preloader.Preload("ks", loader)
		return
	}
	L.PreloadModule("ks", loader)
}
