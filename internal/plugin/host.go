package plugin

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hxmotion/internal/plugin/api"
	plua "github.com/dshills/hxmotion/internal/plugin/lua"
)

// Host runs a single user script in a sandboxed Lua state with the ks
// API modules installed.
type Host struct {
	mu sync.RWMutex

	path string
	name string

	state *plua.State

	status State
	err    error

	config map[string]any

	finder   api.FinderProvider
	notifier api.Notifier

	executionTimeout time.Duration
	output           io.Writer
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostExecutionTimeout sets the timeout for each script call.
func WithHostExecutionTimeout(d time.Duration) HostOption {
	return func(h *Host) {
		h.executionTimeout = d
	}
}

// WithHostOutput sets where the script's print writes.
func WithHostOutput(w io.Writer) HostOption {
	return func(h *Host) {
		h.output = w
	}
}

// WithHostConfig sets the table passed to the script's setup function.
func WithHostConfig(config map[string]any) HostOption {
	return func(h *Host) {
		h.config = config
	}
}

// WithFinder sets the finder provider behind ks.motion.
func WithFinder(p api.FinderProvider) HostOption {
	return func(h *Host) {
		h.finder = p
	}
}

// WithNotifier sets the notifier behind ks.ui.
func WithNotifier(n api.Notifier) HostOption {
	return func(h *Host) {
		h.notifier = n
	}
}

// NewHost creates a host for the script at path.
func NewHost(path string, opts ...HostOption) (*Host, error) {
	if path == "" {
		return nil, ErrNoScript
	}

	h := &Host{
		path:             path,
		name:             strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		status:           StateUnloaded,
		config:           make(map[string]any),
		executionTimeout: plua.DefaultExecutionTimeout,
		output:           io.Discard,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Name returns the script name (file name without extension).
func (h *Host) Name() string {
	return h.name
}

// Path returns the script path.
func (h *Host) Path() string {
	return h.path
}

// State returns the current script state.
func (h *Host) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

// Error returns the error that moved the host into StateError.
func (h *Host) Error() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

// Load creates the Lua state, installs the API and runs the script.
func (h *Host) Load(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.status != StateUnloaded {
		return ErrAlreadyLoaded
	}

	state, err := plua.NewState(
		plua.WithExecutionTimeout(h.executionTimeout),
		plua.WithOutput(h.output),
	)
	if err != nil {
		return h.fail(err)
	}

	registry := api.NewRegistry()
	for _, mod := range []api.Module{
		api.NewMotionModule(h.finder),
		api.NewUIModule(h.notifier),
	} {
		if err := registry.Register(mod); err != nil {
			state.Close()
			return h.fail(err)
		}
	}
	err = state.With(func(L *lua.LState) error {
		return registry.InjectAll(L, state.Sandbox())
	})
	if err != nil {
		state.Close()
		return h.fail(fmt.Errorf("failed to install api: %w", err))
	}

	if err := ctx.Err(); err != nil {
		state.Close()
		return h.fail(err)
	}
	if err := state.DoFile(h.path); err != nil {
		state.Close()
		return h.fail(fmt.Errorf("failed to load %s: %w", h.name, err))
	}

	h.state = state
	h.status = StateLoaded
	h.err = nil
	return nil
}

// Activate calls the script's optional setup(config) and activate()
// functions.
func (h *Host) Activate(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.status != StateLoaded {
		return ErrNotLoaded
	}

	var cfg lua.LValue
	_ = h.state.With(func(L *lua.LState) error {
		cfg = toLua(L, h.config)
		return nil
	})

	if err := h.callOptional(ctx, "setup", cfg); err != nil {
		return h.fail(err)
	}
	if err := h.callOptional(ctx, "activate"); err != nil {
		return h.fail(err)
	}

	h.status = StateActive
	return nil
}

// Deactivate calls the script's optional deactivate() function.
func (h *Host) Deactivate(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.status != StateActive {
		return nil
	}
	err := h.callOptional(ctx, "deactivate")
	h.status = StateLoaded
	return err
}

// Emit calls the optional hook fn with args converted to Lua values. It
// does nothing unless the script is active.
func (h *Host) Emit(ctx context.Context, fn string, args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.status != StateActive {
		return nil
	}

	values := make([]lua.LValue, len(args))
	_ = h.state.With(func(L *lua.LState) error {
		for i, a := range args {
			values[i] = toLua(L, a)
		}
		return nil
	})
	return h.callOptional(ctx, fn, values...)
}

// Call calls a global function defined by the script. Calls are
// serialized since a Lua state is single-threaded.
func (h *Host) Call(fn string, args ...lua.LValue) ([]lua.LValue, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.status.IsUsable() {
		return nil, ErrNotLoaded
	}
	return h.state.Call(fn, args...)
}

// Close releases the Lua state.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.status == StateActive {
		_ = h.callOptional(context.Background(), "deactivate")
	}
	h.status = StateClosed
	if h.state == nil {
		return nil
	}
	err := h.state.Close()
	h.state = nil
	return err
}

func (h *Host) fail(err error) error {
	h.status = StateError
	h.err = err
	return err
}

// callOptional calls fn if the script defines it as a function.
func (h *Host) callOptional(ctx context.Context, fn string, args ...lua.LValue) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.state.GetGlobal(fn).Type() != lua.LTFunction {
		return nil
	}
	if _, err := h.state.Call(fn, args...); err != nil {
		return fmt.Errorf("%s.%s: %w", h.name, fn, err)
	}
	return nil
}

// toLua converts Go configuration values to Lua values. Unsupported
// types become their fmt representation.
func toLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return val
	case string:
		return lua.LString(val)
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case time.Duration:
		return lua.LString(val.String())
	case []string:
		tbl := L.NewTable()
		for i, s := range val {
			tbl.RawSetInt(i+1, lua.LString(s))
		}
		return tbl
	case []any:
		tbl := L.NewTable()
		for i, item := range val {
			tbl.RawSetInt(i+1, toLua(L, item))
		}
		return tbl
	case map[string]any:
		tbl := L.NewTable()
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			tbl.RawSetString(k, toLua(L, val[k]))
		}
		return tbl
	default:
		return lua.LString(fmt.Sprint(val))
	}
}
