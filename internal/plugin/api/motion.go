package api

import (
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hxmotion/internal/engine/buffer"
	"github.com/dshills/hxmotion/internal/motion"
	"github.com/dshills/hxmotion/internal/motion/charclass"
)

// FinderProvider supplies the finder scripts run motions with. It is
// consulted on every call so configuration reloads take effect.
type FinderProvider interface {
	Finder() *motion.Finder
}

// StaticFinder is a FinderProvider that always returns the same finder.
type StaticFinder struct {
	F *motion.Finder
}

// Finder implements FinderProvider.
func (s StaticFinder) Finder() *motion.Finder {
	return s.F
}

// MotionModule implements the ks.motion API module.
type MotionModule struct {
	provider FinderProvider
}

// NewMotionModule creates a motion module. A nil provider uses the
// default finder.
func NewMotionModule(provider FinderProvider) *MotionModule {
	if provider == nil {
		provider = StaticFinder{F: motion.NewFinder(nil)}
	}
	return &MotionModule{provider: provider}
}

// Name returns the module name.
func (m *MotionModule) Name() string {
	return "motion"
}

// Register registers the module into the Lua state.
func (m *MotionModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	for _, kind := range motion.Kinds() {
		L.SetField(mod, kind.String(), L.NewFunction(m.kindFunc(kind)))
	}
	L.SetField(mod, "move", L.NewFunction(m.move))
	L.SetField(mod, "classify", L.NewFunction(m.classify))
	L.SetField(mod, "kinds", L.NewFunction(m.kinds))

	L.SetGlobal("_ks_motion", mod)
	return nil
}

// <kind>(text, offset[, filetype[, count]]) -> head, found
func (m *MotionModule) kindFunc(kind motion.Kind) lua.LGFunction {
	return func(L *lua.LState) int {
		return m.run(L, kind, 1)
	}
}

// move(kind, text, offset[, filetype[, count]]) -> head, found
// kind is a motion name ("next_word_start") or key ("w").
func (m *MotionModule) move(L *lua.LState) int {
	kind, err := motion.ParseKind(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	return m.run(L, kind, 2)
}

// run reads (text, offset[, filetype[, count]]) starting at argument base.
func (m *MotionModule) run(L *lua.LState, kind motion.Kind, base int) int {
	text := L.CheckString(base)
	offset := L.CheckInt(base + 1)
	fileType := L.OptString(base+2, "")
	count := L.OptInt(base+3, 1)

	snap := buffer.NewSnapshot(text, buffer.WithFileType(fileType))
	pos := buffer.ByteOffset(offset)
	if !snap.IsRuneBoundary(pos) {
		L.ArgError(base+1, "offset is outside the text or inside a character")
		return 0
	}
	if count < 1 {
		L.ArgError(base+3, "count must be positive")
		return 0
	}

	head, res := m.provider.Finder().Move(kind, snap, pos, count)
	L.Push(lua.LNumber(head))
	L.Push(lua.LBool(res.Found))
	return 2
}

// classify(char[, region[, language]]) -> "whitespace" | "punctuation" | "word"
func (m *MotionModule) classify(L *lua.LState) int {
	s := L.CheckString(1)
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		L.ArgError(1, "expected a single character")
		return 0
	}

	region := charclass.RegionCode
	if name := L.OptString(2, ""); name != "" {
		var ok bool
		if region, ok = charclass.ParseRegion(name); !ok {
			L.ArgError(2, "unknown region "+name)
			return 0
		}
	}
	scope := charclass.Scope{Language: L.OptString(3, ""), Region: region}

	class := m.provider.Finder().Scanner().Classifier().Classify(r, scope)
	L.Push(lua.LString(class.String()))
	return 1
}

// kinds() -> {names}
func (m *MotionModule) kinds(L *lua.LState) int {
	tbl := L.NewTable()
	for i, kind := range motion.Kinds() {
		tbl.RawSetInt(i+1, lua.LString(kind.String()))
	}
	L.Push(tbl)
	return 1
}
