package autotile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/tilesmith/internal/engine/tile"
)

// DefaultCallTimeout bounds a single resolve call.
const DefaultCallTimeout = 50 * time.Millisecond

// ErrNoResolve is returned when a script does not define resolve.
var ErrNoResolve = errors.New("script does not define a resolve function")

// Script resolves tiles by calling a Lua function.
//
// gopher-lua states are not goroutine-safe; Script serialises calls with a
// mutex. A failing call falls back to the base tile and is logged.
type Script struct {
	mu sync.Mutex

	L       *lua.LState
	resolve *lua.LFunction

	grid     Reader
	registry *tile.Registry
	timeout  time.Duration
	logger   *slog.Logger
	closed   bool
}

// ScriptOption configures a Script.
type ScriptOption func(*Script)

// WithCallTimeout sets the time limit for each resolve call.
func WithCallTimeout(d time.Duration) ScriptOption {
	return func(s *Script) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithScriptLogger sets the logger for resolve failures.
func WithScriptLogger(l *slog.Logger) ScriptOption {
	return func(s *Script) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewScript compiles src and binds it to a grid and registry.
// reg may be nil, in which case id() and char() always return nil.
func NewScript(src string, g Reader, reg *tile.Registry, opts ...ScriptOption) (*Script, error) {
	s := &Script{
		grid:     g,
		registry: reg,
		timeout:  DefaultCallTimeout,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	s.L = L
	s.installHost()

	if err := doWithRecovery(func() error { return L.DoString(src) }); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading autotile script: %w", err)
	}
	fn, ok := L.GetGlobal("resolve").(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, ErrNoResolve
	}
	s.resolve = fn
	return s, nil
}

// LoadScript reads and compiles a script file.
func LoadScript(path string, g Reader, reg *tile.Registry, opts ...ScriptOption) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading autotile script %s: %w", path, err)
	}
	return NewScript(string(data), g, reg, opts...)
}

// openSafeLibraries opens only the libraries a resolver needs.
// io, os, debug and package are left closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// installHost registers the functions scripts may call.
func (s *Script) installHost() {
	s.L.SetGlobal("get", s.L.NewFunction(func(L *lua.LState) int {
		id, ok := s.grid.Get(L.CheckInt(1), L.CheckInt(2))
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LNumber(id))
		return 1
	}))
	s.L.SetGlobal("id", s.L.NewFunction(func(L *lua.LState) int {
		str := L.CheckString(1)
		if s.registry == nil || len([]rune(str)) != 1 {
			L.Push(lua.LNil)
			return 1
		}
		id := s.registry.IDOf([]rune(str)[0])
		if id == tile.Void {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LNumber(id))
		return 1
	}))
	s.L.SetGlobal("char", s.L.NewFunction(func(L *lua.LState) int {
		if s.registry == nil {
			L.Push(lua.LNil)
			return 1
		}
		c, ok := s.registry.CharOf(tile.ID(L.CheckInt(1)))
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(string(c)))
		return 1
	}))
}

// Resolve calls resolve(x, y, base, mask) where mask marks neighbours that
// hold base. Errors, timeouts and results that are not valid identifiers
// yield base.
func (s *Script) Resolve(x, y int, base tile.ID) tile.ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return base
	}

	mask := NeighbourMask(s.grid, x, y, func(id tile.ID) bool { return id == base })

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	err := doWithRecovery(func() error {
		return s.L.CallByParam(lua.P{Fn: s.resolve, NRet: 1, Protect: true},
			lua.LNumber(x), lua.LNumber(y), lua.LNumber(base), lua.LNumber(mask))
	})
	if err != nil {
		s.logger.Warn("autotile script failed", "x", x, "y", y, "base", base, "err", err)
		return base
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		if ret != lua.LNil {
			s.logger.Warn("autotile script returned non-number", "x", x, "y", y, "type", ret.Type().String())
		}
		return base
	}
	if n < 0 || n > lua.LNumber(tile.MaxID) || n != lua.LNumber(int(n)) {
		s.logger.Warn("autotile script returned invalid id", "x", x, "y", y, "value", float64(n))
		return base
	}
	return tile.ID(n)
}

// Close releases the Lua state. Resolve returns the base tile afterwards.
func (s *Script) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}

// doWithRecovery executes a function with panic recovery.
func doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
