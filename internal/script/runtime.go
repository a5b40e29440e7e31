// Package script runs Lua listeners against a Synthesizer.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. A global input table exposes:
//
//	input.on(name, fn)        -- returns a listener id
//	input.off(id)             -- returns true if the listener existed
//	input.is_key_down(code)   -- boolean
//	input.is_button_down(b)   -- boolean
//	input.pointer()           -- x, y, dx, dy
//	input.tap_threshold()     -- milliseconds
//	log(msg)                  -- writes to the runtime's logger
//
// Listener arguments are converted to Lua values: codes and modifiers become
// numbers and positions become {x=, y=} tables.
package script

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/inputbus/internal/event"
	"github.com/dshills/inputbus/internal/input"
)

// Runtime is a Lua state bound to a Synthesizer.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes script
// execution and listener callbacks, which may arrive from the provider's
// goroutine.
type Runtime struct {
	id     uuid.UUID
	synth  *input.Synthesizer
	logger zerolog.Logger

	mu        sync.Mutex
	L         *lua.LState
	listeners map[event.ListenerID]struct{}
	closed    bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger for script output and callback failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// New creates a sandboxed runtime bound to synth.
func New(synth *input.Synthesizer, opts ...Option) *Runtime {
	r := &Runtime{
		id:        uuid.New(),
		synth:     synth,
		logger:    zerolog.Nop(),
		listeners: make(map[event.ListenerID]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With().Str("component", "script").Str("runtime", r.id.String()).Logger()

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(r.L)
	lua.OpenTable(r.L)
	lua.OpenString(r.L)
	lua.OpenMath(r.L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		r.L.SetGlobal(name, lua.LNil)
	}
	r.installAPI()
	return r
}

// ID returns the runtime's unique id.
func (r *Runtime) ID() uuid.UUID {
	return r.id
}

// DoString executes a Lua chunk.
func (r *Runtime) DoString(code string) error {
	return r.do(func() error { return r.L.DoString(code) })
}

// DoFile executes a Lua file.
func (r *Runtime) DoFile(path string) error {
	return r.do(func() error { return r.L.DoFile(path) })
}

// Global returns a global Lua value. Intended for inspection in tests and tools.
func (r *Runtime) Global(name string) lua.LValue {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return lua.LNil
	}
	return r.L.GetGlobal(name)
}

// ListenerCount returns the number of listeners the runtime holds.
func (r *Runtime) ListenerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}

// Close unregisters all script listeners and releases the Lua state.
func (r *Runtime) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	ids := make([]event.ListenerID, 0, len(r.listeners))
	for id := range r.listeners {
		ids = append(ids, id)
	}
	r.listeners = nil
	r.L.Close()
	r.mu.Unlock()

	for _, id := range ids {
		_ = r.synth.Off(id)
	}
	return nil
}

func (r *Runtime) do(fn func() error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRuntimeClosed
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()
	return fn()
}

func (r *Runtime) installAPI() {
	mod := r.L.SetFuncs(r.L.NewTable(), map[string]lua.LGFunction{
		"on":             r.luaOn,
		"off":            r.luaOff,
		"is_key_down":    r.luaIsKeyDown,
		"is_button_down": r.luaIsButtonDown,
		"pointer":        r.luaPointer,
		"tap_threshold":  r.luaTapThreshold,
	})
	r.L.SetGlobal("input", mod)
	r.L.SetGlobal("log", r.L.NewFunction(r.luaLog))
}

// luaOn is called with r.mu held by DoString/DoFile.
func (r *Runtime) luaOn(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)

	sig, ok := r.synth.Dispatcher().SignatureOf(name)
	if !ok {
		L.RaiseError("%v: %s", ErrUnknownEvent, name)
		return 0
	}

	id, err := r.synth.On(name, r.adapt(name, sig, fn))
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	r.listeners[id] = struct{}{}
	L.Push(lua.LString(id))
	return 1
}

func (r *Runtime) luaOff(L *lua.LState) int {
	id := event.ListenerID(L.CheckString(1))
	if _, ok := r.listeners[id]; !ok {
		L.Push(lua.LFalse)
		return 1
	}
	delete(r.listeners, id)
	L.Push(lua.LBool(r.synth.Off(id) == nil))
	return 1
}

func (r *Runtime) luaIsKeyDown(L *lua.LState) int {
	down, err := r.synth.IsKeyDown(input.Key(L.CheckInt(1)))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	L.Push(lua.LBool(down))
	return 1
}

func (r *Runtime) luaIsButtonDown(L *lua.LState) int {
	down, err := r.synth.IsButtonDown(input.Button(L.CheckInt(1)))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	L.Push(lua.LBool(down))
	return 1
}

func (r *Runtime) luaPointer(L *lua.LState) int {
	pos := r.synth.PointerPosition()
	delta := r.synth.PointerDelta()
	L.Push(lua.LNumber(pos.X))
	L.Push(lua.LNumber(pos.Y))
	L.Push(lua.LNumber(delta.X))
	L.Push(lua.LNumber(delta.Y))
	return 4
}

func (r *Runtime) luaTapThreshold(L *lua.LState) int {
	L.Push(lua.LNumber(r.synth.TapThreshold().Milliseconds()))
	return 1
}

func (r *Runtime) luaLog(L *lua.LState) int {
	r.logger.Info().Msg(L.CheckString(1))
	return 0
}
