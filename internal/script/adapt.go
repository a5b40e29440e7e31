package script

import (
	"fmt"
	"reflect"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/inputbus/internal/event"
	"github.com/dshills/inputbus/internal/input"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// adapt builds a Go function with parameter types sig that calls fn.
// The result's trailing error reports Lua failures to the dispatcher.
func (r *Runtime) adapt(name string, sig event.Signature, fn *lua.LFunction) any {
	ft := reflect.FuncOf(sig, []reflect.Type{errorType}, false)
	impl := func(args []reflect.Value) []reflect.Value {
		err := r.invoke(fn, args)
		if err != nil {
			r.logger.Warn().Err(err).Str("event", name).Msg("script listener failed")
		}
		errVal := reflect.New(errorType).Elem()
		if err != nil {
			errVal.Set(reflect.ValueOf(err))
		}
		return []reflect.Value{errVal}
	}
	return reflect.MakeFunc(ft, impl).Interface()
}

// invoke calls fn with args converted to Lua values.
func (r *Runtime) invoke(fn *lua.LFunction, args []reflect.Value) (err error) {
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

	largs := make([]lua.LValue, len(args))
	for i, a := range args {
		largs[i] = r.toLua(a)
	}
	return r.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, largs...)
}

// toLua converts a listener argument to a Lua value.
func (r *Runtime) toLua(v reflect.Value) lua.LValue {
	if v.Type() == reflect.TypeOf((*input.Vec2)(nil)).Elem() {
		p := v.Interface().(input.Vec2)
		t := r.L.NewTable()
		t.RawSetString("x", lua.LNumber(p.X))
		t.RawSetString("y", lua.LNumber(p.Y))
		return t
	}

	switch v.Kind() {
	case reflect.Bool:
		return lua.LBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return lua.LNumber(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return lua.LNumber(v.Uint())
	case reflect.Float32, reflect.Float64:
		return lua.LNumber(v.Float())
	case reflect.String:
		return lua.LString(v.String())
	default:
		return lua.LString(fmt.Sprint(v.Interface()))
	}
}
