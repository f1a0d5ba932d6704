package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the tunable rate formulas.
// Single-goroutine access only (the simulation loop). When a script or a
// formula is missing the engine falls back to the components' built-in rates,
// so a bare checkout still runs.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir.
// A missing directory is not an error.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// EmitterInterval calls the Lua emitter_interval(heat, base_ms) formula,
// expected to return the next delay in milliseconds.
func (e *Engine) EmitterInterval(heat int, base time.Duration) time.Duration {
	ms, ok := e.callInterval("emitter_interval",
		lua.LNumber(heat), lua.LNumber(base.Milliseconds()))
	if !ok {
		return base
	}
	return ms
}

// SmolderInterval calls the Lua smolder_interval(fuel, max_fuel, base_ms)
// formula, expected to return the next delay in milliseconds.
func (e *Engine) SmolderInterval(fuel, maxFuel int, base time.Duration) time.Duration {
	ms, ok := e.callInterval("smolder_interval",
		lua.LNumber(fuel), lua.LNumber(maxFuel), lua.LNumber(base.Milliseconds()))
	if !ok {
		return base
	}
	return ms
}

// callInterval invokes a global Lua function returning milliseconds. Reports
// !ok when the function is absent or errors, leaving the caller its fallback.
func (e *Engine) callInterval(name string, args ...lua.LValue) (time.Duration, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return 0, false
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
		e.log.Error("lua call failed", zap.String("fn", name), zap.Error(err))
		return 0, false
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok || n < 1 {
		return 0, false
	}
	return time.Duration(n) * time.Millisecond, true
}
