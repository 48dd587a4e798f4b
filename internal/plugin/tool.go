package plugin

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/toolflow/internal/dispatcher"
	"github.com/dshills/toolflow/internal/event"
	"github.com/dshills/toolflow/internal/tool"
)

// ScriptTool is an editing tool implemented in Lua. It satisfies
// tool.Tool and is registered with the manager like any native tool.
type ScriptTool struct {
	tool.Base

	state   *lua.LState
	handle  *lua.LTable
	errFunc func(err error)
}

// NewScriptTool compiles source and builds a tool named name from it. The
// script must define a global reset function; anything else it defines is
// its own business.
func NewScriptTool(name, source string) (*ScriptTool, error) {
	L := lua.NewState()
	s := &ScriptTool{Base: tool.NewBase(name), state: L}

	if err := L.DoString(source); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading script tool %q: %w", name, err)
	}
	if L.GetGlobal("reset").Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("%w: tool %q", ErrNoReset, name)
	}

	s.handle = s.makeHandle()
	return s, nil
}

// LoadScriptTool builds a tool from a script file. The tool is named by
// name, not by the file.
func LoadScriptTool(name, path string) (*ScriptTool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script tool %q: %w", name, err)
	}
	return NewScriptTool(name, string(src))
}

// SetErrorFunc installs a callback for errors raised by the script at
// reset time, nil to ignore them. Handler errors flow back through the
// manager's error callback instead.
func (s *ScriptTool) SetErrorFunc(fn func(err error)) {
	s.errFunc = fn
}

// Close releases the Lua state. The tool must not be used afterwards.
func (s *ScriptTool) Close() {
	s.state.Close()
}

// Global exposes a global value from the script's environment, for hosts
// that want to read script-side state.
func (s *ScriptTool) Global(name string) lua.LValue {
	return s.state.GetGlobal(name)
}

// Reset invokes the script's reset function with the tool handle.
func (s *ScriptTool) Reset() {
	if err := s.call(s.state.GetGlobal("reset"), s.handle); err != nil {
		if s.errFunc != nil {
			s.errFunc(fmt.Errorf("script tool %q: reset: %w", s.Name(), err))
		}
	}
}

// makeHandle builds the table scripts receive as their tool argument.
func (s *ScriptTool) makeHandle() *lua.LTable {
	L := s.state
	t := L.NewTable()
	L.SetField(t, "go", L.NewFunction(s.luaGo))
	L.SetField(t, "wait", L.NewFunction(s.luaWait))
	L.SetField(t, "pass", L.NewFunction(s.luaPass))
	L.SetField(t, "name", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(s.Name()))
		return 1
	}))
	return t
}

// luaGo implements tool:go(handler, category, action [, category, action ...]).
func (s *ScriptTool) luaGo(L *lua.LState) int {
	handlerName := L.CheckString(2)
	conditions, err := checkConditions(L, 3)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	if L.GetGlobal(handlerName).Type() != lua.LTFunction {
		L.RaiseError("%v: %q", ErrNotFunction, handlerName)
		return 0
	}

	s.Go(func(ev event.Event) error {
		return s.call(s.state.GetGlobal(handlerName), s.handle, s.eventTable(ev))
	}, conditions...)
	return 0
}

// luaWait implements tool:wait(category, action [, category, action ...]).
// Returns the satisfying event table or nil when the wait was cancelled.
func (s *ScriptTool) luaWait(L *lua.LState) int {
	conditions, err := checkConditions(L, 2)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}

	ev, ok := s.Wait(conditions...)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(s.eventTable(ev))
	return 1
}

// luaPass implements tool:pass().
func (s *ScriptTool) luaPass(L *lua.LState) int {
	s.Pass()
	return 0
}

// checkConditions reads (category, action) string pairs starting at the
// given stack index.
func checkConditions(L *lua.LState, from int) ([]event.Event, error) {
	top := L.GetTop()
	if top < from || (top-from+1)%2 != 0 {
		return nil, fmt.Errorf("%w: expected category/action pairs", ErrUnknownName)
	}
	var out []event.Event
	for i := from; i <= top; i += 2 {
		cond, err := condition(L.CheckString(i), L.CheckString(i+1))
		if err != nil {
			return nil, err
		}
		out = append(out, cond)
	}
	return out, nil
}

// eventTable converts an event into the table handed to script handlers.
// Known payloads are flattened into named fields.
func (s *ScriptTool) eventTable(ev event.Event) *lua.LTable {
	L := s.state
	t := L.NewTable()
	L.SetField(t, "category", lua.LString(categoryName(ev.Category)))
	L.SetField(t, "action", lua.LString(actionName(ev.Action)))

	switch p := ev.Params.(type) {
	case nil:
	case dispatcher.MouseInfo:
		L.SetField(t, "x", lua.LNumber(p.X))
		L.SetField(t, "y", lua.LNumber(p.Y))
		L.SetField(t, "button", lua.LNumber(p.Button))
	case dispatcher.KeyInfo:
		L.SetField(t, "key", lua.LNumber(p.Key))
		L.SetField(t, "rune", lua.LString(string(p.Rune)))
		L.SetField(t, "mods", lua.LNumber(p.Mods))
	case dispatcher.SizeInfo:
		L.SetField(t, "width", lua.LNumber(p.Width))
		L.SetField(t, "height", lua.LNumber(p.Height))
	case string:
		L.SetField(t, "params", lua.LString(p))
	case int:
		L.SetField(t, "params", lua.LNumber(p))
	case float64:
		L.SetField(t, "params", lua.LNumber(p))
	case bool:
		L.SetField(t, "params", lua.LBool(p))
	}
	return t
}

func (s *ScriptTool) call(fn lua.LValue, args ...lua.LValue) error {
	L := s.state
	L.Push(fn)
	for _, a := range args {
		L.Push(a)
	}
	return L.PCall(len(args), 0, nil)
}
