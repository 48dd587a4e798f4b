package manager

import (
	"fmt"

	"github.com/dshills/toolflow/internal/coroutine"
	"github.com/dshills/toolflow/internal/event"
	"github.com/dshills/toolflow/internal/menu"
	"github.com/dshills/toolflow/internal/tool"
)

// Manager is the master controller: it registers editing tools, pumps
// events to the tools that requested them, and drives each tool's state
// machine of transitions and waits. One explicit instance per editing
// context; there is no process-wide singleton.
type Manager struct {
	states    map[tool.ID]*toolState
	nameIndex map[string]*toolState

	// activeTools is the activation stack, most recently invoked first.
	// A tool ID appears at most once.
	activeTools []tool.ID

	// Dispatch bookkeeping. processing guards against re-entrant event
	// delivery; current is the state whose handler owns the baton;
	// passEvent is the current handler's pass-through request.
	processing bool
	current    *toolState
	passEvent  bool

	// errFunc receives handler errors, nil to ignore them.
	errFunc func(toolName string, err error)

	// Opaque environment references, stored and exposed only.
	model        any
	view         any
	viewControls any
	window       any
}

// New creates an empty manager.
func New() *Manager {
	return &Manager{
		states:    make(map[tool.ID]*toolState),
		nameIndex: make(map[string]*toolState),
	}
}

// SetErrorFunc installs a callback receiving errors returned by tool
// handlers. Handler errors never abort dispatch; they are reported here.
func (m *Manager) SetErrorFunc(fn func(toolName string, err error)) {
	m.errFunc = fn
}

// SetEnvironment stores the work environment handed to every tool: the
// document model, the view, the view controls and the host window. All
// four are opaque to the core.
func (m *Manager) SetEnvironment(model, view, viewControls, window any) {
	m.model = model
	m.view = view
	m.viewControls = viewControls
	m.window = window
}

// Model returns the opaque document model reference.
func (m *Manager) Model() any { return m.model }

// View returns the opaque view/render context reference.
func (m *Manager) View() any { return m.view }

// ViewControls returns the opaque input-control context reference.
func (m *Manager) ViewControls() any { return m.viewControls }

// Window returns the opaque host window reference.
func (m *Manager) Window() any { return m.window }

// RegisterTool adds a tool to the manager's set and initializes it. Called
// once per tool at application setup. Duplicate names, duplicate IDs and
// ID/name mismatches are configuration faults and abort registration.
func (m *Manager) RegisterTool(t tool.Tool) error {
	if t == nil {
		return ErrNilTool
	}
	name := t.Name()
	if t.ID() != tool.MakeToolID(name) {
		return fmt.Errorf("%w: tool %q reports id %d", ErrToolIDMismatch, name, t.ID())
	}
	if _, ok := m.nameIndex[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateTool, name)
	}
	if other, ok := m.states[t.ID()]; ok {
		return fmt.Errorf("%w: %q and %q both hash to %d",
			ErrToolIDCollision, name, other.tool.Name(), t.ID())
	}

	st := newToolState(t)
	m.states[t.ID()] = st
	m.nameIndex[name] = st

	t.Attach(m)
	t.Reset()
	return nil
}

// FindTool returns the registered tool with the given ID, or nil. A miss
// is a normal caller-checkable condition, not a fault.
func (m *Manager) FindTool(id tool.ID) tool.Tool {
	if st, ok := m.states[id]; ok {
		return st.tool
	}
	return nil
}

// FindToolByName returns the registered tool with the given name, or nil.
func (m *Manager) FindToolByName(name string) tool.Tool {
	if st, ok := m.nameIndex[name]; ok {
		return st.tool
	}
	return nil
}

// ResetTool clears a tool's pending transitions, cancels its outstanding
// wait if any, and calls the tool's Reset. Safe to call on a tool that is
// on the activation stack; the tool stays on the stack. Calling it twice
// in a row is a no-op beyond the repeated Reset.
func (m *Manager) ResetTool(t tool.Tool) {
	st, ok := m.states[t.ID()]
	if !ok {
		return
	}
	m.cancelWait(st)
	st.clear()
	st.tool.Reset()
}

// cancelWait resumes a parked handler with the absent result and discards
// it. The handler must treat the absent result as a request to unwind; one
// that parks again instead is defective and trips an assertion.
func (m *Manager) cancelWait(st *toolState) {
	if st.co == nil {
		return
	}
	if st.running != nil {
		panic("manager: ResetTool on a tool whose handler is currently running")
	}
	co := st.co
	st.co = nil
	st.waitConditions = event.List{}
	parked, err := co.Resume(event.Event{}, false)
	if parked {
		panic(fmt.Sprintf("manager: handler of tool %q parked again after cancellation", st.tool.Name()))
	}
	m.reportError(st, err)
}

// InvokeTool activates the tool with the given ID by raising it to the top
// of the activation stack and delivering a synthesized activation event to
// it. Returns false, with the stack unchanged, when no such tool is
// registered.
func (m *Manager) InvokeTool(id tool.ID) bool {
	st, ok := m.states[id]
	if !ok {
		return false
	}
	return m.invoke(st, nil)
}

// InvokeToolByName is InvokeTool addressed by tool name.
func (m *Manager) InvokeToolByName(name string) bool {
	st, ok := m.nameIndex[name]
	if !ok {
		return false
	}
	return m.invoke(st, nil)
}

// InvokeToolWithParams activates a tool and attaches a caller-supplied
// payload, retrievable by the tool's handlers via InvokeParams for the
// duration of that activation only.
func (m *Manager) InvokeToolWithParams(name string, params any) bool {
	st, ok := m.nameIndex[name]
	if !ok {
		return false
	}
	return m.invoke(st, params)
}

func (m *Manager) invoke(st *toolState, params any) bool {
	if m.processing {
		panic("manager: InvokeTool during event dispatch; queue the activation with the environment instead")
	}
	st.invokeParams = params

	// Invoking an already-active tool re-raises it to the top; the stack
	// holds each tool at most once.
	m.raise(st.tool.ID())

	ev := event.Activation(st.tool.Name())
	m.processing = true
	m.dispatchTo(st, ev)
	m.processing = false

	// The payload does not outlive the activation event.
	st.invokeParams = nil
	return true
}

// raise moves id to the top of the activation stack, adding it if absent.
func (m *Manager) raise(id tool.ID) {
	for i, active := range m.activeTools {
		if active == id {
			m.activeTools = append(m.activeTools[:i], m.activeTools[i+1:]...)
			break
		}
	}
	m.activeTools = append([]tool.ID{id}, m.activeTools...)
}

// deactivate removes id from the activation stack.
func (m *Manager) deactivate(id tool.ID) {
	for i, active := range m.activeTools {
		if active == id {
			m.activeTools = append(m.activeTools[:i], m.activeTools[i+1:]...)
			return
		}
	}
}

// ActiveTools returns the activation stack, topmost first.
func (m *Manager) ActiveTools() []tool.ID {
	out := make([]tool.ID, len(m.activeTools))
	copy(out, m.activeTools)
	return out
}

// ProcessEvent routes one event: it walks the activation stack from the
// top, resumes the first matching parked handler or invokes the first
// matching transition, and honors pass-through requests by continuing the
// walk. Returns whether any tool consumed the event. Exactly one event is
// in flight at a time; re-entrant calls are a protocol fault.
func (m *Manager) ProcessEvent(ev event.Event) bool {
	if m.processing {
		panic("manager: re-entrant ProcessEvent; queue synthesized events with the environment instead")
	}
	m.processing = true
	defer func() { m.processing = false }()

	consumed := false
	// Snapshot the walk order: handlers may finish tools (mutating the
	// stack) while the walk is in progress.
	order := m.ActiveTools()
	for _, id := range order {
		st, ok := m.states[id]
		if !ok {
			continue
		}
		handled, _ := m.dispatchTo(st, ev)
		if !handled {
			continue
		}
		consumed = true
		if !m.passEvent {
			break
		}
	}
	return consumed
}

// dispatchTo offers ev to a single tool. An outstanding suspended wait is
// checked before fresh transitions: a parked handler has priority over
// starting new ones. Returns whether the tool handled the event and
// whether its handler is (still) parked afterwards.
func (m *Manager) dispatchTo(st *toolState, ev event.Event) (handled, parked bool) {
	m.passEvent = false

	switch {
	case st.co != nil && st.waitConditions.Matches(ev):
		st.waitConditions = event.List{}
		st.running = st.co
		parked = m.run(st, func() (bool, error) { return st.running.Resume(ev, true) })
		return true, parked

	default:
		handler, ok := st.takeTransition(ev)
		if !ok {
			return false, st.co != nil
		}
		st.running = coroutine.New(func() error { return handler(ev) })
		parked = m.run(st, func() (bool, error) { return st.running.Start() })
		return true, parked
	}
}

// run drives one handler step and settles the tool's state afterwards: a
// parked handler becomes the tool's outstanding wait; a finished handler
// that left no transitions and no wait deactivates the tool.
func (m *Manager) run(st *toolState, step func() (bool, error)) bool {
	m.current = st
	parked, err := step()
	m.current = nil

	if parked {
		// The handler parked in ScheduleWait, which recorded the wait
		// conditions and the coroutine.
		st.running = nil
		return true
	}

	// The handler ran to completion. If it was the parked one, the wait
	// is gone now.
	if st.co == st.running {
		st.co = nil
		st.waitConditions = event.List{}
	}
	st.running = nil
	m.reportError(st, err)
	m.finishTool(st)
	return false
}

// finishTool retires a tool whose handler step completed: with no pending
// transitions and no outstanding wait left, the tool has finished its job
// and leaves the activation stack.
func (m *Manager) finishTool(st *toolState) {
	if len(st.transitions) == 0 && !st.waiting() {
		m.deactivate(st.tool.ID())
	}
}

func (m *Manager) reportError(st *toolState, err error) {
	if err != nil && m.errFunc != nil {
		m.errFunc(st.tool.Name(), err)
	}
}

// ScheduleNextState registers a transition for the tool: when any event in
// conditions arrives, run handler. Multiple calls accumulate; each
// transition is consumed on first match. Takes effect for the next
// dispatch cycle, never the one in progress.
func (m *Manager) ScheduleNextState(id tool.ID, handler tool.HandlerFunc, conditions event.List) {
	st, ok := m.states[id]
	if !ok {
		panic(fmt.Sprintf("manager: ScheduleNextState for unregistered tool id %d", id))
	}
	st.transitions = append(st.transitions, transition{conditions: conditions, handler: handler})
}

// ScheduleWait parks the calling handler until an event matching
// conditions arrives, returning it with ok=true, or until the tool is
// reset, returning ok=false. Legal only from the handler the manager is
// currently running; a tool holds at most one outstanding wait.
func (m *Manager) ScheduleWait(id tool.ID, conditions event.List) (event.Event, bool) {
	st, ok := m.states[id]
	if !ok {
		panic(fmt.Sprintf("manager: ScheduleWait for unregistered tool id %d", id))
	}
	if m.current != st || st.running == nil {
		panic(fmt.Sprintf("manager: ScheduleWait for tool %q outside its running handler", st.tool.Name()))
	}
	if st.co != nil && st.co != st.running {
		panic(fmt.Sprintf("manager: tool %q already holds an outstanding wait", st.tool.Name()))
	}

	st.co = st.running
	st.waitConditions = conditions
	return st.co.Yield()
}

// ScheduleContextMenu declares when and how the tool's context menu should
// appear. The core stores the policy; presentation is the UI layer's job.
func (m *Manager) ScheduleContextMenu(id tool.ID, cm *menu.Menu, trigger menu.Trigger) {
	st, ok := m.states[id]
	if !ok {
		panic(fmt.Sprintf("manager: ScheduleContextMenu for unregistered tool id %d", id))
	}
	st.menu = cm
	st.menuTrigger = trigger
}

// ContextMenu returns the tool's current context menu and trigger policy.
// ok is false when the tool is unknown.
func (m *Manager) ContextMenu(id tool.ID) (cm *menu.Menu, trigger menu.Trigger, ok bool) {
	st, found := m.states[id]
	if !found {
		return nil, menu.TriggerOff, false
	}
	return st.menu, st.menuTrigger, true
}

// PassEvent lets the current handler forward the event it matched to the
// next tool down the activation stack, as though this tool had not
// matched.
func (m *Manager) PassEvent() {
	m.passEvent = true
}

// InvokeParams returns the payload attached to the tool's current
// activation, nil outside one.
func (m *Manager) InvokeParams(id tool.ID) any {
	if st, ok := m.states[id]; ok {
		return st.invokeParams
	}
	return nil
}
