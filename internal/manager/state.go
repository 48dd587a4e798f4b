package manager

import (
	"github.com/dshills/toolflow/internal/coroutine"
	"github.com/dshills/toolflow/internal/event"
	"github.com/dshills/toolflow/internal/menu"
	"github.com/dshills/toolflow/internal/tool"
)

// transition maps a condition set to a handler entry point. Consumed at
// most once: dispatch removes it before invoking the handler.
type transition struct {
	conditions event.List
	handler    tool.HandlerFunc
}

// toolState is the per-registered-tool runtime record. Created at
// registration, lives for the manager's lifetime, cleared by ResetTool.
// All access happens inside the manager's single logical thread, so no
// locking.
type toolState struct {
	tool tool.Tool

	// transitions pending for this tool, scanned in declaration order.
	transitions []transition

	// co is the suspended handler parked in a wait, nil when no wait is
	// outstanding. waitConditions is the condition set it is blocked on.
	co             *coroutine.Coroutine
	waitConditions event.List

	// running is the coroutine currently executing a handler for this
	// tool. Set only for the duration of one dispatch step.
	running *coroutine.Coroutine

	// invokeParams is the payload attached to the current activation,
	// cleared once the activation event has been delivered.
	invokeParams any

	// Context menu policy, consulted by the host UI layer.
	menu        *menu.Menu
	menuTrigger menu.Trigger
}

func newToolState(t tool.Tool) *toolState {
	return &toolState{tool: t, menuTrigger: menu.TriggerOff}
}

// waiting reports whether the tool holds an outstanding suspended wait.
func (s *toolState) waiting() bool {
	return s.co != nil
}

// clear drops all pending transitions and the wait bookkeeping. The caller
// is responsible for cancelling the parked coroutine first.
func (s *toolState) clear() {
	s.transitions = nil
	s.waitConditions = event.List{}
	s.invokeParams = nil
}

// takeTransition removes and returns the first transition matching ev.
func (s *toolState) takeTransition(ev event.Event) (tool.HandlerFunc, bool) {
	for i, tr := range s.transitions {
		if tr.conditions.Matches(ev) {
			s.transitions = append(s.transitions[:i], s.transitions[i+1:]...)
			return tr.handler, true
		}
	}
	return nil, false
}
