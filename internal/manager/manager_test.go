package manager_test

import (
	"errors"
	"testing"

	"github.com/dshills/toolflow/internal/event"
	"github.com/dshills/toolflow/internal/manager"
	"github.com/dshills/toolflow/internal/menu"
	"github.com/dshills/toolflow/internal/tool"
)

// testTool is a minimal tool whose Reset behavior is supplied by the test.
type testTool struct {
	tool.Base
	resetCount int
	onReset    func(t *testTool)
}

func newTestTool(name string, onReset func(t *testTool)) *testTool {
	return &testTool{Base: tool.NewBase(name), onReset: onReset}
}

func (t *testTool) Reset() {
	t.resetCount++
	if t.onReset != nil {
		t.onReset(t)
	}
}

func anyMouse() event.Event {
	return event.MakeEvent(event.CategoryMouse, event.ActionAny, nil)
}

func click() event.Event {
	return event.MakeEvent(event.CategoryMouse, event.ActionMouseClick, nil)
}

func keyPress() event.Event {
	return event.MakeEvent(event.CategoryKey, event.ActionKeyPress, nil)
}

func activationCond() event.Event {
	return event.MakeEvent(event.CategoryCommand, event.ActionActivate, nil)
}

func mustRegister(t *testing.T, m *manager.Manager, tl tool.Tool) {
	t.Helper()
	if err := m.RegisterTool(tl); err != nil {
		t.Fatalf("RegisterTool(%s): %v", tl.Name(), err)
	}
}

func TestRegisterThenFind(t *testing.T) {
	m := manager.New()
	tl := newTestTool("app.Selection", nil)
	mustRegister(t, m, tl)

	if got := m.FindTool(tl.ID()); got != tool.Tool(tl) {
		t.Error("FindTool by id did not return the registered tool")
	}
	if got := m.FindToolByName("app.Selection"); got != tool.Tool(tl) {
		t.Error("FindToolByName did not return the registered tool")
	}
	if tl.resetCount != 1 {
		t.Errorf("resetCount = %d, want 1 (Reset at registration)", tl.resetCount)
	}
}

func TestFindMissIsNil(t *testing.T) {
	m := manager.New()

	if m.FindTool(tool.MakeToolID("app.Ghost")) != nil {
		t.Error("expected nil for unregistered id")
	}
	if m.FindToolByName("app.Ghost") != nil {
		t.Error("expected nil for unregistered name")
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	m := manager.New()
	mustRegister(t, m, newTestTool("app.Move", nil))

	err := m.RegisterTool(newTestTool("app.Move", nil))
	if !errors.Is(err, manager.ErrDuplicateTool) {
		t.Errorf("err = %v, want ErrDuplicateTool", err)
	}
}

func TestRegisterNil(t *testing.T) {
	m := manager.New()
	if err := m.RegisterTool(nil); !errors.Is(err, manager.ErrNilTool) {
		t.Errorf("err = %v, want ErrNilTool", err)
	}
}

func TestInvokeUnknownTool(t *testing.T) {
	m := manager.New()
	mustRegister(t, m, newTestTool("app.Move", nil))

	if m.InvokeTool(tool.MakeToolID("app.Ghost")) {
		t.Error("InvokeTool on unknown id must return false")
	}
	if m.InvokeToolByName("app.Ghost") {
		t.Error("InvokeToolByName on unknown name must return false")
	}
	if got := m.ActiveTools(); len(got) != 0 {
		t.Errorf("activation stack changed by failed invoke: %v", got)
	}
}

func TestInvokeDeliversActivation(t *testing.T) {
	m := manager.New()
	var activated []event.Event
	tl := newTestTool("app.Move", func(t *testTool) {
		t.Go(func(ev event.Event) error {
			activated = append(activated, ev)
			// Keep the tool active after the activation handler.
			t.Go(func(event.Event) error { return nil }, anyMouse())
			return nil
		}, activationCond())
	})
	mustRegister(t, m, tl)

	if !m.InvokeTool(tl.ID()) {
		t.Fatal("InvokeTool returned false for a registered tool")
	}
	if len(activated) != 1 {
		t.Fatalf("activation handler ran %d times, want 1", len(activated))
	}
	if !activated[0].IsActivation() {
		t.Errorf("handler received %v, want activation event", activated[0])
	}
	if name, _ := activated[0].Params.(string); name != "app.Move" {
		t.Errorf("activation payload = %v, want tool name", activated[0].Params)
	}
	if got := m.ActiveTools(); len(got) != 1 || got[0] != tl.ID() {
		t.Errorf("activation stack = %v, want [%d]", got, tl.ID())
	}
}

func TestInvokeParamsScopedToActivation(t *testing.T) {
	m := manager.New()
	var seen any
	tl := newTestTool("app.Move", func(t *testTool) {
		t.Go(func(ev event.Event) error {
			seen = t.Params()
			t.Go(func(event.Event) error { return nil }, anyMouse())
			return nil
		}, activationCond())
	})
	mustRegister(t, m, tl)

	type moveParams struct{ DX, DY int }
	if !m.InvokeToolWithParams("app.Move", moveParams{3, 4}) {
		t.Fatal("InvokeToolWithParams returned false")
	}
	if p, ok := seen.(moveParams); !ok || p.DX != 3 || p.DY != 4 {
		t.Errorf("handler saw params %v, want {3 4}", seen)
	}
	if m.InvokeParams(tl.ID()) != nil {
		t.Error("params must not persist past the activation event")
	}
}

func TestTransitionConsumedOnce(t *testing.T) {
	m := manager.New()
	runs := 0
	tl := newTestTool("app.Move", func(t *testTool) {
		t.Go(func(ev event.Event) error {
			t.Go(func(event.Event) error {
				runs++
				return nil
			}, click())
			return nil
		}, activationCond())
	})
	mustRegister(t, m, tl)
	m.InvokeTool(tl.ID())

	if !m.ProcessEvent(click()) {
		t.Fatal("first click should be consumed")
	}
	if runs != 1 {
		t.Fatalf("handler ran %d times, want 1", runs)
	}
	// The transition was consumed and not re-declared; a second identical
	// event finds nothing.
	if m.ProcessEvent(click()) {
		t.Error("second click must not re-trigger the consumed transition")
	}
	if runs != 1 {
		t.Errorf("handler ran %d times after second click, want 1", runs)
	}
}

func TestFinishedToolLeavesStack(t *testing.T) {
	m := manager.New()
	tl := newTestTool("app.Move", func(t *testTool) {
		t.Go(func(ev event.Event) error {
			t.Go(func(event.Event) error { return nil }, click())
			return nil
		}, activationCond())
	})
	mustRegister(t, m, tl)
	m.InvokeTool(tl.ID())

	if got := m.ActiveTools(); len(got) != 1 {
		t.Fatalf("stack = %v, want one active tool", got)
	}
	// The click handler completes without scheduling anything new.
	m.ProcessEvent(click())
	if got := m.ActiveTools(); len(got) != 0 {
		t.Errorf("stack = %v, want empty after the tool finished", got)
	}
}

func TestLowerToolMatches(t *testing.T) {
	m := manager.New()
	var gotB bool

	b := newTestTool("app.Below", func(t *testTool) {
		t.Go(func(ev event.Event) error {
			t.Go(func(event.Event) error {
				gotB = true
				return nil
			}, keyPress())
			return nil
		}, activationCond())
	})
	a := newTestTool("app.Above", func(t *testTool) {
		t.Go(func(ev event.Event) error {
			t.Go(func(event.Event) error { return nil }, click())
			return nil
		}, activationCond())
	})
	mustRegister(t, m, b)
	mustRegister(t, m, a)
	m.InvokeTool(b.ID())
	m.InvokeTool(a.ID()) // a on top

	if !m.ProcessEvent(keyPress()) {
		t.Fatal("key press should be consumed by the lower tool")
	}
	if !gotB {
		t.Error("lower tool's handler did not run")
	}
	// a's click transition is untouched.
	if !m.ProcessEvent(click()) {
		t.Error("upper tool's transition should still be pending")
	}
}

func TestPassThroughReachesBoth(t *testing.T) {
	m := manager.New()
	var order []string

	b := newTestTool("app.Below", func(t *testTool) {
		t.Go(func(ev event.Event) error {
			t.Go(func(event.Event) error {
				order = append(order, "below")
				return nil
			}, click())
			return nil
		}, activationCond())
	})
	a := newTestTool("app.Above", func(t *testTool) {
		t.Go(func(ev event.Event) error {
			t.Go(func(event.Event) error {
				order = append(order, "above")
				t.Pass()
				return nil
			}, click())
			return nil
		}, activationCond())
	})
	mustRegister(t, m, b)
	mustRegister(t, m, a)
	m.InvokeTool(b.ID())
	m.InvokeTool(a.ID())

	if !m.ProcessEvent(click()) {
		t.Fatal("event should be consumed")
	}
	if len(order) != 2 || order[0] != "above" || order[1] != "below" {
		t.Errorf("delivery order = %v, want [above below]", order)
	}
}

func TestUnmatchedEventNotConsumed(t *testing.T) {
	m := manager.New()
	tl := newTestTool("app.Move", func(t *testTool) {
		t.Go(func(ev event.Event) error {
			t.Go(func(event.Event) error { return nil }, click())
			return nil
		}, activationCond())
	})
	mustRegister(t, m, tl)
	m.InvokeTool(tl.ID())

	if m.ProcessEvent(keyPress()) {
		t.Error("no tool matches a key press; event must be reported unconsumed")
	}
}

func TestStackHoldsToolOnce(t *testing.T) {
	m := manager.New()
	keepAlive := func(t *testTool) {
		t.Go(func(ev event.Event) error {
			t.Go(func(event.Event) error { return nil }, click())
			return nil
		}, activationCond())
	}
	a := newTestTool("app.A", keepAlive)
	b := newTestTool("app.B", keepAlive)
	mustRegister(t, m, a)
	mustRegister(t, m, b)

	m.InvokeTool(a.ID())
	m.InvokeTool(b.ID())
	m.InvokeTool(a.ID()) // re-invoke: a re-raises to the top

	got := m.ActiveTools()
	if len(got) != 2 {
		t.Fatalf("stack = %v, want two entries", got)
	}
	if got[0] != a.ID() || got[1] != b.ID() {
		t.Errorf("stack = %v, want [a b] with a re-raised on top", got)
	}
	seen := map[tool.ID]int{}
	for _, id := range got {
		seen[id]++
		if seen[id] > 1 {
			t.Errorf("tool %d appears twice on the stack", id)
		}
	}
}

func TestContextMenuPolicy(t *testing.T) {
	m := manager.New()
	cm := menu.New("Move")
	cm.Append("Rotate", event.MakeEvent(event.CategoryCommand, event.ActionContextMenuChoice, "rotate"))

	tl := newTestTool("app.Move", func(t *testTool) {
		t.Go(func(ev event.Event) error {
			t.SetContextMenu(cm, menu.TriggerButton)
			t.Go(func(event.Event) error { return nil }, click())
			return nil
		}, activationCond())
	})
	mustRegister(t, m, tl)
	m.InvokeTool(tl.ID())

	got, trigger, ok := m.ContextMenu(tl.ID())
	if !ok {
		t.Fatal("ContextMenu reported unknown tool")
	}
	if got != cm {
		t.Error("stored menu is not the one the tool declared")
	}
	if trigger != menu.TriggerButton {
		t.Errorf("trigger = %v, want button", trigger)
	}

	if _, _, ok := m.ContextMenu(tool.MakeToolID("app.Ghost")); ok {
		t.Error("ContextMenu for unknown tool must report ok=false")
	}
}

func TestHandlerErrorReported(t *testing.T) {
	m := manager.New()
	var reported []string
	m.SetErrorFunc(func(name string, err error) {
		reported = append(reported, name+": "+err.Error())
	})

	tl := newTestTool("app.Move", func(t *testTool) {
		t.Go(func(ev event.Event) error {
			return errors.New("bad geometry")
		}, activationCond())
	})
	mustRegister(t, m, tl)
	m.InvokeTool(tl.ID())

	if len(reported) != 1 || reported[0] != "app.Move: bad geometry" {
		t.Errorf("reported = %v, want the handler error once", reported)
	}
}

func TestScheduleWaitOutsideHandlerPanics(t *testing.T) {
	m := manager.New()
	tl := newTestTool("app.Move", nil)
	mustRegister(t, m, tl)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for ScheduleWait outside a running handler")
		}
	}()
	m.ScheduleWait(tl.ID(), event.MakeList(click()))
}
