// Package tool defines the contract between the scheduling core and the
// editing tools that plug into it.
//
// A tool is a unit of interactive behavior: it has a stable identity, a
// Reset entry point, and any number of handler functions that run when
// events the tool asked for arrive. The core never knows what a tool edits;
// it only routes events and runs handlers.
//
// Concrete tools embed Base, which carries identity and offers the
// scheduling conveniences handlers use:
//
//	type moveTool struct {
//	    tool.Base
//	}
//
//	func newMoveTool() *moveTool {
//	    return &moveTool{Base: tool.NewBase("app.InteractiveMove")}
//	}
//
//	func (m *moveTool) Reset() {
//	    // Arm the entry handler for the next activation.
//	    m.Go(m.main, event.Activation(m.Name()))
//	}
//
//	func (m *moveTool) main(ev event.Event) error {
//	    for {
//	        ev, ok := m.Wait(event.MakeEvent(event.CategoryMouse, event.ActionAny, nil))
//	        if !ok {
//	            return nil // cancelled, unwind
//	        }
//	        // ... act on ev ...
//	    }
//	}
//
// Handler functions run as cooperatively scheduled units of work: Wait
// parks the whole call stack until a matching event arrives or the tool is
// reset. The Scheduler interface is what Base talks to; the manager package
// provides the one real implementation.
package tool
