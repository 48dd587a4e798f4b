// Package manager implements the dispatch-and-scheduling core: the master
// controller that owns the registered editing tools, routes incoming
// events to the active ones, and drives each tool's event-driven state
// machine.
//
// # Model
//
// Each registered tool has a runtime record holding its pending
// transitions ("on any of these events, run this handler") and, when a
// handler is parked mid-execution, the wait it is blocked on. Active tools
// form the activation stack, most recently invoked on top; the top tool is
// the primary recipient of every event.
//
// # Dispatch
//
// ProcessEvent takes exactly one event at a time and walks the stack from
// the top. At each tool it checks the outstanding suspended wait first,
// then the pending transitions; the first match wins. The chosen handler
// runs to completion of its synchronous portion, or parks again in
// ScheduleWait. A handler that completes leaving no transitions and no
// wait retires its tool from the stack. A handler may instead call
// PassEvent to let the same event continue to the tools below it.
//
// # Scheduling
//
// Handlers run on coroutines with a strict baton handoff (see package
// coroutine), so manager state never needs locking: one ProcessEvent call
// is one critical section shared by the dispatcher and every handler it
// runs. ScheduleWait parks the calling handler until a matching event
// arrives; ResetTool cancels an outstanding wait by resuming it with the
// absent result, which the handler must treat as a request to unwind.
//
// # Faults
//
// Registration problems (duplicate names, ID collisions) are configuration
// errors returned to the caller. Lookup and invocation misses are normal
// false/nil results. Protocol misuse - waiting outside a handler, a second
// outstanding wait, re-entrant ProcessEvent - panics loudly rather than
// corrupting the scheduling state.
package manager
