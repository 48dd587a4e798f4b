// Package coroutine implements the resumable computations tool handlers run
// on. A coroutine is a goroutine with a strict baton handoff: exactly one
// side, caller or coroutine body, executes at any moment, so code on either
// side never needs locks.
//
// The body runs until it returns or calls Yield. Yield parks the body and
// hands the baton back to the caller's Start or Resume, which report
// whether the body parked or finished. Resume hands the baton back in with
// a value: an event and ok=true for a satisfied wait, or ok=false to cancel
// the wait, which asks the body to unwind.
package coroutine

import (
	"fmt"
	"runtime"

	"github.com/dshills/toolflow/internal/event"
)

// Func is a coroutine body. The argument of the outermost handler is bound
// by the caller via closure.
type Func func() error

type resumption struct {
	ev event.Event
	ok bool
}

type suspension struct {
	parked bool
	err    error
}

// Coroutine is a single resumable computation. Not safe for concurrent use:
// the scheduling model is cooperative and single-threaded.
type Coroutine struct {
	resume chan resumption
	yield  chan suspension
	done   bool
}

// New creates a coroutine for fn. The body does not start until Start.
func New(fn Func) *Coroutine {
	c := &Coroutine{
		resume: make(chan resumption),
		yield:  make(chan suspension),
	}
	go func() {
		// Wait for Start before entering the body.
		<-c.resume
		err := c.call(fn)
		c.yield <- suspension{parked: false, err: err}
	}()
	return c
}

// Start runs the body until it parks or finishes. Returns parked=true if
// the body called Yield, parked=false with the body's error if it returned.
func (c *Coroutine) Start() (parked bool, err error) {
	if c.done {
		panic("coroutine: start of a completed coroutine")
	}
	c.resume <- resumption{}
	return c.wait()
}

// Resume hands ev (with ok=true) or a cancellation (ok=false) to the parked
// body and runs it until it parks again or finishes.
func (c *Coroutine) Resume(ev event.Event, ok bool) (parked bool, err error) {
	if c.done {
		panic("coroutine: resume of a completed coroutine")
	}
	c.resume <- resumption{ev: ev, ok: ok}
	return c.wait()
}

// Yield parks the body and hands the baton to the caller. It returns when
// the caller resumes: the satisfying event with ok=true, or ok=false when
// the wait was cancelled, in which case the body must unwind promptly.
// Must only be called from inside the coroutine body.
func (c *Coroutine) Yield() (event.Event, bool) {
	c.yield <- suspension{parked: true}
	r := <-c.resume
	return r.ev, r.ok
}

// Done reports whether the body has finished.
func (c *Coroutine) Done() bool {
	return c.done
}

// call runs the body, converting a panic into an error so the baton always
// makes it back to the caller.
func (c *Coroutine) call(fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			err = fmt.Errorf("coroutine: body panic: %v\n%s", r, stack[:n])
		}
	}()
	return fn()
}

func (c *Coroutine) wait() (bool, error) {
	s := <-c.yield
	if !s.parked {
		c.done = true
	}
	return s.parked, s.err
}
