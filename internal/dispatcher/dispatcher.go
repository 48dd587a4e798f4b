// Package dispatcher translates host input occurrences into tool events
// and feeds them to the manager, one at a time. It sits on the event
// source boundary: raw tcell events come in, exactly one ProcessEvent call
// goes out per occurrence, and the consumed/not-consumed answer goes back
// to the caller for default handling.
//
// The translation carries the usual editing-gesture bookkeeping: a press
// followed by a release near the same spot is a click, movement past the
// drag tolerance with a button held opens a drag, Escape becomes the
// cancel command.
package dispatcher

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/toolflow/internal/event"
	"github.com/dshills/toolflow/internal/manager"
)

// DefaultDragTolerance is the pointer travel, in cells, below which a
// press-release pair still counts as a click.
const DefaultDragTolerance = 1

// DoubleClickInterval is the longest gap between two clicks at the same
// spot that still counts as a double click.
const DoubleClickInterval = 400 * time.Millisecond

// MouseInfo is the payload of mouse events: pointer position and the
// button involved, if any.
type MouseInfo struct {
	X, Y   int
	Button tcell.ButtonMask
}

// KeyInfo is the payload of key press events.
type KeyInfo struct {
	Key  tcell.Key
	Rune rune
	Mods tcell.ModMask
}

// SizeInfo is the payload of view refresh events caused by a resize.
type SizeInfo struct {
	Width, Height int
}

// Dispatcher converts tcell events into tool events.
type Dispatcher struct {
	mgr *manager.Manager

	// Gesture state between occurrences.
	buttons      tcell.ButtonMask
	downX, downY int
	dragging     bool

	lastClickAt            time.Time
	lastClickX, lastClickY int

	dragTolerance int
}

// New creates a dispatcher feeding the given manager.
func New(mgr *manager.Manager) *Dispatcher {
	return &Dispatcher{mgr: mgr, dragTolerance: DefaultDragTolerance}
}

// SetDragTolerance overrides the click-vs-drag travel threshold.
func (d *Dispatcher) SetDragTolerance(cells int) {
	d.dragTolerance = cells
}

// DispatchEvent translates one tcell occurrence and routes the resulting
// tool events. Returns whether any of them was consumed; the caller
// applies default handling otherwise.
func (d *Dispatcher) DispatchEvent(tev tcell.Event) bool {
	switch ev := tev.(type) {
	case *tcell.EventMouse:
		return d.dispatchMouse(ev)
	case *tcell.EventKey:
		return d.dispatchKey(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		return d.mgr.ProcessEvent(event.MakeEvent(event.CategoryView, event.ActionViewRefresh, SizeInfo{Width: w, Height: h}))
	default:
		return false
	}
}

func (d *Dispatcher) dispatchMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons() & tcell.ButtonMask(0xff)
	wheel := ev.Buttons() & (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)

	if wheel != 0 {
		info := MouseInfo{X: x, Y: y, Button: wheel}
		return d.process(event.CategoryMouse, event.ActionMouseWheel, info)
	}

	consumed := false
	switch {
	case d.buttons == tcell.ButtonNone && buttons != tcell.ButtonNone:
		// Press: remember where, a click or a drag is now pending.
		d.downX, d.downY = x, y
		info := MouseInfo{X: x, Y: y, Button: buttons}
		consumed = d.process(event.CategoryMouse, event.ActionMouseDown, info) || consumed

	case d.buttons != tcell.ButtonNone && buttons == tcell.ButtonNone:
		// Release: a drag ends, a stationary press becomes a click.
		info := MouseInfo{X: x, Y: y, Button: d.buttons}
		consumed = d.process(event.CategoryMouse, event.ActionMouseUp, info) || consumed
		if !d.dragging {
			consumed = d.process(event.CategoryMouse, event.ActionMouseClick, info) || consumed
			if time.Since(d.lastClickAt) < DoubleClickInterval && x == d.lastClickX && y == d.lastClickY {
				consumed = d.process(event.CategoryMouse, event.ActionMouseDoubleClick, info) || consumed
				d.lastClickAt = time.Time{}
			} else {
				d.lastClickAt = time.Now()
				d.lastClickX, d.lastClickY = x, y
			}
		}
		d.dragging = false

	case buttons != tcell.ButtonNone:
		// Motion with a button held.
		info := MouseInfo{X: x, Y: y, Button: buttons}
		if !d.dragging && d.travelled(x, y) {
			d.dragging = true
			consumed = d.process(event.CategoryMouse, event.ActionMouseDragStart, info) || consumed
		} else if d.dragging {
			consumed = d.process(event.CategoryMouse, event.ActionMouseDrag, info) || consumed
		}

	default:
		info := MouseInfo{X: x, Y: y}
		consumed = d.process(event.CategoryMouse, event.ActionMouseMotion, info) || consumed
	}

	d.buttons = buttons
	return consumed
}

func (d *Dispatcher) dispatchKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape {
		return d.process(event.CategoryCommand, event.ActionCancel, nil)
	}
	info := KeyInfo{Key: ev.Key(), Rune: ev.Rune(), Mods: ev.Modifiers()}
	return d.process(event.CategoryKey, event.ActionKeyPress, info)
}

func (d *Dispatcher) process(c event.Category, a event.Action, params any) bool {
	return d.mgr.ProcessEvent(event.MakeEvent(c, a, params))
}

func (d *Dispatcher) travelled(x, y int) bool {
	dx, dy := x-d.downX, y-d.downY
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx > d.dragTolerance || dy > d.dragTolerance
}
