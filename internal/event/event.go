package event

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Category classifies an event by the kind of occurrence it describes.
// Categories are bitmasks so conditions can accept several at once.
type Category uint32

const (
	// CategoryNone matches nothing. The zero value of Category.
	CategoryNone Category = 0

	// CategoryMouse covers pointer input: buttons, motion, drags, wheel.
	CategoryMouse Category = 1 << iota

	// CategoryKey covers keyboard input.
	CategoryKey

	// CategoryCommand covers tool activation and other commands issued by
	// the host application or by other tools.
	CategoryCommand

	// CategoryMessage covers internal notifications (undo/redo, model
	// changes) that are not direct user input.
	CategoryMessage

	// CategoryView covers view-level occurrences such as refresh and
	// resize.
	CategoryView

	// CategoryAny matches every category. Used in wildcard conditions.
	CategoryAny Category = 0xffffffff
)

// String returns the category name, or a hex mask for combinations.
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryMouse:
		return "mouse"
	case CategoryKey:
		return "key"
	case CategoryCommand:
		return "command"
	case CategoryMessage:
		return "message"
	case CategoryView:
		return "view"
	case CategoryAny:
		return "any"
	default:
		return fmt.Sprintf("category(%#x)", uint32(c))
	}
}

// Action identifies what happened within a category. Actions are bitmasks;
// a condition's action matches an event's action when the masks intersect.
type Action uint32

const (
	// ActionNone matches nothing. The zero value of Action.
	ActionNone Action = 0

	// ActionMouseDown is a button press.
	ActionMouseDown Action = 1 << iota

	// ActionMouseUp is a button release.
	ActionMouseUp

	// ActionMouseClick is a press and release without movement.
	ActionMouseClick

	// ActionMouseDoubleClick is two clicks in quick succession.
	ActionMouseDoubleClick

	// ActionMouseDragStart marks the beginning of a drag.
	ActionMouseDragStart

	// ActionMouseDrag is pointer motion with a button held.
	ActionMouseDrag

	// ActionMouseMotion is pointer motion with no button held.
	ActionMouseMotion

	// ActionMouseWheel is wheel movement.
	ActionMouseWheel

	// ActionKeyPress is a key press.
	ActionKeyPress

	// ActionActivate is the synthesized event delivered to a tool when it
	// is invoked. Its payload names the tool being activated.
	ActionActivate

	// ActionCancel asks the receiving tool to abandon its current
	// operation (typically bound to Escape).
	ActionCancel

	// ActionContextMenuUpdate asks a tool to refresh its context menu
	// content before it is shown.
	ActionContextMenuUpdate

	// ActionContextMenuChoice reports the entry chosen from a context
	// menu.
	ActionContextMenuChoice

	// ActionViewRefresh reports that the view was redrawn or resized.
	ActionViewRefresh

	// ActionUndoRedo reports that the model changed under the tools' feet
	// via undo or redo.
	ActionUndoRedo

	// ActionAny matches every action. Used in wildcard conditions.
	ActionAny Action = 0xffffffff
)

// Event is an immutable description of a single occurrence. Conditions are
// represented by the same type: an Event with wildcard masks is "any event
// shaped like this".
type Event struct {
	// Category is the kind of occurrence.
	Category Category

	// Action narrows the occurrence within its category.
	Action Action

	// Params is an opaque payload (pointer position, key, command
	// arguments). The core stores and forwards it, never interprets it.
	Params any

	// ID uniquely identifies this event instance, for tracing.
	ID string

	// Time is when the event was created.
	Time time.Time
}

// MakeEvent creates a new event with the given tags and payload.
func MakeEvent(category Category, action Action, params any) Event {
	return Event{
		Category: category,
		Action:   action,
		Params:   params,
		ID:       uuid.NewString(),
		Time:     time.Now(),
	}
}

// Activation synthesizes the event delivered to a tool when it is invoked.
// The payload is the invoked tool's name.
func Activation(toolName string) Event {
	return MakeEvent(CategoryCommand, ActionActivate, toolName)
}

// Matches reports whether e, treated as a condition, accepts ev. Matching
// is categorical: the category masks must intersect and the action masks
// must intersect. Payloads are ignored.
func (e Event) Matches(ev Event) bool {
	return e.Category&ev.Category != 0 && e.Action&ev.Action != 0
}

// IsCancel reports whether the event is a cancel request.
func (e Event) IsCancel() bool {
	return e.Category == CategoryCommand && e.Action == ActionCancel
}

// IsActivation reports whether the event is a tool activation.
func (e Event) IsActivation() bool {
	return e.Category == CategoryCommand && e.Action == ActionActivate
}

// String returns a compact description for logging and test failures.
func (e Event) String() string {
	return fmt.Sprintf("event(%s/%#x)", e.Category, uint32(e.Action))
}
