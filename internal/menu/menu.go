// Package menu holds the declarative context-menu state a tool attaches to
// its activation. The core only stores the menu content and its trigger
// policy; presentation belongs to the host UI layer, which reads the current
// policy back from the manager and renders however it likes.
package menu

import "github.com/dshills/toolflow/internal/event"

// Trigger says when a tool's context menu should be shown.
type Trigger int

const (
	// TriggerOff disables the menu.
	TriggerOff Trigger = iota

	// TriggerNow asks the UI layer to open the menu immediately.
	TriggerNow

	// TriggerButton opens the menu when the designated trigger input
	// (conventionally the right mouse button) arrives.
	TriggerButton
)

// String returns the trigger name.
func (t Trigger) String() string {
	switch t {
	case TriggerOff:
		return "off"
	case TriggerNow:
		return "now"
	case TriggerButton:
		return "button"
	default:
		return "unknown"
	}
}

// Entry is a single selectable menu item. Choosing it makes the UI layer
// feed the entry's event back through normal dispatch, so the owning tool
// receives the choice like any other occurrence.
type Entry struct {
	// Label is the text shown for the entry.
	Label string

	// Event is dispatched when the entry is chosen.
	Event event.Event
}

// Menu is the content reference a tool hands to the scheduler.
type Menu struct {
	// Title is the menu heading, may be empty.
	Title string

	entries []Entry
}

// New creates an empty menu with the given title.
func New(title string) *Menu {
	return &Menu{Title: title}
}

// Append adds an entry to the menu.
func (m *Menu) Append(label string, ev event.Event) {
	m.entries = append(m.entries, Entry{Label: label, Event: ev})
}

// Entries returns the menu entries in append order.
func (m *Menu) Entries() []Entry {
	return m.entries
}

// Clear removes all entries, keeping the title.
func (m *Menu) Clear() {
	m.entries = m.entries[:0]
}
