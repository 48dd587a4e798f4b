package tool

import (
	"hash/fnv"

	"github.com/dshills/toolflow/internal/event"
	"github.com/dshills/toolflow/internal/menu"
)

// ID identifies a registered tool. It is derived deterministically from the
// tool's name, so the same name always yields the same ID within a process
// and across manager instances.
type ID int

// NilID is returned by lookups that find nothing.
const NilID ID = -1

// MakeToolID derives a tool's ID from its name using FNV-1a. The function
// is pure: repeated calls with the same name return the same ID. Two
// distinct names hashing to the same ID is a configuration fault detected
// at registration.
func MakeToolID(name string) ID {
	h := fnv.New32a()
	h.Write([]byte(name))
	// Keep the ID positive so NilID stays out of the value range.
	return ID(h.Sum32() & 0x7fffffff)
}

// HandlerFunc is a tool handler entry point. The argument is the event that
// triggered it. Handlers run cooperatively: they own the manager's critical
// section until they return or park in Wait.
type HandlerFunc func(ev event.Event) error

// Tool is the contract a pluggable editing behavior implements. Identity
// comes from the name; the core stores the (ID, name) pair and routes
// events, nothing more.
type Tool interface {
	// ID returns the tool's derived identifier.
	ID() ID

	// Name returns the tool's unique name, conventionally
	// "application.ToolName".
	Name() string

	// Reset returns the tool to its initial state. Called at registration
	// and whenever the manager resets the tool; this is where a tool arms
	// its entry transition.
	Reset()

	// Attach hands the tool its scheduler. Called once at registration,
	// before the first Reset.
	Attach(s Scheduler)
}

// Scheduler is the face of the manager a tool sees. It is defined here so
// concrete tools depend only on this package. Tools are addressed by ID;
// the manager owns the ID-to-state mapping.
type Scheduler interface {
	// ScheduleNextState registers a transition for the tool: when any
	// event matching conditions arrives, run handler. Effective from the
	// next dispatch cycle.
	ScheduleNextState(id ID, handler HandlerFunc, conditions event.List)

	// ScheduleWait parks the calling handler until a matching event
	// arrives (returned with ok=true) or the tool is reset (ok=false).
	// Legal only from a running handler.
	ScheduleWait(id ID, conditions event.List) (event.Event, bool)

	// ScheduleContextMenu sets the tool's context menu and trigger policy.
	ScheduleContextMenu(id ID, m *menu.Menu, trigger menu.Trigger)

	// PassEvent lets the current handler forward the event it matched to
	// the next tool down the activation stack.
	PassEvent()

	// InvokeParams returns the payload attached to the tool's current
	// activation, or nil outside an activation.
	InvokeParams(id ID) any

	// Model returns the opaque document model reference.
	Model() any

	// View returns the opaque view/render context reference.
	View() any

	// ViewControls returns the opaque input-control context reference.
	ViewControls() any

	// Window returns the opaque host window reference.
	Window() any
}

// Base carries a tool's identity and scheduler handle. Concrete tools embed
// it and get the Go/Wait/Pass conveniences; they still provide Reset
// themselves.
type Base struct {
	id        ID
	name      string
	scheduler Scheduler
}

// NewBase creates the embeddable base for a tool with the given name.
func NewBase(name string) Base {
	return Base{id: MakeToolID(name), name: name}
}

// ID returns the tool's derived identifier.
func (b *Base) ID() ID { return b.id }

// Name returns the tool's name.
func (b *Base) Name() string { return b.name }

// Attach stores the scheduler handle. Called by the manager at
// registration.
func (b *Base) Attach(s Scheduler) { b.scheduler = s }

// Scheduler returns the attached scheduler, nil before registration.
func (b *Base) Scheduler() Scheduler { return b.scheduler }

// Go registers handler to run on any event matching conditions.
func (b *Base) Go(handler HandlerFunc, conditions ...event.Event) {
	b.scheduler.ScheduleNextState(b.id, handler, event.MakeList(conditions...))
}

// Wait parks the calling handler until any event matching conditions
// arrives, or the tool is reset (ok=false).
func (b *Base) Wait(conditions ...event.Event) (event.Event, bool) {
	return b.scheduler.ScheduleWait(b.id, event.MakeList(conditions...))
}

// Pass forwards the event the current handler matched to the next tool on
// the activation stack.
func (b *Base) Pass() {
	b.scheduler.PassEvent()
}

// SetContextMenu declares the tool's context menu and when it should show.
func (b *Base) SetContextMenu(m *menu.Menu, trigger menu.Trigger) {
	b.scheduler.ScheduleContextMenu(b.id, m, trigger)
}

// Params returns the payload attached to the current activation.
func (b *Base) Params() any {
	return b.scheduler.InvokeParams(b.id)
}
