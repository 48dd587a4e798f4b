// Package event defines the tool event model: a tagged, immutable value
// describing a single input or application occurrence, and the condition
// lists tools use to say which events they want.
//
// # Events
//
// Every event carries a category and an action, both bitmasks. The category
// says what kind of occurrence it was (mouse, key, command, message, view);
// the action narrows it down (button down, click, drag, activate, cancel).
// An optional opaque payload carries position, key or command data the core
// never interprets.
//
//	ev := event.MakeEvent(event.CategoryMouse, event.ActionMouseClick, pos)
//
// # Matching
//
// Tools do not subscribe to exact events; they declare conditions. A
// condition matches an event when the category masks intersect and the
// action masks intersect, so the *Any masks act as wildcards:
//
//	anyClick := event.MakeEvent(event.CategoryMouse, event.ActionMouseClick, nil)
//	anything := event.MakeEvent(event.CategoryAny, event.ActionAny, nil)
//
// A List bundles several conditions; it matches when any member does. Lists
// are the unit a tool hands to the scheduler ("wake me on any of these").
//
// Events are immutable once created; matching is categorical and never
// inspects the payload.
package event
