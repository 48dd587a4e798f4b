package plugin

import (
	"fmt"

	"github.com/dshills/toolflow/internal/event"
)

// Category and action names accepted by the script-facing API.
var categories = map[string]event.Category{
	"mouse":   event.CategoryMouse,
	"key":     event.CategoryKey,
	"command": event.CategoryCommand,
	"message": event.CategoryMessage,
	"view":    event.CategoryView,
	"any":     event.CategoryAny,
}

var actions = map[string]event.Action{
	"down":         event.ActionMouseDown,
	"up":           event.ActionMouseUp,
	"click":        event.ActionMouseClick,
	"double-click": event.ActionMouseDoubleClick,
	"drag-start":   event.ActionMouseDragStart,
	"drag":         event.ActionMouseDrag,
	"motion":       event.ActionMouseMotion,
	"wheel":        event.ActionMouseWheel,
	"key-press":    event.ActionKeyPress,
	"activate":     event.ActionActivate,
	"cancel":       event.ActionCancel,
	"menu-update":  event.ActionContextMenuUpdate,
	"menu-choice":  event.ActionContextMenuChoice,
	"refresh":      event.ActionViewRefresh,
	"undo-redo":    event.ActionUndoRedo,
	"any":          event.ActionAny,
}

// condition builds an event condition from script-facing names.
func condition(category, action string) (event.Event, error) {
	c, ok := categories[category]
	if !ok {
		return event.Event{}, fmt.Errorf("%w: category %q", ErrUnknownName, category)
	}
	a, ok := actions[action]
	if !ok {
		return event.Event{}, fmt.Errorf("%w: action %q", ErrUnknownName, action)
	}
	return event.MakeEvent(c, a, nil), nil
}

var categoryNames = reverse(categories)
var actionNames = reverse(actions)

func reverse[K, V comparable](m map[K]V) map[V]K {
	out := make(map[V]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// categoryName returns the script-facing name for a category, or its
// String form for combinations.
func categoryName(c event.Category) string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return c.String()
}

// actionName returns the script-facing name for an action.
func actionName(a event.Action) string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%#x)", uint32(a))
}
