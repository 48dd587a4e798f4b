package menu_test

import (
	"testing"

	"github.com/dshills/toolflow/internal/event"
	"github.com/dshills/toolflow/internal/menu"
)

func TestAppendAndEntries(t *testing.T) {
	m := menu.New("Move")
	m.Append("Rotate", event.MakeEvent(event.CategoryCommand, event.ActionContextMenuChoice, "rotate"))
	m.Append("Flip", event.MakeEvent(event.CategoryCommand, event.ActionContextMenuChoice, "flip"))

	entries := m.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Label != "Rotate" || entries[1].Label != "Flip" {
		t.Errorf("entries out of order: %q, %q", entries[0].Label, entries[1].Label)
	}
}

func TestClear(t *testing.T) {
	m := menu.New("Edit")
	m.Append("Undo", event.MakeEvent(event.CategoryMessage, event.ActionUndoRedo, nil))
	m.Clear()

	if len(m.Entries()) != 0 {
		t.Error("expected no entries after Clear")
	}
	if m.Title != "Edit" {
		t.Error("Clear must keep the title")
	}
}

func TestTriggerString(t *testing.T) {
	tests := []struct {
		trigger menu.Trigger
		want    string
	}{
		{menu.TriggerOff, "off"},
		{menu.TriggerNow, "now"},
		{menu.TriggerButton, "button"},
	}

	for _, tt := range tests {
		if got := tt.trigger.String(); got != tt.want {
			t.Errorf("Trigger(%d).String() = %q, want %q", tt.trigger, got, tt.want)
		}
	}
}
