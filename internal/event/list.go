package event

// List is a set of event conditions. Order is irrelevant: the list matches
// an event when any member condition does. The empty list matches nothing.
type List struct {
	conditions []Event
}

// MakeList creates a condition list from the given conditions.
func MakeList(conditions ...Event) List {
	l := List{conditions: make([]Event, len(conditions))}
	copy(l.conditions, conditions)
	return l
}

// Add returns a list extended with an additional condition. The receiver is
// not modified.
func (l List) Add(condition Event) List {
	out := List{conditions: make([]Event, 0, len(l.conditions)+1)}
	out.conditions = append(out.conditions, l.conditions...)
	out.conditions = append(out.conditions, condition)
	return out
}

// Matches reports whether any condition in the list accepts ev.
func (l List) Matches(ev Event) bool {
	for _, c := range l.conditions {
		if c.Matches(ev) {
			return true
		}
	}
	return false
}

// Empty reports whether the list has no conditions.
func (l List) Empty() bool {
	return len(l.conditions) == 0
}

// Len returns the number of conditions in the list.
func (l List) Len() int {
	return len(l.conditions)
}
