// internal/tracker/status.go
//
// Task status is a three-state machine that only moves forward, one step at
// a time: Not Started -> In Progress -> Done. Done is terminal; a task may
// only be deleted from Done.

package tracker

// Status is a task's position in the lifecycle. The integer values are the
// on-disk representation and must not be reordered.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusDone
)

// String returns the display label for the status.
func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the three defined statuses.
func (s Status) Valid() bool {
	return s >= StatusNotStarted && s <= StatusDone
}

// CanAdvanceTo reports whether a task currently at s may transition to next.
// Only the single forward step is allowed: no skipping, no reverting, no
// staying in place.
func (s Status) CanAdvanceTo(next Status) bool {
	return next == s+1 && next.Valid()
}

// Terminal reports whether s is the final state.
func (s Status) Terminal() bool {
	return s == StatusDone
}
