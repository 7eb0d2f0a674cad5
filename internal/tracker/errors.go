// internal/tracker/errors.go
//
// Business-rule violations are recoverable: the presentation layer shows the
// message and re-prompts. Storage failures are wrapped separately and abort
// the operation.

package tracker

import "errors"

var (
	// ErrLoginFailed means no user matched the supplied credentials.
	ErrLoginFailed = errors.New("no user matches that email address and password")

	// ErrInvalidAssignee means task creation referenced a user code that
	// does not exist.
	ErrInvalidAssignee = errors.New("enter the code of an existing user")

	// ErrTaskNotFound means a status change or delete targeted a task code
	// that does not exist.
	ErrTaskNotFound = errors.New("enter the code of an existing task")

	// ErrInvalidTransition means the requested status is not exactly one
	// step ahead of the current status.
	ErrInvalidTransition = errors.New("status may only advance to the next step")

	// ErrTaskNotDone means delete was requested on a task that has not
	// reached the Done status.
	ErrTaskNotDone = errors.New("only tasks with status Done can be deleted")
)
