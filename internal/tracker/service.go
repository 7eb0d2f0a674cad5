// internal/tracker/service.go
//
// The task service orchestrates the three stores to implement the four
// user-facing operations. Every mutating operation follows the same
// discipline: validate preconditions against current store state, perform
// the primary entity mutation, then the audit-log mutation. The two writes
// are not transactional; a failure on the second leaves the first in place.

package tracker

import (
	"fmt"
	"time"

	"github.com/kingrea/taskdeck/internal/store"
)

// TaskView is the read-only projection handed to the presentation layer.
type TaskView struct {
	Code         int
	Name         string
	Status       Status
	AssigneeName string
	// Mine is set when the logged-in user is the assignee.
	Mine bool
}

// Service implements the task lifecycle over the flat-file stores.
type Service struct {
	tasks *store.TaskStore
	logs  *store.LogStore
	users *store.UserStore
	now   func() time.Time
}

// ServiceOption customizes a Service during construction.
type ServiceOption func(*Service)

// WithClock overrides the clock used for audit-log dates.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = clock
	}
}

// NewService builds a service over the given stores.
func NewService(tasks *store.TaskStore, logs *store.LogStore, users *store.UserStore, opts ...ServiceOption) *Service {
	svc := &Service{
		tasks: tasks,
		logs:  logs,
		users: users,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Login authenticates by exact email and password match. Failure is a
// recoverable ErrLoginFailed; the caller re-prompts.
func (s *Service) Login(email, password string) (*store.User, error) {
	user, err := s.users.FindByEmailAndPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("tracker: login: %w", err)
	}
	if user == nil {
		return nil, ErrLoginFailed
	}
	return user, nil
}

// ListAll returns every task annotated for display. Pure projection: no
// mutation, no business-rule error path.
func (s *Service) ListAll(loginUser *store.User) ([]TaskView, error) {
	tasks, err := s.tasks.FindAll()
	if err != nil {
		return nil, fmt.Errorf("tracker: list tasks: %w", err)
	}
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, TaskView{
			Code:         t.Code,
			Name:         t.Name,
			Status:       Status(t.Status),
			AssigneeName: t.Assignee.Name,
			Mine:         t.Assignee.Code == loginUser.Code,
		})
	}
	return views, nil
}

// Create persists a new task with status Not Started, then appends the
// creation event to the audit log.
func (s *Service) Create(code int, name string, assigneeCode int, loginUser *store.User) error {
	assignee, err := s.users.FindByCode(assigneeCode)
	if err != nil {
		return fmt.Errorf("tracker: resolve assignee: %w", err)
	}
	if assignee == nil {
		return ErrInvalidAssignee
	}

	task := store.Task{
		Code:     code,
		Name:     name,
		Status:   int(StatusNotStarted),
		Assignee: assignee,
	}
	if err := s.tasks.Save(task); err != nil {
		return fmt.Errorf("tracker: save task: %w", err)
	}
	if err := s.appendLog(code, loginUser, StatusNotStarted); err != nil {
		return err
	}
	return nil
}

// ChangeStatus advances a task to newStatus, which must be exactly one step
// ahead of the current status. Name and assignee are unchanged.
func (s *Service) ChangeStatus(code int, newStatus Status, loginUser *store.User) error {
	task, err := s.tasks.FindByCode(code)
	if err != nil {
		return fmt.Errorf("tracker: find task: %w", err)
	}
	if task == nil {
		return ErrTaskNotFound
	}
	if !Status(task.Status).CanAdvanceTo(newStatus) {
		return ErrInvalidTransition
	}

	updated := *task
	updated.Status = int(newStatus)
	if err := s.tasks.Update(updated); err != nil {
		return fmt.Errorf("tracker: update task: %w", err)
	}
	if err := s.appendLog(code, loginUser, newStatus); err != nil {
		return err
	}
	return nil
}

// Delete removes a task and all its audit logs. Only tasks in the terminal
// Done status may be deleted.
func (s *Service) Delete(code int) error {
	task, err := s.tasks.FindByCode(code)
	if err != nil {
		return fmt.Errorf("tracker: find task: %w", err)
	}
	if task == nil {
		return ErrTaskNotFound
	}
	if !Status(task.Status).Terminal() {
		return ErrTaskNotDone
	}

	if err := s.tasks.Delete(code); err != nil {
		return fmt.Errorf("tracker: delete task: %w", err)
	}
	if err := s.logs.DeleteByTaskCode(code); err != nil {
		return fmt.Errorf("tracker: delete task logs: %w", err)
	}
	return nil
}

func (s *Service) appendLog(taskCode int, loginUser *store.User, status Status) error {
	entry := store.Log{
		TaskCode:       taskCode,
		ChangeUserCode: loginUser.Code,
		Status:         int(status),
		ChangeDate:     s.now(),
	}
	if err := s.logs.Save(entry); err != nil {
		return fmt.Errorf("tracker: append audit log: %w", err)
	}
	return nil
}
