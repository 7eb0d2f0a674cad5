// internal/store/task.go
//
// Task persistence over the tasks file. Save appends; Update and Delete read
// the whole file and rewrite it in one pass, preserving record order.

package store

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/kingrea/taskdeck/internal/record"
)

// TaskHeader is the header line of the tasks file.
const TaskHeader = "Code,Name,Status,Rep_User_Code"

// Task is one unit of work. Assignee is resolved to a full User value on
// every read; only the user code is persisted.
type Task struct {
	Code     int
	Name     string
	Status   int
	Assignee *User
}

// TaskStore reads and writes task records. It holds a read-only reference to
// the user store to resolve assignee codes; it never mutates user data.
type TaskStore struct {
	path  string
	users *UserStore
	mu    sync.Mutex
}

// NewTaskStore creates a store over the tasks file at path.
func NewTaskStore(path string, users *UserStore) *TaskStore {
	return &TaskStore{path: path, users: users}
}

// FindAll returns every task in file order, each with its assignee resolved.
func (s *TaskStore) FindAll() ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

// FindByCode returns the first task with the given code, or nil when absent.
func (s *TaskStore) FindByCode(code int) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines, err := record.ReadAll(s.path)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if len(line.Fields) != 4 {
			return nil, record.FieldCountError(s.path, line, 4)
		}
		c, err := record.ParseInt(line.Fields[0])
		if err != nil {
			return nil, decodeError(s.path, line, err)
		}
		if c != code {
			continue
		}
		t, err := s.decodeTask(line)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, nil
}

// Save appends one task record. Duplicate codes are not checked here; the
// caller is responsible for key uniqueness.
func (s *TaskStore) Save(task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return record.AppendLine(s.path, encodeTask(task))
}

// Update rewrites the whole file, replacing the record whose code matches
// task.Code with task's values. All other records are written unchanged, in
// their original order.
func (s *TaskStore) Update(task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.readAll()
	if err != nil {
		return err
	}
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t.Code == task.Code {
			lines = append(lines, encodeTask(task))
		} else {
			lines = append(lines, encodeTask(t))
		}
	}
	return record.WriteAll(s.path, TaskHeader, lines)
}

// Delete rewrites the whole file, dropping every record whose code matches.
// The remaining records keep their original order.
func (s *TaskStore) Delete(code int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.readAll()
	if err != nil {
		return err
	}
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t.Code != code {
			lines = append(lines, encodeTask(t))
		}
	}
	return record.WriteAll(s.path, TaskHeader, lines)
}

func (s *TaskStore) readAll() ([]Task, error) {
	lines, err := record.ReadAll(s.path)
	if err != nil {
		return nil, err
	}
	tasks := make([]Task, 0, len(lines))
	for _, line := range lines {
		t, err := s.decodeTask(line)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (s *TaskStore) decodeTask(line record.Line) (*Task, error) {
	if len(line.Fields) != 4 {
		return nil, record.FieldCountError(s.path, line, 4)
	}
	code, err := record.ParseInt(line.Fields[0])
	if err != nil {
		return nil, decodeError(s.path, line, err)
	}
	status, err := record.ParseInt(line.Fields[2])
	if err != nil {
		return nil, decodeError(s.path, line, err)
	}
	assigneeCode, err := record.ParseInt(line.Fields[3])
	if err != nil {
		return nil, decodeError(s.path, line, err)
	}
	assignee, err := s.users.FindByCode(assigneeCode)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, fmt.Errorf("store: %s line %d: assignee %d not found",
			s.path, line.Number, assigneeCode)
	}
	return &Task{
		Code:     code,
		Name:     line.Fields[1],
		Status:   status,
		Assignee: assignee,
	}, nil
}

func encodeTask(t Task) string {
	return record.Join(
		strconv.Itoa(t.Code),
		t.Name,
		strconv.Itoa(t.Status),
		strconv.Itoa(t.Assignee.Code),
	)
}
