// internal/store/log.go
//
// Append-only audit events. One log is written per task creation and per
// status change; deleting a task removes its logs via a full rewrite.

package store

import (
	"strconv"
	"sync"
	"time"

	"github.com/kingrea/taskdeck/internal/record"
)

// LogHeader is the header line of the logs file.
const LogHeader = "Task_Code,Change_User_Code,Status,Change_Date"

// Log records one status-change event. TaskCode is not required to reference
// a task that still exists. ChangeDate carries no time component.
type Log struct {
	TaskCode       int
	ChangeUserCode int
	Status         int
	ChangeDate     time.Time
}

// LogStore reads and writes audit log records.
type LogStore struct {
	path string
	mu   sync.Mutex
}

// NewLogStore creates a store over the logs file at path.
func NewLogStore(path string) *LogStore {
	return &LogStore{path: path}
}

// Save appends one log record.
func (s *LogStore) Save(log Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return record.AppendLine(s.path, encodeLog(log))
}

// FindAll returns every log record after the header, in file order.
func (s *LogStore) FindAll() ([]Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

// DeleteByTaskCode rewrites the whole file, keeping every log whose task
// code does not match, in original order.
func (s *LogStore) DeleteByTaskCode(taskCode int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	logs, err := s.readAll()
	if err != nil {
		return err
	}
	lines := make([]string, 0, len(logs))
	for _, l := range logs {
		if l.TaskCode != taskCode {
			lines = append(lines, encodeLog(l))
		}
	}
	return record.WriteAll(s.path, LogHeader, lines)
}

func (s *LogStore) readAll() ([]Log, error) {
	lines, err := record.ReadAll(s.path)
	if err != nil {
		return nil, err
	}
	logs := make([]Log, 0, len(lines))
	for _, line := range lines {
		if len(line.Fields) != 4 {
			return nil, record.FieldCountError(s.path, line, 4)
		}
		taskCode, err := record.ParseInt(line.Fields[0])
		if err != nil {
			return nil, decodeError(s.path, line, err)
		}
		userCode, err := record.ParseInt(line.Fields[1])
		if err != nil {
			return nil, decodeError(s.path, line, err)
		}
		status, err := record.ParseInt(line.Fields[2])
		if err != nil {
			return nil, decodeError(s.path, line, err)
		}
		date, err := record.ParseDate(line.Fields[3])
		if err != nil {
			return nil, decodeError(s.path, line, err)
		}
		logs = append(logs, Log{
			TaskCode:       taskCode,
			ChangeUserCode: userCode,
			Status:         status,
			ChangeDate:     date,
		})
	}
	return logs, nil
}

func encodeLog(l Log) string {
	return record.Join(
		strconv.Itoa(l.TaskCode),
		strconv.Itoa(l.ChangeUserCode),
		strconv.Itoa(l.Status),
		record.FormatDate(l.ChangeDate),
	)
}
