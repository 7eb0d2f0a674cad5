// internal/store/user.go
//
// Read-only access to the users file. User records have no in-app lifecycle;
// they are seeded at install time and only ever looked up.

package store

import (
	"sync"

	"github.com/kingrea/taskdeck/internal/record"
)

// UserHeader is the header line of the users file.
const UserHeader = "Code,Name,Email,Password"

// User is one identity record.
type User struct {
	Code     int
	Name     string
	Email    string
	Password string
}

// UserStore reads user records from the backing file. Every lookup re-reads
// the file from the beginning; there is no cache.
type UserStore struct {
	path string
	mu   sync.Mutex
}

// NewUserStore creates a store over the users file at path.
func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// FindByEmailAndPassword returns the first user whose email and password
// match exactly, or nil when none does. The comparison is case-sensitive
// plaintext equality, matching the stored format.
func (s *UserStore) FindByEmailAndPassword(email, password string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines, err := record.ReadAll(s.path)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		u, err := decodeUser(s.path, line)
		if err != nil {
			return nil, err
		}
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return nil, nil
}

// FindByCode returns the first user with the given code, or nil when absent.
func (s *UserStore) FindByCode(code int) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines, err := record.ReadAll(s.path)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		u, err := decodeUser(s.path, line)
		if err != nil {
			return nil, err
		}
		if u.Code == code {
			return u, nil
		}
	}
	return nil, nil
}

func decodeUser(path string, line record.Line) (*User, error) {
	if len(line.Fields) != 4 {
		return nil, record.FieldCountError(path, line, 4)
	}
	code, err := record.ParseInt(line.Fields[0])
	if err != nil {
		return nil, decodeError(path, line, err)
	}
	return &User{
		Code:     code,
		Name:     line.Fields[1],
		Email:    line.Fields[2],
		Password: line.Fields[3],
	}, nil
}
