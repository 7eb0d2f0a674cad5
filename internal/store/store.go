// Package store owns read and write access to the three flat data files:
// users, tasks, and logs. Each store guards its read-modify-write sequence
// with an in-process mutex; cross-process concurrency is unsupported.
package store

import (
	"fmt"

	"github.com/kingrea/taskdeck/internal/record"
)

func decodeError(path string, line record.Line, err error) error {
	return fmt.Errorf("store: %s line %d: %w", path, line.Number, err)
}
