// internal/record/record.go
//
// Shared codec for the flat data files. Every entity store persists its
// records as comma-delimited lines under a single header line; this package
// owns the line format so the stores only deal in typed fields.

package record

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Delimiter separates fields within a record line. Field values must not
// contain it; the format has no quoting or escaping.
const Delimiter = ","

// Line is one decoded record line together with its position in the file,
// counted from 1 and including the header line.
type Line struct {
	Number int
	Fields []string
}

// Join encodes one record line from its field values in column order.
func Join(fields ...string) string {
	return strings.Join(fields, Delimiter)
}

// Split decodes one record line into positional fields.
func Split(line string) []string {
	return strings.Split(line, Delimiter)
}

// ParseInt parses a base-10 integer field.
func ParseInt(field string) (int, error) {
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("record: invalid integer %q", field)
	}
	return v, nil
}

// ParseDate parses a hyphen-separated calendar date. Zero padding is not
// required, so both 2024-1-5 and 2024-01-05 decode to the same date.
func ParseDate(field string) (time.Time, error) {
	parts := strings.Split(field, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("record: invalid date %q", field)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("record: invalid date %q", field)
		}
		nums[i] = v
	}
	return time.Date(nums[0], time.Month(nums[1]), nums[2], 0, 0, 0, 0, time.UTC), nil
}

// FormatDate encodes a date as YYYY-MM-DD. Records are written zero-padded
// even though ParseDate tolerates unpadded input.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ReadAll reads every record line from path, skipping the header. Line
// numbers are preserved so decode failures can name the offending line.
func ReadAll(path string) ([]Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("record: read %s: %w", path, err)
	}
	raw := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(raw) == 0 || (len(raw) == 1 && raw[0] == "") {
		return nil, fmt.Errorf("record: %s: missing header line", path)
	}
	var lines []Line
	for i, text := range raw[1:] {
		if text == "" {
			continue
		}
		lines = append(lines, Line{Number: i + 2, Fields: Split(text)})
	}
	return lines, nil
}

// AppendLine appends one encoded record line to the end of path.
func AppendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("record: open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("record: append %s: %w", path, err)
	}
	return nil
}

// WriteAll replaces the entire file with the header followed by every line.
func WriteAll(path, header string, lines []string) error {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("record: write %s: %w", path, err)
	}
	return nil
}

// FieldCountError reports a record line with the wrong number of columns.
func FieldCountError(path string, line Line, want int) error {
	return fmt.Errorf("record: %s line %d: expected %d fields, got %d",
		path, line.Number, want, len(line.Fields))
}
