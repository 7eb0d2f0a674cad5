package record

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestJoinSplitRoundTrip(t *testing.T) {
	line := Join("1", "Design", "0", "3")
	fields := Split(line)
	if len(fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(fields))
	}
	if fields[1] != "Design" || fields[3] != "3" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

func TestParseDateAcceptsUnpaddedInput(t *testing.T) {
	got, err := ParseDate("2024-1-5")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	want := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	padded, err := ParseDate("2024-01-05")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if !padded.Equal(got) {
		t.Fatalf("padded and unpadded dates should match: %v vs %v", padded, got)
	}
}

func TestParseDateRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"2024-01", "2024/01/05", "abc", "2024-x-5"} {
		if _, err := ParseDate(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestFormatDateZeroPads(t *testing.T) {
	d := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2024-03-07" {
		t.Fatalf("expected 2024-03-07, got %s", got)
	}
}

func TestReadAllSkipsHeaderAndNumbersLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	content := "Code,Name,Status,Rep_User_Code\n1,Design,0,1\n2,Review,1,2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	lines, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 record lines, got %d", len(lines))
	}
	if lines[0].Number != 2 || lines[1].Number != 3 {
		t.Fatalf("unexpected line numbers: %d, %d", lines[0].Number, lines[1].Number)
	}
	if lines[1].Fields[1] != "Review" {
		t.Fatalf("unexpected fields: %v", lines[1].Fields)
	}
}

func TestReadAllMissingFile(t *testing.T) {
	if _, err := ReadAll(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAppendLineThenWriteAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.csv")
	if err := WriteAll(path, "Task_Code,Change_User_Code,Status,Change_Date", nil); err != nil {
		t.Fatal(err)
	}
	if err := AppendLine(path, Join("1", "2", "0", "2024-03-07")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "Task_Code,Change_User_Code,Status,Change_Date\n1,2,0,2024-03-07\n"
	if string(data) != want {
		t.Fatalf("unexpected file contents:\n%s", data)
	}

	if err := WriteAll(path, "Task_Code,Change_User_Code,Status,Change_Date", []string{"3,1,2,2024-04-01"}); err != nil {
		t.Fatal(err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Task_Code") || !strings.Contains(string(data), "3,1,2,2024-04-01") {
		t.Fatalf("rewrite lost content:\n%s", data)
	}
	if strings.Contains(string(data), "1,2,0,2024-03-07") {
		t.Fatalf("rewrite kept stale content:\n%s", data)
	}
}
