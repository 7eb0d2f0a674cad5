package logbook

import (
	"strings"
	"testing"
)

func TestTailReturnsRecentLines(t *testing.T) {
	book, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines := book.Tail(3)
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestTailEmptyLogbook(t *testing.T) {
	book, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open logbook: %v", err)
	}
	if lines := book.Tail(5); lines != nil {
		t.Fatalf("expected nil for empty logbook, got %v", lines)
	}
}

func TestLevelsAppearInEntries(t *testing.T) {
	book, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open logbook: %v", err)
	}
	book.Warn("disk nearly full")
	book.Error("write failed")
	lines := book.Tail(2)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "WARN") || !strings.Contains(lines[1], "ERROR") {
		t.Fatalf("levels missing from entries: %v", lines)
	}
}
