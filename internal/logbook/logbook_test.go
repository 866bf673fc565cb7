package logbook

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestTailReturnsRecentLines(t *testing.T) {
	dir := t.TempDir()
	book, err := New(filepath.Join(dir, "session.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
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

func TestNilLogbookIsSafe(t *testing.T) {
	var book *Logbook
	book.Info("ignored")
	book.Warn("ignored")
	book.Error("ignored")
	if lines := book.Tail(5); lines != nil {
		t.Fatalf("nil logbook must return no lines")
	}
	if book.Path() != "" {
		t.Fatalf("nil logbook has no path")
	}
}

func TestLevelsAreRecorded(t *testing.T) {
	dir := t.TempDir()
	book, err := New(filepath.Join(dir, "session.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Warn("slow webhook")
	book.Error("export failed")
	lines := book.Tail(2)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "WARN") || !strings.Contains(lines[1], "ERROR") {
		t.Fatalf("levels missing: %v", lines)
	}
}
