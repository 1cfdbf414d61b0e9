package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLedger_AppendCreatesThenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "created_events.csv")
	l := New(path)

	if l.Exists() {
		t.Fatalf("expected no ledger yet")
	}

	first := []Record{{Summary: "S1", ID: "a", Begin: "2026-01-05T07:00:00-05:00"}}
	if err := l.Append(first); err != nil {
		t.Fatalf("first Append failed: %v", err)
	}
	second := []Record{{Summary: "S2, with comma", ID: "b"}}
	if err := l.Append(second); err != nil {
		t.Fatalf("second Append failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Count(string(data), "Summary,ID,Begin") != 1 {
		t.Errorf("expected exactly one header row, got:\n%s", data)
	}

	records, err := l.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	want := append(first, second...)
	if !reflect.DeepEqual(records, want) {
		t.Errorf("unexpected records.\nGot: %+v\nExpected: %+v", records, want)
	}
}

func TestLedger_AppendFollowsExistingHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "created_events.csv")
	if err := os.WriteFile(path, []byte("Summary,ID\nOld,x1\n"), 0644); err != nil {
		t.Fatalf("failed to seed ledger: %v", err)
	}

	l := New(path)
	if err := l.Append([]Record{{Summary: "New", ID: "x2", Begin: "ignored"}}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "Summary,ID\nOld,x1\nNew,x2\n" {
		t.Errorf("unexpected file contents:\n%s", data)
	}
}

func TestLedger_AppendNothing(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "created_events.csv"))
	if err := l.Append(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Exists() {
		t.Errorf("expected no file to be created for an empty append")
	}
}

func TestLedger_Replace(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "created_events.csv"))
	_ = l.Append([]Record{{Summary: "stale", ID: "old"}})

	fresh := []Record{{Summary: "A", ID: "1", Begin: "2026-01-05"}}
	if err := l.Replace(fresh); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	records, err := l.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !reflect.DeepEqual(records, fresh) {
		t.Errorf("expected only the fresh records, got %+v", records)
	}
}

func TestParse_LowercaseID(t *testing.T) {
	records, err := Parse(strings.NewReader("summary,id\nS,abc\n,\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "abc" || records[0].Summary != "S" {
		t.Errorf("unexpected records %+v", records)
	}
}

func TestParse_NoIDColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("Summary,Begin\nS,2026-01-05\n"))
	if !errors.Is(err, ErrNoIDColumn) {
		t.Errorf("expected ErrNoIDColumn, got %v", err)
	}

	_, err = Parse(strings.NewReader(""))
	if !errors.Is(err, ErrNoIDColumn) {
		t.Errorf("expected ErrNoIDColumn for an empty file, got %v", err)
	}
}

func TestLedger_Remove(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "created_events.csv"))
	_ = l.Append([]Record{{Summary: "S", ID: "1"}})

	if err := l.Remove(); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if l.Exists() {
		t.Errorf("expected ledger to be gone")
	}
}
