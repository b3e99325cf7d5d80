package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := NewFile(path); err == nil {
		t.Fatalf("expected an error for a corrupt document")
	}
}

func TestFileEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if len(f.values) != 0 {
		t.Fatalf("expected no values, got %v", f.values)
	}
}
