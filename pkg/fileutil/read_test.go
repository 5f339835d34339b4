package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"

	somnoerrors "github.com/stafne/somno/internal/errors"
)

func TestReadFileWithLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := []byte(`{"event_types":{"Start":"green"}}`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("seeding file: %v", err)
	}

	data, err := ReadFileWithLimit(path)
	if err != nil {
		t.Fatalf("ReadFileWithLimit() error = %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("data = %q, want %q", data, content)
	}
}

func TestReadFileWithLimit_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFileWithLimit(filepath.Join(dir, "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, somnoerrors.ErrNotFound) {
		t.Errorf("error not marked ErrNotFound: %v", err)
	}
}

func TestReadFileWithLimit_Unreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{}"), 0000); err != nil {
		t.Fatalf("seeding file: %v", err)
	}

	_, err := ReadFileWithLimit(path)
	if err == nil {
		t.Fatal("expected error for unreadable file")
	}
	if !errors.Is(err, somnoerrors.ErrUnreadable) {
		t.Errorf("error not marked ErrUnreadable: %v", err)
	}
}

func TestReadFileWithLimit_TooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "huge.json")

	big := make([]byte, MaxFileSize+1)
	if err := os.WriteFile(path, big, 0644); err != nil {
		t.Fatalf("seeding file: %v", err)
	}

	_, err := ReadFileWithLimit(path)
	if err == nil {
		t.Fatal("expected error for oversized file")
	}
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("error = %v, want ErrFileTooLarge", err)
	}
	if !errors.Is(err, somnoerrors.ErrMalformed) {
		t.Errorf("error not marked ErrMalformed: %v", err)
	}
}
