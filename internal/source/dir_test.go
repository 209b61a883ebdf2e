package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDirSource_ReportsCreatedFiles(t *testing.T) {
	dir := t.TempDir()
	src, err := NewDirSource(dir)
	if err != nil {
		t.Fatalf("NewDirSource: %v", err)
	}
	defer src.Close()

	if err := os.WriteFile(filepath.Join(dir, "notepad.exe"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	name, err := src.Next(ctx)
	if err != nil {
		t.Fatalf("Next error = %v", err)
	}
	if name != "notepad.exe" {
		t.Fatalf("Next = %q, want %q", name, "notepad.exe")
	}
}

func TestDirSource_MissingDirFails(t *testing.T) {
	if _, err := NewDirSource(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("NewDirSource on missing dir returned nil error")
	}
}

func TestDirSource_ClosedWatcherIsFatal(t *testing.T) {
	src, err := NewDirSource(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirSource: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := src.Next(ctx); !IsFatal(err) {
		t.Fatalf("Next after Close error = %v, want fatal", err)
	}
}
