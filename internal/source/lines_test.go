package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLineSource_YieldsNonBlankLinesThenExhausts(t *testing.T) {
	src := NewLineSource(strings.NewReader("svchost.exe\n\n  explorer.exe  \ncmd.exe"))
	defer src.Close()

	got := collect(t, src, 3)
	want := []string{"svchost.exe", "explorer.exe", "cmd.exe"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %v, want %v", got, want)
	}

	_, err := src.Next(context.Background())
	if !IsFatal(err) || !errors.Is(err, ErrExhausted) {
		t.Fatalf("Next at EOF error = %v, want fatal ErrExhausted", err)
	}
}

func TestLineSource_NextIsInterruptible(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	src := NewLineSource(pr)
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := src.Next(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Next error = %v, want deadline exceeded", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("Next did not return promptly after cancellation")
	}
}

func TestOpenLineSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.txt")
	if err := os.WriteFile(path, []byte("a.exe\nb.exe\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	src, err := Open(Options{Kind: KindLines, LinesPath: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer Close(src)

	got := collect(t, src, 2)
	if !reflect.DeepEqual(got, []string{"a.exe", "b.exe"}) {
		t.Fatalf("lines = %v", got)
	}
}

func TestOpenLineSource_MissingFile(t *testing.T) {
	if _, err := OpenLineSource(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("OpenLineSource on missing file returned nil error")
	}
}
