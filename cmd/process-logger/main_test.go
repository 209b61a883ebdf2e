package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/led-robster/process-logger/internal/app"
)

func TestRootCmd_ParsesFlags(t *testing.T) {
	var got app.Options
	cmd := newRootCmd(func(_ context.Context, opts app.Options) error {
		got = opts
		return nil
	})
	cmd.SetArgs([]string{
		"--config", "/tmp/pl.toml",
		"--prefs", "/tmp/prefs.toml",
		"--source", "dir",
		"--dir", "/tmp/spool",
		"--poll", "250ms",
		"--log-level", "debug",
	})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.ConfigPath != "/tmp/pl.toml" || got.PrefsPath != "/tmp/prefs.toml" {
		t.Fatalf("paths = %q %q", got.ConfigPath, got.PrefsPath)
	}
	want := app.Overrides{Source: "dir", Dir: "/tmp/spool", Poll: 250 * time.Millisecond, LogLevel: "debug"}
	if got.Overrides != want {
		t.Fatalf("Overrides = %+v, want %+v", got.Overrides, want)
	}
}

func TestRootCmd_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	cmd := newRootCmd(func(context.Context, app.Options) error { return boom })
	cmd.SetArgs([]string{})

	if err := cmd.ExecuteContext(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Execute err = %v, want %v", err, boom)
	}
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd(func(context.Context, app.Options) error { return nil })
	cmd.SetArgs([]string{"extra"})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatalf("expected error for positional args")
	}
}
