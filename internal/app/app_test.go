package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/led-robster/process-logger/internal/config"
	"github.com/led-robster/process-logger/internal/highlight"
	"github.com/led-robster/process-logger/internal/ingest"
	"github.com/led-robster/process-logger/internal/logging"
	"github.com/led-robster/process-logger/internal/source"
)

func TestOverridesApply(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()

	o := Overrides{
		Source:   "lines",
		Poll:     2 * time.Second,
		Dir:      dir,
		Lines:    filepath.Join(dir, "events"),
		LogLevel: " DEBUG ",
	}
	if err := o.Apply(&cfg); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.Source != source.KindLines {
		t.Fatalf("Source = %q, want lines", cfg.Source)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Fatalf("PollInterval = %s, want 2s", cfg.PollInterval)
	}
	if cfg.WatchDir != dir {
		t.Fatalf("WatchDir = %q, want %q", cfg.WatchDir, dir)
	}
	if cfg.LinesPath != filepath.Join(dir, "events") {
		t.Fatalf("LinesPath = %q", cfg.LinesPath)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestOverridesApply_ZeroKeepsConfig(t *testing.T) {
	cfg := config.Default()
	want := cfg
	if err := (Overrides{}).Apply(&cfg); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg != want {
		t.Fatalf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestOverridesApply_Invalid(t *testing.T) {
	cases := []struct {
		name string
		o    Overrides
	}{
		{"unknown source", Overrides{Source: "etw"}},
		{"negative poll", Overrides{Poll: -time.Second}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			if err := tc.o.Apply(&cfg); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestBaseColorFallsBack(t *testing.T) {
	logger := logging.Discard()
	if got := baseColor("#00ff00", logger).Hex(); got != "#00ff00" {
		t.Fatalf("baseColor = %s, want #00ff00", got)
	}
	if got := baseColor("nonsense", logger).Hex(); got != highlight.DefaultBaseColor {
		t.Fatalf("baseColor fallback = %s, want %s", got, highlight.DefaultBaseColor)
	}
}

func TestPipeline_IngestsLineFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events")
	if err := os.WriteFile(path, []byte("chrome.exe\n\nbash\nsshd\n"), 0o644); err != nil {
		t.Fatalf("write events: %v", err)
	}
	src, err := source.OpenLineSource(path)
	if err != nil {
		t.Fatalf("OpenLineSource: %v", err)
	}

	p := newTestPipeline(t, src)
	if err := p.start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	select {
	case <-p.producer.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("producer did not reach end of input")
	}
	if !errors.Is(p.producer.Err(), source.ErrExhausted) {
		t.Fatalf("producer Err = %v, want ErrExhausted", p.producer.Err())
	}

	stats := p.session.Deliver(p.queue.Drain())
	if stats.Total != 3 {
		t.Fatalf("Total = %d, want 3", stats.Total)
	}
	res, stats := p.session.Search("chrome exe")
	if res.Matched != 1 || stats.Highlighted != 1 {
		t.Fatalf("search = %+v, stats = %+v", res, stats)
	}
	if got := p.session.CopyAll(); !strings.Contains(got, "INFO - sshd") {
		t.Fatalf("CopyAll = %q, want sshd line", got)
	}

	if err := p.shutdown(time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

// stuckSource ignores cancellation until released.
type stuckSource struct {
	once    sync.Once
	entered chan struct{}
	release chan struct{}
	closes  atomic.Int32
}

func (s *stuckSource) Next(ctx context.Context) (string, error) {
	s.once.Do(func() { close(s.entered) })
	<-s.release
	return "late", nil
}

func (s *stuckSource) Close() error {
	s.closes.Add(1)
	return nil
}

// idleSource blocks until cancelled and counts Close calls.
type idleSource struct {
	closes atomic.Int32
}

func (s *idleSource) Next(ctx context.Context) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (s *idleSource) Close() error {
	s.closes.Add(1)
	return nil
}

func TestPipeline_ShutdownTimeoutIsReported(t *testing.T) {
	src := &stuckSource{entered: make(chan struct{}), release: make(chan struct{})}
	defer close(src.release)

	p := newTestPipeline(t, src)
	if err := p.start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	<-src.entered

	err := p.shutdown(20 * time.Millisecond)
	if !errors.Is(err, ingest.ErrShutdownTimeout) {
		t.Fatalf("shutdown err = %v, want ErrShutdownTimeout", err)
	}
	if got := src.closes.Load(); got != 0 {
		t.Fatalf("Close calls = %d, want 0 while the producer is still running", got)
	}
}

func TestPipeline_ShutdownClosesSourceAfterCleanStop(t *testing.T) {
	src := &idleSource{}

	p := newTestPipeline(t, src)
	if err := p.start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := p.shutdown(time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if got := src.closes.Load(); got != 1 {
		t.Fatalf("Close calls = %d, want 1", got)
	}
}

func TestPipeline_StopInterruptsWait(t *testing.T) {
	dir := t.TempDir()
	src, err := source.NewDirSource(dir)
	if err != nil {
		t.Fatalf("NewDirSource: %v", err)
	}

	p := newTestPipeline(t, src)
	if err := p.start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := p.shutdown(time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := p.producer.Err(); err != nil {
		t.Fatalf("producer Err = %v, want nil after a clean stop", err)
	}
}

func newTestPipeline(t *testing.T, src source.Source) *pipeline {
	t.Helper()
	base, err := highlight.ParseColor(highlight.DefaultBaseColor)
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	p, err := newPipeline(src, base, 1, logging.Discard())
	if err != nil {
		t.Fatalf("newPipeline: %v", err)
	}
	return p
}
