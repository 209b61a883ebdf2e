// Package session is the consumer-side facade over the log store and the
// highlight engine. Everything the rendering surface can ask for goes
// through a Session, and every state change is reported to its Listener
// before the call returns.
package session

import (
	"fmt"
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/led-robster/process-logger/internal/highlight"
	"github.com/led-robster/process-logger/internal/logging"
	"github.com/led-robster/process-logger/internal/logstore"
)

// Stats are the live counters shown to the user.
type Stats struct {
	Total       int
	Highlighted int
}

// Listener observes new entries and counter changes.
type Listener interface {
	OnNewEntry(logstore.Entry)
	OnStatsChanged(Stats)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	NewEntry     func(logstore.Entry)
	StatsChanged func(Stats)
}

func (f ListenerFuncs) OnNewEntry(e logstore.Entry) {
	if f.NewEntry != nil {
		f.NewEntry(e)
	}
}

func (f ListenerFuncs) OnStatsChanged(s Stats) {
	if f.StatsChanged != nil {
		f.StatsChanged(s)
	}
}

// Options configure a Session.
type Options struct {
	Store    *logstore.Store
	Engine   *highlight.Engine
	Listener Listener
	Logger   *slog.Logger
}

// Session serialises the consumer's operations on the store and engine.
// It is meant to be driven from a single goroutine (the UI loop).
type Session struct {
	store    *logstore.Store
	engine   *highlight.Engine
	listener Listener
	logger   *slog.Logger
}

// New builds a Session. Store and Engine are required.
func New(opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("session requires a log store")
	}
	if opts.Engine == nil {
		return nil, fmt.Errorf("session requires a highlight engine")
	}
	listener := opts.Listener
	if listener == nil {
		listener = ListenerFuncs{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{
		store:    opts.Store,
		engine:   opts.Engine,
		listener: listener,
		logger:   logger,
	}, nil
}

// Stats returns the current counters.
func (s *Session) Stats() Stats {
	return Stats{
		Total:       s.store.Count(),
		Highlighted: s.engine.HighlightedCount(),
	}
}

// Deliver announces entries handed over by the producer.
func (s *Session) Deliver(entries []logstore.Entry) Stats {
	for _, e := range entries {
		s.listener.OnNewEntry(e)
	}
	return s.notify()
}

// Search highlights every entry matching query. Any query is valid,
// including the empty string.
func (s *Session) Search(query string) (highlight.Result, Stats) {
	res := s.engine.Search(s.store.Entries(), query)
	s.logger.Debug("search",
		"query", query,
		"matched", res.Matched,
		"newly", res.Newly,
		"tone", res.Tone.Hex(),
	)
	return res, s.notify()
}

// Clear removes every highlight.
func (s *Session) Clear() Stats {
	s.engine.Clear()
	s.logger.Debug("highlights cleared")
	return s.notify()
}

// SetBaseColor parses value and regenerates the palette from it.
func (s *Session) SetBaseColor(value string) (Stats, error) {
	c, err := highlight.ParseColor(value)
	if err != nil {
		return s.Stats(), err
	}
	s.SetBase(c)
	return s.notify(), nil
}

// SetBase regenerates the palette from an already parsed color.
func (s *Session) SetBase(c colorful.Color) {
	s.engine.SetBaseColor(c)
	s.logger.Info("base color changed", "color", c.Hex())
}

// CopyAll returns the whole log as text.
func (s *Session) CopyAll() string {
	return s.store.Text()
}

// Entries returns a snapshot of the log.
func (s *Session) Entries() []logstore.Entry {
	return s.store.Entries()
}

// Mark returns the highlight tone of the entry with sequence seq.
func (s *Session) Mark(seq uint64) (highlight.Tone, bool) {
	return s.engine.Mark(seq)
}

// Counted reports whether tone t comes from the active palette, meaning the
// entry carrying it is included in the highlighted counter.
func (s *Session) Counted(t highlight.Tone) bool {
	return s.engine.Current(t)
}

// Palette returns the active palette.
func (s *Session) Palette() highlight.Palette {
	return s.engine.Palette()
}

// Cursor returns the index of the tone the next search will use.
func (s *Session) Cursor() int {
	return s.engine.Cursor()
}

func (s *Session) notify() Stats {
	stats := s.Stats()
	s.listener.OnStatsChanged(stats)
	return stats
}
