package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/led-robster/process-logger/internal/highlight"
	"github.com/led-robster/process-logger/internal/ingest"
	"github.com/led-robster/process-logger/internal/logstore"
	"github.com/led-robster/process-logger/internal/session"
	"github.com/led-robster/process-logger/internal/source"
)

// pipeline is everything between the event source and the UI.
type pipeline struct {
	src      source.Source
	store    *logstore.Store
	queue    *ingest.Queue
	producer *ingest.Producer
	session  *session.Session
	logger   *slog.Logger
}

func newPipeline(src source.Source, base colorful.Color, seed uint64, logger *slog.Logger) (*pipeline, error) {
	store := &logstore.Store{}
	queue := ingest.NewQueue()

	sess, err := session.New(session.Options{
		Store:    store,
		Engine:   highlight.NewEngine(base, seed),
		Listener: auditListener(logger),
		Logger:   logger.With("component", "session"),
	})
	if err != nil {
		return nil, fmt.Errorf("init session: %w", err)
	}

	return &pipeline{
		src:      src,
		store:    store,
		queue:    queue,
		producer: ingest.NewProducer(src, store, queue, logger.With("component", "producer")),
		session:  sess,
		logger:   logger,
	}, nil
}

func (p *pipeline) start(ctx context.Context) error {
	if err := p.producer.Start(ctx); err != nil {
		return fmt.Errorf("start producer: %w", err)
	}
	return nil
}

// shutdown stops the producer, waits up to timeout for it to exit and then
// closes the source. A timeout is reported, never swallowed. When the
// producer is still running after the timeout the source is left open: the
// goroutine may be inside Next and closing under it would race. The process
// is about to exit, so the descriptor is reclaimed anyway.
func (p *pipeline) shutdown(timeout time.Duration) error {
	p.producer.Stop()
	waitErr := p.producer.Wait(timeout)

	var closeErr error
	if waitErr != nil {
		p.logger.Error("producer did not stop in time, leaving source open", "timeout", timeout, "error", waitErr)
	} else if err := source.Close(p.src); err != nil {
		closeErr = fmt.Errorf("close source: %w", err)
	}

	if err := p.producer.Err(); err != nil {
		p.logger.Info("producer ended with error", "error", err)
	}
	p.logger.Info("stopped", "entries", p.store.Count())

	return errors.Join(waitErr, closeErr)
}

// auditListener mirrors new entries and counter changes into the debug log.
func auditListener(logger *slog.Logger) session.Listener {
	return session.ListenerFuncs{
		NewEntry: func(e logstore.Entry) {
			logger.Debug("process created", "seq", e.Seq, "name", e.Text)
		},
		StatsChanged: func(s session.Stats) {
			logger.Debug("stats changed", "total", s.Total, "highlighted", s.Highlighted)
		},
	}
}
