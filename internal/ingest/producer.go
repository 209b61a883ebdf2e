package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/led-robster/process-logger/internal/logging"
	"github.com/led-robster/process-logger/internal/logstore"
	"github.com/led-robster/process-logger/internal/source"
)

const (
	baseBackoff = 100 * time.Millisecond
	maxBackoff  = 30 * time.Second
)

var (
	// ErrShutdownTimeout is returned by Wait when the producer goroutine is
	// still running after the caller's bound.
	ErrShutdownTimeout = errors.New("producer did not stop in time")

	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New("producer already started")
)

// Appender stores an event and returns the resulting entry.
type Appender interface {
	Append(text string) logstore.Entry
}

// Producer pulls events from a Source on its own goroutine, appends each to
// the store and hands the entry to the consumer queue.
type Producer struct {
	src    source.Source
	store  Appender
	queue  *Queue
	logger *slog.Logger

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	stop    chan struct{}
	done    chan struct{}
	err     error

	stopOnce sync.Once
}

// NewProducer wires a producer. A nil logger discards log output.
func NewProducer(src source.Source, store Appender, queue *Queue, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Producer{
		src:    src,
		store:  store,
		queue:  queue,
		logger: logger,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start launches the ingestion goroutine and returns immediately.
func (p *Producer) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return ErrAlreadyStarted
	}
	p.started = true

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	go p.run(runCtx)
	return nil
}

// Stop asks the goroutine to exit after the event in flight, and cancels
// the pending wait on the source. It does not block.
func (p *Producer) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
		p.mu.Lock()
		cancel := p.cancel
		p.mu.Unlock()
		if cancel != nil {
			cancel()
		}
	})
}

// Wait blocks until the goroutine has exited or timeout elapses. A producer
// that was never started counts as stopped.
func (p *Producer) Wait(timeout time.Duration) error {
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-p.done:
		return nil
	case <-timer.C:
		return fmt.Errorf("%w after %s", ErrShutdownTimeout, timeout)
	}
}

// Done is closed once the goroutine exits, for any reason.
func (p *Producer) Done() <-chan struct{} {
	return p.done
}

// Err returns the fatal source error that ended the loop, if any. It is only
// meaningful after Done is closed.
func (p *Producer) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *Producer) run(ctx context.Context) {
	defer close(p.done)
	p.logger.Info("producer started")

	failures := 0
	for {
		if p.stopping() {
			p.logger.Info("producer stopped")
			return
		}

		text, err := p.src.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("producer stopped")
				return
			}
			if source.IsFatal(err) {
				p.logger.Error("event source failed", "error", err)
				p.mu.Lock()
				p.err = err
				p.mu.Unlock()
				return
			}

			delay := calculateBackoff(failures, baseBackoff)
			failures++
			p.logger.Warn("event source hiccup", "error", err, "failures", failures, "retry_in", delay)
			if !p.sleep(ctx, delay) {
				p.logger.Info("producer stopped")
				return
			}
			continue
		}
		failures = 0

		entry := p.store.Append(text)
		p.queue.Push(entry)
		p.logger.Debug("event ingested", "seq", entry.Seq, "text", entry.Text)
	}
}

func (p *Producer) stopping() bool {
	select {
	case <-p.stop:
		return true
	default:
		return false
	}
}

func (p *Producer) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-p.stop:
		return false
	case <-timer.C:
		return true
	}
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	delay := base
	for i := 0; i < failures; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	return delay
}
