package source

import (
	"context"
	"errors"
	"fmt"
)

// Source yields one event name per call, blocking until an event is
// available. Implementations return early with ctx.Err() when ctx is
// cancelled, where the underlying mechanism allows it.
type Source interface {
	Next(ctx context.Context) (string, error)
}

// ErrExhausted reports that a finite source has no more events.
var ErrExhausted = errors.New("source exhausted")

// TransientError is a recoverable hiccup; the caller should log it and wait
// for the next event.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return "transient source error: " + e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// FatalError means the source can no longer produce events.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return "fatal source error: " + e.Err.Error() }
func (e *FatalError) Unwrap() error { return e.Err }

// Transient wraps err as a TransientError.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// Fatal wraps err as a FatalError.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal reports whether err carries a FatalError. Anything else,
// including unclassified errors, is treated as transient.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

// Kind names a source backend.
type Kind string

const (
	KindProcess Kind = "process"
	KindDir     Kind = "dir"
	KindLines   Kind = "lines"
)

// ParseKind validates a backend name.
func ParseKind(value string) (Kind, error) {
	switch k := Kind(value); k {
	case KindProcess, KindDir, KindLines:
		return k, nil
	default:
		return "", fmt.Errorf("unknown source %q (want process, dir or lines)", value)
	}
}
