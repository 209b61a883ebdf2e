package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

type lineResult struct {
	text string
	err  error
}

// LineSource reads newline-delimited event names from a reader, such as a
// FIFO fed by an external watcher. Blank lines are skipped and end of input
// is fatal.
type LineSource struct {
	r      io.Reader
	closer io.Closer

	startOnce sync.Once
	closeOnce sync.Once
	lines     chan lineResult
	done      chan struct{}
}

// NewLineSource reads events from r.
func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{
		r:     r,
		lines: make(chan lineResult),
		done:  make(chan struct{}),
	}
}

// OpenLineSource reads events from the file or FIFO at path.
func OpenLineSource(path string) (*LineSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lines source: %w", err)
	}
	s := NewLineSource(file)
	s.closer = file
	return s, nil
}

// Next returns the next non-blank line.
func (s *LineSource) Next(ctx context.Context) (string, error) {
	s.startOnce.Do(func() { go s.read() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-s.lines:
		if !ok {
			return "", Fatal(ErrExhausted)
		}
		return res.text, res.err
	}
}

// Close releases the reader goroutine and the underlying file, if any.
func (s *LineSource) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.closer != nil {
			err = s.closer.Close()
		}
	})
	return err
}

// read performs one blocking read at a time and hands each line over only
// when Next asks for it.
func (s *LineSource) read() {
	defer close(s.lines)

	scanner := bufio.NewScanner(s.r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !s.send(lineResult{text: line}) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		s.send(lineResult{err: Fatal(fmt.Errorf("read lines: %w", err))})
	}
}

func (s *LineSource) send(res lineResult) bool {
	select {
	case s.lines <- res:
		return true
	case <-s.done:
		return false
	}
}
