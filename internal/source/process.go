package source

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

const defaultPollInterval = 500 * time.Millisecond

// ProcessInfo is what ProcessSource needs to know about a new process.
type ProcessInfo struct {
	PID     int32
	Name    string
	Created int64 // milliseconds since epoch, zero when unknown
}

// ProcessLister returns the PIDs currently in the process table.
type ProcessLister func(ctx context.Context) ([]int32, error)

// ProcessInspector resolves details for a single PID.
type ProcessInspector func(ctx context.Context, pid int32) (ProcessInfo, error)

// ProcessSource reports processes created after the first poll. It diffs
// successive snapshots of the process table, so a process that starts and
// exits between two polls is not seen.
type ProcessSource struct {
	interval time.Duration
	list     ProcessLister
	inspect  ProcessInspector

	primed  bool
	seen    map[int32]struct{}
	pending []string
}

// ProcessOption customises a ProcessSource.
type ProcessOption func(*ProcessSource)

// WithProcessLister replaces the gopsutil PID listing.
func WithProcessLister(fn ProcessLister) ProcessOption {
	return func(s *ProcessSource) { s.list = fn }
}

// WithProcessInspector replaces the gopsutil per-PID lookup.
func WithProcessInspector(fn ProcessInspector) ProcessOption {
	return func(s *ProcessSource) { s.inspect = fn }
}

// NewProcessSource builds a process-creation source polling at interval.
func NewProcessSource(interval time.Duration, opts ...ProcessOption) *ProcessSource {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	s := &ProcessSource{
		interval: interval,
		list:     process.PidsWithContext,
		inspect:  inspectProcess,
		seen:     make(map[int32]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the name of the next newly created process.
func (s *ProcessSource) Next(ctx context.Context) (string, error) {
	if !s.primed {
		if err := s.prime(ctx); err != nil {
			return "", err
		}
	}

	for len(s.pending) == 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.interval):
		}
		if err := s.poll(ctx); err != nil {
			return "", err
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := s.pending[0]
	s.pending = s.pending[1:]
	return name, nil
}

func (s *ProcessSource) prime(ctx context.Context) error {
	pids, err := s.list(ctx)
	if err != nil {
		return Transient(fmt.Errorf("list processes: %w", err))
	}
	for _, pid := range pids {
		s.seen[pid] = struct{}{}
	}
	s.primed = true
	return nil
}

func (s *ProcessSource) poll(ctx context.Context) error {
	pids, err := s.list(ctx)
	if err != nil {
		return Transient(fmt.Errorf("list processes: %w", err))
	}

	current := make(map[int32]struct{}, len(pids))
	var fresh []ProcessInfo
	for _, pid := range pids {
		current[pid] = struct{}{}
		if _, ok := s.seen[pid]; ok {
			continue
		}
		info, err := s.inspect(ctx, pid)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil || info.Name == "" {
			// Gone before we could look at it; still report the creation.
			info = ProcessInfo{PID: pid, Name: fmt.Sprintf("pid %d", pid)}
		}
		info.PID = pid
		fresh = append(fresh, info)
	}
	// Forget exited PIDs so a recycled PID is reported again.
	s.seen = current

	slices.SortStableFunc(fresh, func(a, b ProcessInfo) int {
		if c := cmp.Compare(a.Created, b.Created); c != 0 {
			return c
		}
		return cmp.Compare(a.PID, b.PID)
	})
	for _, info := range fresh {
		s.pending = append(s.pending, info.Name)
	}
	return nil
}

func inspectProcess(ctx context.Context, pid int32) (ProcessInfo, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return ProcessInfo{}, err
	}
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return ProcessInfo{}, err
	}
	created, _ := p.CreateTimeWithContext(ctx)
	return ProcessInfo{PID: pid, Name: name, Created: created}, nil
}
