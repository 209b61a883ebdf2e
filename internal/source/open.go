package source

import (
	"fmt"
	"io"
	"time"
)

// Options selects and configures a backend.
type Options struct {
	Kind         Kind
	PollInterval time.Duration
	Dir          string
	LinesPath    string
}

// Open builds the backend named by opts.Kind.
func Open(opts Options) (Source, error) {
	switch opts.Kind {
	case KindProcess, "":
		return NewProcessSource(opts.PollInterval), nil
	case KindDir:
		if opts.Dir == "" {
			return nil, fmt.Errorf("dir source requires a directory")
		}
		return NewDirSource(opts.Dir)
	case KindLines:
		if opts.LinesPath == "" {
			return nil, fmt.Errorf("lines source requires a path")
		}
		return OpenLineSource(opts.LinesPath)
	default:
		return nil, fmt.Errorf("unknown source %q", opts.Kind)
	}
}

// Close closes src when the backend holds resources.
func Close(src Source) error {
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
