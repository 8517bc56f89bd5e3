package sales

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Source supplies the raw byte stream of a sales extract. Every Load opens
// the source afresh and closes what it opened.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string

	// Open returns the stream to parse.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads the extract from the local filesystem. A missing file
// surfaces as *SourceNotFoundError.
func FileSource(path string) Source { return fileSource(path) }

type fileSource string

func (s fileSource) Name() string { return string(s) }

func (s fileSource) Open(_ context.Context) (io.ReadCloser, error) {
	f, err := os.Open(string(s))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceNotFoundError{Name: string(s), Err: err}
		}
		return nil, fmt.Errorf("opening sales source %q: %w", string(s), err)
	}
	return f, nil
}

// ReaderSource wraps an in-memory reader, mainly for tests and embedded
// fixtures. The reader is consumed by the first Open.
func ReaderSource(name string, r io.Reader) Source {
	return &readerSource{name: name, r: r}
}

type readerSource struct {
	name string
	r    io.Reader
}

func (s *readerSource) Name() string { return s.name }

func (s *readerSource) Open(_ context.Context) (io.ReadCloser, error) {
	if s.r == nil {
		return nil, fmt.Errorf("source %q already consumed", s.name)
	}
	r := s.r
	s.r = nil
	return io.NopCloser(r), nil
}
