package source

import (
	"bufio"
	"context"
	"io"

	"github.com/rileyhilliard/rfdash/internal/errors"
	"github.com/rileyhilliard/rfdash/internal/logger"
)

// MaxLineSize bounds a single protocol line.
const MaxLineSize = 1 << 20

// Scan calls fn for each line of r until EOF, a read error, or ctx is done.
func Scan(ctx context.Context, r io.Reader, fn func(line string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), MaxLineSize)
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		fn(sc.Text())
	}
	if err := sc.Err(); err != nil && ctx.Err() == nil {
		return errors.WrapWithCode(err, errors.ErrSource, "Feed read failed", "")
	}
	return nil
}

// ReadAll opens src and feeds every line to fn until the feed ends.
func ReadAll(ctx context.Context, src Source, fn func(line string)) error {
	rc, err := src.Open(ctx)
	if err != nil {
		return err
	}
	defer rc.Close()
	return Scan(ctx, rc, fn)
}

// Feed reads a source on its own goroutine and hands lines over a channel,
// so the consumer can keep all state on one goroutine.
type Feed struct {
	lines chan string
	err   error
	name  string
}

// Start opens src in the background. Lines is closed when the feed ends;
// Err is valid after that.
func Start(ctx context.Context, src Source, log logger.Logger) *Feed {
	if log == nil {
		log = logger.Noop()
	}
	f := &Feed{lines: make(chan string, 256), name: src.String()}

	go func() {
		defer close(f.lines)

		log.Debug("opening %s", f.name)
		rc, err := src.Open(ctx)
		if err != nil {
			f.err = err
			return
		}
		defer rc.Close()

		f.err = Scan(ctx, rc, func(line string) {
			select {
			case f.lines <- line:
			case <-ctx.Done():
			}
		})
		log.Debug("%s ended", f.name)
	}()

	return f
}

// Lines delivers the feed. It is closed when the feed ends.
func (f *Feed) Lines() <-chan string {
	return f.lines
}

// Err reports why the feed ended. Only read it after Lines is closed.
func (f *Feed) Err() error {
	return f.err
}

// Name identifies the source.
func (f *Feed) Name() string {
	return f.name
}
