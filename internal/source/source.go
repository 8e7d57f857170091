// Package source opens the protocol feed: a capture server over TCP or a
// websocket, a recorded file, a command on a remote host over SSH, or stdin.
package source

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rileyhilliard/rfdash/internal/config"
	"github.com/rileyhilliard/rfdash/internal/errors"
	"github.com/rileyhilliard/rfdash/pkg/sshutil"
)

// Source is anything that can produce protocol lines.
type Source interface {
	// Open starts the feed. The reader ends at EOF or when ctx is done.
	Open(ctx context.Context) (io.ReadCloser, error)
	// String names the source for status lines and logs.
	String() string
}

// New builds the source described by cfg.
func New(cfg config.SourceConfig) (Source, error) {
	switch cfg.Kind {
	case config.SourceTCP:
		return &TCP{Address: cfg.Address, Enable: cfg.Enable, Timeout: cfg.Timeout}, nil
	case config.SourceWS:
		return &WS{URL: cfg.URL, Enable: cfg.Enable, Timeout: cfg.Timeout}, nil
	case config.SourceFile:
		return &File{Path: cfg.Path}, nil
	case config.SourceSSH:
		return &SSH{Host: cfg.Host, Command: cfg.Command, Timeout: cfg.Timeout}, nil
	case config.SourceStdin:
		return &Stdin{}, nil
	default:
		return nil, errors.New(errors.ErrConfig,
			"Unknown source kind: "+cfg.Kind,
			"Use tcp, ws, file, ssh, or stdin")
	}
}

// File replays a recorded feed.
type File struct {
	Path string
}

func (f *File) Open(ctx context.Context) (io.ReadCloser, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSource,
			"Cannot open feed file: "+f.Path,
			"Check the path in source.path")
	}
	return fh, nil
}

func (f *File) String() string { return "file:" + f.Path }

// Stdin reads the feed from standard input, or from R when set.
type Stdin struct {
	R io.Reader
}

func (s *Stdin) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.R != nil {
		return io.NopCloser(s.R), nil
	}
	return io.NopCloser(os.Stdin), nil
}

func (s *Stdin) String() string { return "stdin" }

// SSH runs Command on Host and reads the feed from its stdout.
type SSH struct {
	Host    string
	Command string
	Timeout time.Duration
}

func (s *SSH) Open(ctx context.Context) (io.ReadCloser, error) {
	client, err := sshutil.Dial(ctx, s.Host, s.Timeout)
	if err != nil {
		return nil, err
	}

	stream, err := client.Stream(ctx, s.Command)
	if err != nil {
		client.Close()
		return nil, err
	}
	return &sshFeed{ReadCloser: stream, client: client}, nil
}

func (s *SSH) String() string {
	return "ssh:" + s.Host
}

// sshFeed closes the connection along with the command's stream.
type sshFeed struct {
	io.ReadCloser
	client *sshutil.Client
}

func (f *sshFeed) Close() error {
	err := f.ReadCloser.Close()
	if cerr := f.client.Close(); err == nil {
		err = cerr
	}
	return err
}
