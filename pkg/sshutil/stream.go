package sshutil

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rileyhilliard/rfdash/internal/errors"
	"golang.org/x/crypto/ssh"
)

// Stream starts cmd on the remote host and returns its stdout. Closing the
// reader, or cancelling ctx, ends the session. Remote stderr is discarded.
func (c *Client) Stream(ctx context.Context, cmd string) (io.ReadCloser, error) {
	session, err := c.Client.NewSession()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to create SSH session",
			"Connection may have been closed. Try reconnecting.")
	}

	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		return nil, errors.WrapWithCode(err, errors.ErrSSH, "Failed to attach to remote stdout", "")
	}

	if err := session.Start(cmd); err != nil {
		session.Close()
		return nil, errors.WrapWithCode(err, errors.ErrSource,
			fmt.Sprintf("Failed to start remote command: %s", cmd),
			"Check the command exists on the remote host.")
	}

	s := &remoteStream{Reader: stdout, session: session, done: make(chan struct{})}
	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()
	return s, nil
}

// remoteStream ties a session's stdout to the session's lifetime.
type remoteStream struct {
	io.Reader
	session *ssh.Session
	once    sync.Once
	done    chan struct{}
}

func (s *remoteStream) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		_ = s.session.Signal(ssh.SIGTERM)
		err = s.session.Close()
		if err == io.EOF {
			err = nil
		}
	})
	return err
}
