package source

import (
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/rileyhilliard/rfdash/internal/errors"
	"github.com/rileyhilliard/rfdash/internal/proto"
)

// TCP connects to a capture server and asks it to send the records listed
// in Enable.
type TCP struct {
	Address string
	Enable  []string
	Timeout time.Duration
}

// fieldLists maps each record type to the fields the decoders expect.
var fieldLists = map[string][]string{
	"CHANNEL": proto.ChannelFieldNames,
	"NETWORK": proto.NetworkFieldNames,
	"CLIENT":  proto.ClientFieldNames,
	"ALERT":   proto.AlertFieldNames,
}

// EnableCommands renders the server commands that subscribe to records.
// Command ids start at 1.
func EnableCommands(records []string) []string {
	cmds := make([]string, 0, len(records))
	for _, rec := range records {
		rec = strings.ToUpper(rec)
		fields, ok := fieldLists[rec]
		if !ok {
			continue
		}
		cmds = append(cmds, fmt.Sprintf("!%d ENABLE %s %s", len(cmds)+1, rec, strings.Join(fields, ",")))
	}
	return cmds
}

func (t *TCP) Open(ctx context.Context) (io.ReadCloser, error) {
	dialer := net.Dialer{Timeout: t.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", t.Address)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSource,
			"Cannot connect to capture server at "+t.Address,
			"Check that the server is running and source.address is right")
	}

	for _, cmd := range EnableCommands(t.Enable) {
		if _, err := io.WriteString(conn, cmd+"\n"); err != nil {
			conn.Close()
			return nil, errors.WrapWithCode(err, errors.ErrSource,
				"Capture server closed the connection during setup", "")
		}
	}

	c := &tcpConn{Conn: conn, done: make(chan struct{})}
	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-c.done:
		}
	}()
	return c, nil
}

// tcpConn unblocks a pending read when the context ends.
type tcpConn struct {
	net.Conn
	once sync.Once
	done chan struct{}
}

func (c *tcpConn) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		err = c.Conn.Close()
	})
	return err
}

func (t *TCP) String() string { return "tcp:" + t.Address }
