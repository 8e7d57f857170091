package source

import (
	"context"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rileyhilliard/rfdash/internal/errors"
)

// WS reads the feed from a websocket endpoint. Each text message carries
// one or more protocol lines. Enable commands go out as text messages.
type WS struct {
	URL     string
	Enable  []string
	Timeout time.Duration
}

func (w *WS) Open(ctx context.Context) (io.ReadCloser, error) {
	target, err := websocketURL(w.URL)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid websocket URL: "+w.URL,
			"Use something like ws://host:2501/eventbus")
	}

	dialer := websocket.Dialer{HandshakeTimeout: w.Timeout}
	conn, _, err := dialer.DialContext(ctx, target, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSource,
			"Cannot connect to capture server at "+target,
			"Check that the server is running and source.url is right")
	}

	for _, cmd := range EnableCommands(w.Enable) {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(cmd)); err != nil {
			conn.Close()
			return nil, errors.WrapWithCode(err, errors.ErrSource,
				"Capture server closed the connection during setup", "")
		}
	}

	pr, pw := io.Pipe()
	f := &wsFeed{PipeReader: pr, conn: conn, done: make(chan struct{})}
	go f.pump(pw)
	go func() {
		select {
		case <-ctx.Done():
			f.Close()
		case <-f.done:
		}
	}()
	return f, nil
}

func (w *WS) String() string { return "ws:" + w.URL }

// websocketURL maps http and https to ws and wss.
func websocketURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", errors.New(errors.ErrConfig, "unsupported scheme '"+u.Scheme+"'", "")
	}
	return u.String(), nil
}

// wsFeed turns websocket messages into a line stream.
type wsFeed struct {
	*io.PipeReader
	conn *websocket.Conn
	once sync.Once
	done chan struct{}
}

// pump copies messages into the pipe, newline-terminated. A normal close
// from the server ends the stream with EOF.
func (f *wsFeed) pump(pw *io.PipeWriter) {
	for {
		_, msg, err := f.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				err = nil
			}
			pw.CloseWithError(err)
			return
		}
		if len(msg) == 0 {
			continue
		}
		if msg[len(msg)-1] != '\n' {
			msg = append(msg, '\n')
		}
		if _, err := pw.Write(msg); err != nil {
			return
		}
	}
}

func (f *wsFeed) Close() error {
	var err error
	f.once.Do(func() {
		close(f.done)
		f.PipeReader.Close()
		err = f.conn.Close()
	})
	return err
}
