package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rileyhilliard/rfdash/internal/errors"
)

// wsServer accepts one websocket, records the first want messages from the
// client, sends replies, then closes normally.
func wsServer(t *testing.T, want int, replies ...string) (*httptest.Server, <-chan []string) {
	t.Helper()
	received := make(chan []string, 1)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var got []string
		for i := 0; i < want; i++ {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			got = append(got, string(msg))
		}
		received <- got

		for _, reply := range replies {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
				return
			}
		}
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		// Wait for the client's close reply before dropping the connection.
		_, _, _ = conn.ReadMessage()
	}))
	t.Cleanup(srv.Close)
	return srv, received
}

func TestWS_ReadsMessagesAsLines(t *testing.T) {
	srv, received := wsServer(t, 2,
		"*ALERT: 1 2 A B C",
		"*CHANNEL: 1 0 0 0 0 0 0 0 0 0 0 0 0\n*CHANNEL: 6 0 0 0 0 0 0 0 0 0 0 0 0\n",
	)

	src := &WS{URL: srv.URL, Enable: []string{"CHANNEL", "ALERT"}, Timeout: time.Second}
	var lines []string
	err := ReadAll(context.Background(), src, func(line string) {
		lines = append(lines, line)
	})
	require.NoError(t, err)

	got := <-received
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "ENABLE CHANNEL")
	assert.Contains(t, got[1], "ENABLE ALERT")
	assert.Equal(t, []string{
		"*ALERT: 1 2 A B C",
		"*CHANNEL: 1 0 0 0 0 0 0 0 0 0 0 0 0",
		"*CHANNEL: 6 0 0 0 0 0 0 0 0 0 0 0 0",
	}, lines)
}

func TestWS_CancelEndsFeed(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hold := make(chan struct{})
	connected := make(chan struct{})
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		close(connected)
		<-hold
	}))
	defer srv.Close()
	defer close(hold)

	ctx, cancel := context.WithCancel(context.Background())
	feed := Start(ctx, &WS{URL: srv.URL, Timeout: time.Second}, nil)

	<-connected
	cancel()
	select {
	case _, ok := <-feed.Lines():
		assert.False(t, ok, "no lines expected")
	case <-time.After(5 * time.Second):
		t.Fatal("feed did not end after cancel")
	}
}

func TestWS_ConnectRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := (&WS{URL: url, Timeout: time.Second}).Open(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSource))
}

func TestWebsocketURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"http://sensor:2501/eventbus", "ws://sensor:2501/eventbus", false},
		{"https://sensor/eventbus", "wss://sensor/eventbus", false},
		{"ws://sensor:2501", "ws://sensor:2501", false},
		{"ftp://sensor", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := websocketURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
