package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rfdash/internal/logger"
	"github.com/rileyhilliard/rfdash/internal/source"
	"github.com/rileyhilliard/rfdash/internal/telemetry"
)

func TestNewModel(t *testing.T) {
	m := NewModel(Options{})

	assert.Equal(t, DefaultInterval, m.interval)
	assert.Equal(t, PanelNetwork, m.ActivePanel())
	assert.NotNil(t, m.prefs)
	assert.Nil(t, m.waitForLine(), "no feed means nothing to wait for")
	assert.Equal(t, telemetry.DefaultCapacity, m.network.refresher.Series().Signal.Capacity())
}

func TestNewModel_History(t *testing.T) {
	m := NewModel(Options{History: 10, Interval: 250 * time.Millisecond})

	assert.Equal(t, 250*time.Millisecond, m.interval)
	assert.Equal(t, 10, m.client.refresher.Series().Packets.Capacity())
}

func TestLinesRouteToStores(t *testing.T) {
	m := NewModel(Options{})
	m = feedLines(m,
		networkLine("aa", 100, 5),
		clientLine("c1", "aa", 100),
		channelLine(6, -40),
		alertLine(1700000000, "DEAUTHFLOOD", "aa", "Deauth flood detected"),
		"not a record",
	)

	assert.Equal(t, 5, m.lines)
	assert.Equal(t, 4, m.dispatcher.Handled)
	assert.Len(t, m.store.Networks(), 1)
	assert.Len(t, m.store.Clients(), 1)
	assert.Equal(t, 1, m.channels.Len())
	assert.Equal(t, 1, m.alerts.log.Len())
}

func TestBadRecordIsLoggedNotFatal(t *testing.T) {
	log := logger.NewBufferLogger()
	m := NewModel(Options{Log: log})

	bad := strings.Replace(networkLine("aa", 100, 5), "1700000000", "yesterday", 1)
	m = feedLines(m, bad)

	assert.Equal(t, 1, m.dispatcher.Failed)
	assert.Empty(t, m.store.Networks())
	assert.True(t, log.HasLevel("warn"))
}

func TestTickFeedsNetworkSeries(t *testing.T) {
	m := NewModel(Options{})
	m = feedLines(m, networkLine("aa", 100, 5))
	m = tick(m)

	series := m.network.refresher.Series()
	assert.Equal(t, telemetry.ResetAndUpdate, m.network.last)
	assert.Equal(t, -50, series.Signal.Last())
	assert.Equal(t, 5, series.Packets.Last(), "first packet sample is the raw counter")
	assert.Equal(t, 2, series.Retries.Last())

	m = tick(m)
	assert.Equal(t, telemetry.NoOp, m.network.last, "unchanged network is a no-op")

	m = feedLines(m, networkLine("aa", 101, 9))
	m = tick(m)
	assert.Equal(t, telemetry.UpdateOnly, m.network.last)
	assert.Equal(t, 4, series.Packets.Last())
}

func TestTickRebuildsRowsOnlyOnChange(t *testing.T) {
	m := NewModel(Options{})
	m = tick(m)
	require.Len(t, m.network.rows, 1)
	assert.Equal(t, "No network selected", m.network.rows[0].Value)

	m = feedLines(m, networkLine("aa", 100, 5))
	m = tick(m)
	rows := m.network.rows
	assert.Greater(t, len(rows), 1)

	m = tick(m)
	assert.Same(t, &rows[0], &m.network.rows[0], "rows kept on no-op tick")
}

func TestTickClientFallsBackToRSSI(t *testing.T) {
	m := NewModel(Options{})
	m = feedLines(m, networkLine("aa", 100, 5), clientLine("c1", "aa", 100))
	m = tick(m)

	series := m.client.refresher.Series()
	assert.Equal(t, 33, series.Signal.Last(), "dBm has no data so RSSI is graphed")
	assert.Equal(t, 30, series.Packets.Last())
}

func TestTickAggregatesChannels(t *testing.T) {
	m := NewModel(Options{})
	m = feedLines(m, channelLine(11, -60), channelLine(1, -40))
	m = tick(m)

	snap := m.channel.snap
	require.Equal(t, 2, snap.Len())
	assert.Equal(t, []string{"1", "11"}, snap.Labels)
	assert.Equal(t, []int{-40, -60}, snap.Signal)
	assert.True(t, snap.Aligned())
}

func TestTickSortsAlerts(t *testing.T) {
	m := NewModel(Options{})
	m = feedLines(m,
		alertLine(100, "B", "aa", "first"),
		alertLine(300, "A", "bb", "second"),
		alertLine(200, "C", "cc", "third"),
	)
	m = tick(m)

	require.Len(t, m.alerts.view, 3)
	assert.Equal(t, "second", m.alerts.view[0].Text, "latest first by default")
	assert.Equal(t, "first", m.alerts.view[2].Text)
}

func TestFeedDone(t *testing.T) {
	log := logger.NewBufferLogger()
	m := NewModel(Options{Log: log})

	next, cmd := m.Update(feedDoneMsg{err: errors.New("connection reset")})
	m = next.(Model)

	assert.Nil(t, cmd)
	assert.True(t, m.feedDone)
	assert.Contains(t, m.status, "connection reset")
	assert.True(t, log.HasLevel("warn"))

	next, _ = m.Update(feedDoneMsg{})
	assert.Equal(t, "feed ended", next.(Model).status)
}

func TestWaitForLineReadsFeed(t *testing.T) {
	feed := source.Start(context.Background(), &source.Stdin{R: strings.NewReader("*CHANNEL: 6\n")}, nil)
	m := NewModel(Options{Feed: feed})

	msg := m.waitForLine()()
	assert.Equal(t, lineMsg("*CHANNEL: 6"), msg)

	msg = m.waitForLine()()
	assert.Equal(t, feedDoneMsg{}, msg)
}

func TestTickReschedules(t *testing.T) {
	m := NewModel(Options{})
	_, cmd := m.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd)
}

func TestPanelStringAndNext(t *testing.T) {
	assert.Equal(t, "Network", PanelNetwork.String())
	assert.Equal(t, "Alerts", PanelAlerts.String())
	assert.Equal(t, "unknown", Panel(9).String())
	assert.Equal(t, PanelNetwork, PanelAlerts.Next())
}
