package tracker

import (
	"strconv"
	"testing"
	"time"

	"github.com/rileyhilliard/rfdash/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertLogApply(t *testing.T) {
	l := NewAlertLog(0)

	require.NoError(t, l.Apply([]string{"1700000000", "0", "DEAUTHFLOOD", "aa", "flood"}))
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, "flood", l.Alerts()[0].Text)

	assert.Error(t, l.Apply([]string{"x", "0", "A", "B", "C"}))
	assert.Equal(t, 1, l.Len())
}

func TestAlertLogBacklog(t *testing.T) {
	l := NewAlertLog(3)
	for i := 0; i < 5; i++ {
		l.Append(&telemetry.Alert{Sec: int64(i), Text: strconv.Itoa(i)})
	}

	require.Equal(t, 3, l.Len())
	assert.Equal(t, "2", l.Alerts()[0].Text)
	assert.Equal(t, "4", l.Alerts()[2].Text)
}

func TestAlertLogClearFeedsSorter(t *testing.T) {
	l := NewAlertLog(10)
	l.Append(&telemetry.Alert{Sec: 1, Text: "a"})

	var s telemetry.AlertSorter
	_, changed := s.Refresh(l.Alerts(), telemetry.SortLatest)
	require.True(t, changed)

	l.Clear()
	view, changed := s.Refresh(l.Alerts(), telemetry.SortLatest)
	assert.True(t, changed)
	assert.Empty(t, view)
}

func TestAlertRow(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 5, 7, 0, time.Local)
	a := &telemetry.Alert{Sec: ts.Unix(), Category: "NETSTUMBLER", Origin: "aa", Text: "probe"}

	assert.Equal(t, []string{"09:05:07", "NETSTUMBLER", "aa", "probe"}, AlertRow(a))
	assert.Len(t, AlertColumns, len(AlertRow(a)))
}
