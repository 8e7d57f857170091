package proto

import (
	"errors"
	"testing"

	"github.com/rileyhilliard/rfdash/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRoutesByType(t *testing.T) {
	d := NewDispatcher(nil)

	var got [][]string
	d.Register("TIME", 1, func(fields []string) error {
		got = append(got, fields)
		return nil
	})

	require.NoError(t, d.Dispatch("*TIME: 1700000000"))
	require.NoError(t, d.Dispatch("*OTHER: 1"))
	require.NoError(t, d.Dispatch("not a record"))

	assert.Equal(t, [][]string{{"1700000000"}}, got)
	assert.Equal(t, 1, d.Handled)
	assert.ElementsMatch(t, []string{"TIME"}, d.Types())
}

func TestDispatcherDropsShortRecords(t *testing.T) {
	log := logger.NewBufferLogger()
	d := NewDispatcher(log)

	called := false
	d.Register("CHANNEL", ChannelFields, func([]string) error {
		called = true
		return nil
	})

	require.NoError(t, d.Dispatch("*CHANNEL: 6 1 2"))
	assert.False(t, called)
	assert.Equal(t, 1, d.Short)
	assert.True(t, log.HasLevel("debug"))
}

func TestDispatcherReportsHandlerErrors(t *testing.T) {
	log := logger.NewBufferLogger()
	d := NewDispatcher(log)

	boom := errors.New("boom")
	d.Register("ALERT", 1, func([]string) error { return boom })

	err := d.Dispatch("*ALERT: x")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, d.Failed)
	assert.True(t, log.HasLevel("warn"))
}
