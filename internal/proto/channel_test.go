package proto

import (
	"strings"
	"testing"
	"time"

	"github.com/rileyhilliard/rfdash/internal/errors"
	"github.com/rileyhilliard/rfdash/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedTable() *ChannelTable {
	tbl := NewChannelTable()
	tbl.now = func() time.Time { return time.Unix(1700000000, 0) }
	return tbl
}

func TestChannelApplyFullRecord(t *testing.T) {
	tbl := fixedTable()

	err := tbl.Apply(strings.Fields("6 2500000 1200 15 900 1536 512 3 1 -40 0 -95 0"))
	require.NoError(t, err)

	require.Contains(t, tbl.Channels, 6)
	assert.Equal(t, telemetry.ChannelStat{
		Channel:        6,
		LastUpdated:    time.Unix(1700000000, 0),
		TimeOnUsec:     2500000,
		Packets:        1200,
		PacketsDelta:   15,
		UsecUsed:       900,
		Bytes:          1536,
		BytesDelta:     512,
		Networks:       3,
		ActiveNetworks: 1,
		SigDBM:         -40,
		NoiseDBM:       -95,
	}, *tbl.Channels[6])
}

func TestChannelApplyZeroKeepsDeltas(t *testing.T) {
	tbl := fixedTable()
	require.NoError(t, tbl.Apply(strings.Fields("1 100 10 5 0 2048 1024 0 0 0 0 0 0")))
	require.NoError(t, tbl.Apply(strings.Fields("1 0 12 0 0 4096 0 0 0 0 0 0 0")))

	ci := tbl.Channels[1]
	assert.Equal(t, int64(100), ci.TimeOnUsec)
	assert.Equal(t, int64(12), ci.Packets)
	assert.Equal(t, int64(5), ci.PacketsDelta)
	assert.Equal(t, int64(4096), ci.Bytes)
	assert.Equal(t, int64(1024), ci.BytesDelta)
}

func TestChannelApplyShortRecordIgnored(t *testing.T) {
	tbl := fixedTable()

	assert.NoError(t, tbl.Apply(strings.Fields("6 1 2 3")))
	assert.Equal(t, 0, tbl.Len())
}

func TestChannelApplyBadChannelCreatesNothing(t *testing.T) {
	tbl := fixedTable()

	err := tbl.Apply(strings.Fields("x 1 2 3 4 5 6 7 8 9 10 11 12"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrProto))
	assert.Equal(t, 0, tbl.Len())
}

func TestChannelApplyPartial(t *testing.T) {
	tbl := fixedTable()

	err := tbl.Apply(strings.Fields("11 100 50 5 0 abc 0 0 0 0 0 0 0"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 5")

	ci := tbl.Channels[11]
	require.NotNil(t, ci, "channel is created before the bad field")
	assert.Equal(t, int64(100), ci.TimeOnUsec)
	assert.Equal(t, int64(50), ci.Packets)
	assert.Equal(t, int64(5), ci.PacketsDelta)
	assert.Equal(t, int64(0), ci.Bytes, "fields after the failure are untouched")
}

func TestChannelApplyStrictIntegers(t *testing.T) {
	tbl := fixedTable()

	err := tbl.Apply(strings.Fields("3 12abc 0 0 0 0 0 0 0 0 0 0 0"))
	require.Error(t, err)
	assert.Equal(t, int64(0), tbl.Channels[3].TimeOnUsec)
}

func TestChannelTableFeedsAggregate(t *testing.T) {
	tbl := fixedTable()
	require.NoError(t, tbl.Apply(strings.Fields("1 0 10 0 0 0 0 1 0 0 60 0 5")))
	require.NoError(t, tbl.Apply(strings.Fields("6 0 10 0 0 0 0 1 0 -40 0 0 0")))

	snap := telemetry.Aggregate(tbl.Channels)
	assert.Equal(t, []int{60, -40}, snap.Signal)
	assert.Equal(t, []int{5, telemetry.NoSignal}, snap.Noise)

	tbl.Reset()
	assert.Equal(t, 0, tbl.Len())
}
