package tracker

import (
	"strconv"
	"testing"

	"github.com/rileyhilliard/rfdash/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func netFields(bssid string, last int64, packets int64) []string {
	return []string{
		bssid, "0", "net-" + bssid, "Acme", "6", "1700000000", strconv.FormatInt(last, 10),
		"-50", "-95", "0", "0", "-40", "-90", "0", "0",
		"0", strconv.FormatInt(packets, 10), "0", "0", "2", "2048",
	}
}

func cliFields(mac, bssid string, last int64) []string {
	return []string{
		mac, bssid, "4", "Widget", "6", "1700000000", strconv.FormatInt(last, 10),
		"-256", "0", "33", "4", "-256", "0", "40", "6",
		"10", "20", "0", "0", "1", "100",
	}
}

func TestStoreApplyNetwork(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.SelectedNetwork())

	require.NoError(t, s.ApplyNetwork(netFields("aa", 100, 5)))
	require.NoError(t, s.ApplyNetwork(netFields("bb", 100, 5)))

	sel := s.SelectedNetwork()
	require.NotNil(t, sel)
	assert.Equal(t, "aa", sel.Key(), "first network becomes the selection")
	assert.Len(t, s.Networks(), 2)
}

func TestStoreUpdateReplacesSnapshot(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.ApplyNetwork(netFields("aa", 100, 5)))
	first, _ := s.Network("aa")

	require.NoError(t, s.ApplyNetwork(netFields("aa", 101, 9)))
	second, _ := s.Network("aa")

	assert.NotSame(t, first, second)
	assert.Equal(t, int64(100), first.LastTime, "old snapshot is untouched")
	assert.Equal(t, int64(101), second.LastModified())
	assert.Len(t, s.Networks(), 1)
}

func TestStoreRejectsBadRecord(t *testing.T) {
	s := NewStore()
	fields := netFields("aa", 100, 5)
	fields[6] = "soon"

	assert.Error(t, s.ApplyNetwork(fields))
	assert.Empty(t, s.Networks())
	assert.Nil(t, s.SelectedNetwork())
}

func TestStoreNetworkCursorClamps(t *testing.T) {
	s := NewStore()
	for _, k := range []string{"aa", "bb", "cc"} {
		require.NoError(t, s.ApplyNetwork(netFields(k, 1, 0)))
	}

	s.PrevNetwork()
	assert.Equal(t, "aa", s.SelectedNetwork().Key())

	s.NextNetwork()
	s.NextNetwork()
	s.NextNetwork()
	assert.Equal(t, "cc", s.SelectedNetwork().Key())

	s.PrevNetwork()
	assert.Equal(t, "bb", s.SelectedNetwork().Key())

	assert.True(t, s.SelectNetwork("aa"))
	assert.False(t, s.SelectNetwork("zz"))
	assert.Equal(t, "aa", s.SelectedNetwork().Key())
}

func TestStoreClientsFollowSelectedNetwork(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.ApplyNetwork(netFields("aa", 1, 0)))
	require.NoError(t, s.ApplyNetwork(netFields("bb", 1, 0)))
	require.NoError(t, s.ApplyClient(cliFields("c1", "aa", 1)))
	require.NoError(t, s.ApplyClient(cliFields("c2", "bb", 1)))
	require.NoError(t, s.ApplyClient(cliFields("c3", "aa", 1)))

	assert.Len(t, s.Clients(), 2)
	assert.Equal(t, "c1", s.SelectedClient().Key())

	s.NextClient()
	assert.Equal(t, "c3", s.SelectedClient().Key())

	s.NextNetwork()
	assert.Equal(t, "c2", s.SelectedClient().Key(), "selection falls back to the first visible client")

	s.ClearSelection()
	assert.Nil(t, s.SelectedNetwork())
	assert.Len(t, s.Clients(), 3)
}

func TestSelectedEntityIsUntypedNil(t *testing.T) {
	s := NewStore()
	var tr telemetry.Tracker

	assert.Equal(t, telemetry.NoOp, tr.Observe(s.SelectedNetwork()))
	assert.Equal(t, telemetry.NoOp, tr.Observe(s.SelectedClient()))
}

func TestGraphSample(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.ApplyNetwork(netFields("aa", 1, 70)))
	require.NoError(t, s.ApplyClient(cliFields("c1", "aa", 1)))

	n, _ := s.Network("aa")
	assert.Equal(t, telemetry.Sample{Signal: -50, Packets: 70, Retries: 2}, GraphSample(n))

	c := s.SelectedClient()
	assert.Equal(t, telemetry.Sample{Signal: 33, Packets: 30, Retries: 1}, GraphSample(c),
		"rssi is graphed when dBm has no data")
}
