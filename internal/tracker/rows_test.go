package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowMap(rows []Row) map[string]string {
	m := make(map[string]string, len(rows))
	for _, r := range rows {
		m[r.Field] = r.Value
	}
	return m
}

func TestNetworkRows(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.ApplyNetwork(netFields("aa", 1700000100, 70)))
	n, _ := s.Network("aa")

	rows := rowMap(NetworkRows(n))

	assert.Equal(t, "net-aa", rows["Name"])
	assert.Equal(t, "aa", rows["BSSID"])
	assert.Equal(t, "Access Point (Managed/Infrastructure)", rows["Type"])
	assert.Equal(t, "6", rows["Channel"])
	assert.Equal(t, "-50 (max -40)", rows["Sig dBm"])
	assert.Equal(t, "-95 (max -90)", rows["Noise dBm"])
	assert.NotContains(t, rows, "Sig RSSI")
	assert.Equal(t, "70", rows["Packets"])
	assert.Equal(t, "2/sec", rows["Retries"])
	assert.Equal(t, "2K", rows["Bytes"])
	assert.Equal(t, FormatSeen(1700000100), rows["Last Seen"])
}

func TestNetworkRowsNoChannelNoSignal(t *testing.T) {
	fields := netFields("aa", 1, 0)
	fields[2] = ""
	fields[4] = "0"
	fields[7] = "0"
	s := NewStore()
	require.NoError(t, s.ApplyNetwork(fields))
	n, _ := s.Network("aa")

	rows := rowMap(NetworkRows(n))
	assert.Equal(t, "<Hidden SSID>", rows["Name"])
	assert.Equal(t, "No channel identifying information seen", rows["Channel"])
	assert.Equal(t, "No signal data available", rows["Signal"])
}

func TestNetworkRowsNil(t *testing.T) {
	rows := NetworkRows(nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "No network selected", rows[0].Value)
}

func TestClientRows(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.ApplyNetwork(netFields("aa", 1, 0)))
	require.NoError(t, s.ApplyClient(cliFields("c1", "aa", 1)))
	n, _ := s.Network("aa")
	c := s.SelectedClient().(*Client)

	rows := rowMap(ClientRows(c, n))
	assert.Equal(t, "c1", rows["MAC"])
	assert.Equal(t, "aa", rows["Network"])
	assert.Equal(t, "Acme", rows["Net Manuf"])
	assert.Equal(t, "Wireless (traffic to and from AP)", rows["Type"])
	assert.Equal(t, "33 (max 40)", rows["Sig RSSI"])
	assert.Equal(t, "4 (max 6)", rows["Noise RSSI"])
	assert.Equal(t, "100B", rows["Bytes"])

	assert.NotContains(t, rowMap(ClientRows(c, nil)), "Net Manuf")
	assert.Equal(t, "No client selected", ClientRows(nil, nil)[0].Value)
}

func TestTypeLabels(t *testing.T) {
	assert.Equal(t, "Probe (Client)", NetworkTypeLabel(NetworkProbe))
	assert.Equal(t, "Unknown", NetworkTypeLabel(42))
	assert.Equal(t, "Wireless Ad-Hoc", ClientTypeLabel(5))
	assert.Equal(t, "Unknown", ClientTypeLabel(9))
}
