package tracker

import (
	"fmt"
	"strconv"

	"github.com/rileyhilliard/rfdash/internal/proto"
	"github.com/rileyhilliard/rfdash/internal/telemetry"
)

// Row is one field/value line of a detail panel.
type Row struct {
	Field string
	Value string
}

// NetworkRows builds the detail rows for a network. A nil network yields a
// single placeholder row.
func NetworkRows(n *Network) []Row {
	if n == nil {
		return []Row{{Value: "No network selected"}}
	}

	channel := "No channel identifying information seen"
	if n.Channel != 0 {
		channel = strconv.Itoa(n.Channel)
	}

	rows := []Row{
		{"Name", n.Name()},
		{"BSSID", n.BSSID},
		{"Manuf", n.Manuf},
		{"First Seen", FormatSeen(n.FirstTime)},
		{"Last Seen", FormatSeen(n.LastTime)},
		{"Type", NetworkTypeLabel(n.Type)},
		{"Channel", channel},
	}
	rows = append(rows, signalRows(n.SNR)...)
	return append(rows, counterRows(n.Counters)...)
}

// ClientRows builds the detail rows for a client. net is the client's
// network when known and adds its manufacturer.
func ClientRows(c *Client, net *Network) []Row {
	if c == nil {
		return []Row{{Value: "No client selected"}}
	}

	rows := []Row{
		{"MAC", c.MAC},
		{"Manuf", c.Manuf},
		{"Network", c.BSSID},
	}
	if net != nil {
		rows = append(rows, Row{"Net Manuf", net.Manuf})
	}
	rows = append(rows,
		Row{"Type", ClientTypeLabel(c.Type)},
		Row{"First Seen", FormatSeen(c.FirstTime)},
		Row{"Last Seen", FormatSeen(c.LastTime)},
	)
	rows = append(rows, signalRows(c.SNR)...)
	return append(rows, counterRows(c.Counters)...)
}

// signalRows prefers dBm; RSSI is shown only when dBm has no data, and when
// neither has data a single placeholder row is shown.
func signalRows(s proto.SNR) []Row {
	if s.SignalDBM == telemetry.NoSignal || s.SignalDBM == 0 {
		if s.SignalRSSI == 0 {
			return []Row{{"Signal", "No signal data available"}}
		}
		return []Row{
			{"Sig RSSI", withMax(s.SignalRSSI, s.MaxSignalRSSI)},
			{"Noise RSSI", withMax(s.NoiseRSSI, s.MaxNoiseRSSI)},
		}
	}
	return []Row{
		{"Sig dBm", withMax(s.SignalDBM, s.MaxSignalDBM)},
		{"Noise dBm", withMax(s.NoiseDBM, s.MaxNoiseDBM)},
	}
}

func withMax(last, peak int) string {
	return fmt.Sprintf("%d (max %d)", last, peak)
}

func counterRows(c proto.Counters) []Row {
	return []Row{
		{"Packets", strconv.FormatInt(c.Packets(), 10)},
		{"Data Pkts", strconv.FormatInt(c.Data, 10)},
		{"Mgmt Pkts", strconv.FormatInt(c.LLC, 10)},
		{"Crypt Pkts", strconv.FormatInt(c.Crypt, 10)},
		{"Fragments", strconv.FormatInt(c.Fragments, 10) + "/sec"},
		{"Retries", strconv.FormatInt(c.Retries, 10) + "/sec"},
		{"Bytes", telemetry.FormatSize(c.Bytes)},
	}
}
