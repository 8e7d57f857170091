// Package tracker holds the networks, clients and alerts decoded from the
// feed. Entities are immutable snapshots: an update replaces the pointer, so
// panels can keep a reference without seeing it change under them.
package tracker

import (
	"time"

	"github.com/rileyhilliard/rfdash/internal/proto"
	"github.com/rileyhilliard/rfdash/internal/telemetry"
)

// Network is the latest snapshot of one BSSID.
type Network struct {
	proto.NetworkRecord
}

// Key implements telemetry.Entity.
func (n *Network) Key() string { return n.BSSID }

// LastModified implements telemetry.Entity.
func (n *Network) LastModified() int64 { return n.LastTime }

// Name is the advertised SSID, or a placeholder for hidden networks.
func (n *Network) Name() string {
	if n.SSID == "" {
		return "<Hidden SSID>"
	}
	return n.SSID
}

// Client is the latest snapshot of one station.
type Client struct {
	proto.ClientRecord
}

// Key implements telemetry.Entity.
func (c *Client) Key() string { return c.MAC }

// LastModified implements telemetry.Entity.
func (c *Client) LastModified() int64 { return c.LastTime }

// GraphSample is the detail-graph reading for a network or client: the
// signal level, the cumulative llc+data counter, and the retry rate.
func GraphSample(e telemetry.Entity) telemetry.Sample {
	var (
		snr proto.SNR
		cnt proto.Counters
	)
	switch v := e.(type) {
	case *Network:
		snr, cnt = v.SNR, v.Counters
	case *Client:
		snr, cnt = v.SNR, v.Counters
	default:
		return telemetry.Sample{Signal: telemetry.NoSignal}
	}
	return telemetry.Sample{
		Signal:  telemetry.GraphSignal(snr.SignalDBM, snr.SignalRSSI),
		Packets: cnt.Packets(),
		Retries: int(cnt.Retries),
	}
}

// Network type codes as sent by the server.
const (
	NetworkAP        = 0
	NetworkAdhoc     = 1
	NetworkProbe     = 2
	NetworkTurbocell = 3
	NetworkData      = 4
	NetworkMixed     = 255
)

var networkTypes = map[int]string{
	NetworkAP:        "Access Point (Managed/Infrastructure)",
	NetworkAdhoc:     "Ad-Hoc",
	NetworkProbe:     "Probe (Client)",
	NetworkTurbocell: "Turbocell",
	NetworkData:      "Data Only (No management)",
	NetworkMixed:     "Mixed (Multiple network types in group)",
}

// NetworkTypeLabel describes a network type code.
func NetworkTypeLabel(t int) string {
	if s, ok := networkTypes[t]; ok {
		return s
	}
	return "Unknown"
}

var clientTypes = map[int]string{
	0: "Unknown",
	1: "Wired (traffic from AP only)",
	2: "Wireless (traffic from wireless only)",
	3: "Inter-AP traffic (WDS)",
	4: "Wireless (traffic to and from AP)",
	5: "Wireless Ad-Hoc",
}

// ClientTypeLabel describes a client type code.
func ClientTypeLabel(t int) string {
	if s, ok := clientTypes[t]; ok {
		return s
	}
	return "Unknown"
}

// SeenLayout is how first/last seen times are shown.
const SeenLayout = "Jan _2 15:04:05"

// FormatSeen renders a unix time in local time.
func FormatSeen(unix int64) string {
	return time.Unix(unix, 0).Format(SeenLayout)
}
