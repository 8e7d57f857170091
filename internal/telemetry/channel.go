package telemetry

import (
	"sort"
	"strconv"
	"time"
)

// ChannelStat holds the server's counters for one radio channel.
// Signal and noise come in two units; at most one is authoritative per
// sample, and zero means "not reported".
type ChannelStat struct {
	Channel        int
	LastUpdated    time.Time
	TimeOnUsec     int64
	Packets        int64
	PacketsDelta   int64
	UsecUsed       int64
	Bytes          int64
	BytesDelta     int64
	Networks       int
	ActiveNetworks int
	SigDBM         int
	SigRSSI        int
	NoiseDBM       int
	NoiseRSSI      int
}

// SignalNoise returns the signal and noise levels to graph for the channel.
// RSSI wins when its signal is nonzero, then dBm; noise follows whichever
// branch the signal took, falling back to NoSignal on its own.
func (c *ChannelStat) SignalNoise() (signal, noise int) {
	switch {
	case c.SigRSSI != 0:
		if c.NoiseRSSI == 0 {
			return c.SigRSSI, NoSignal
		}
		return c.SigRSSI, c.NoiseRSSI
	case c.SigDBM != 0:
		if c.NoiseDBM == 0 {
			return c.SigDBM, NoSignal
		}
		return c.SigDBM, c.NoiseDBM
	default:
		return NoSignal, NoSignal
	}
}

// TimeOnSeconds converts the on-air time from microseconds to seconds.
func (c *ChannelStat) TimeOnSeconds() float64 {
	return float64(c.TimeOnUsec) / 1000000
}

// SummaryColumns are the titles of the channel summary table.
var SummaryColumns = []string{"Chan", "Packets", "P/S", "Data", "Dt/s", "Netw", "ActN", "Time"}

// SummaryRow is one formatted row of the channel summary table.
type SummaryRow []string

// ChannelSnapshot is the graph- and table-ready view of the channel map.
// All sequences are aligned by index, in ascending channel order.
type ChannelSnapshot struct {
	Signal         []int
	Noise          []int
	Packets        []int64
	Bytes          []int64
	Networks       []int
	ActiveNetworks []int
	Labels         []string
	Rows           []SummaryRow
}

// Len returns the number of channels in the snapshot.
func (s ChannelSnapshot) Len() int {
	return len(s.Labels)
}

// Aligned reports whether every sequence has the same length.
func (s ChannelSnapshot) Aligned() bool {
	n := len(s.Labels)
	return len(s.Signal) == n &&
		len(s.Noise) == n &&
		len(s.Packets) == n &&
		len(s.Bytes) == n &&
		len(s.Networks) == n &&
		len(s.ActiveNetworks) == n &&
		len(s.Rows) == n
}

// Aggregate fans the channel map out into parallel graph sequences and
// summary rows. It reads the map and keeps no state of its own.
func Aggregate(channels map[int]*ChannelStat) ChannelSnapshot {
	ids := make([]int, 0, len(channels))
	for id, stat := range channels {
		if stat != nil {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	n := len(ids)
	snap := ChannelSnapshot{
		Signal:         make([]int, 0, n),
		Noise:          make([]int, 0, n),
		Packets:        make([]int64, 0, n),
		Bytes:          make([]int64, 0, n),
		Networks:       make([]int, 0, n),
		ActiveNetworks: make([]int, 0, n),
		Labels:         make([]string, 0, n),
		Rows:           make([]SummaryRow, 0, n),
	}

	for _, id := range ids {
		c := channels[id]
		sig, noise := c.SignalNoise()
		label := strconv.Itoa(id)

		snap.Signal = append(snap.Signal, sig)
		snap.Noise = append(snap.Noise, noise)
		snap.Packets = append(snap.Packets, c.PacketsDelta)
		snap.Bytes = append(snap.Bytes, c.BytesDelta)
		snap.Networks = append(snap.Networks, c.Networks)
		snap.ActiveNetworks = append(snap.ActiveNetworks, c.ActiveNetworks)
		snap.Labels = append(snap.Labels, label)
		snap.Rows = append(snap.Rows, SummaryRow{
			label,
			strconv.FormatInt(c.Packets, 10),
			strconv.FormatInt(c.PacketsDelta, 10),
			FormatSize(c.Bytes),
			FormatSize(c.BytesDelta),
			strconv.Itoa(c.Networks),
			strconv.Itoa(c.ActiveNetworks),
			strconv.FormatFloat(c.TimeOnSeconds(), 'g', 6, 64) + "s",
		})
	}

	return snap
}

// FormatSize renders a byte count as B, K or M with integer truncation.
func FormatSize(n int64) string {
	switch {
	case n < 1024:
		return strconv.FormatInt(n, 10) + "B"
	case n < 1024*1024:
		return strconv.FormatInt(n/1024, 10) + "K"
	default:
		return strconv.FormatInt(n/1024/1024, 10) + "M"
	}
}
