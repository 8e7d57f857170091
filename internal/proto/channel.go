package proto

import (
	"strconv"
	"time"

	"github.com/rileyhilliard/rfdash/internal/errors"
	"github.com/rileyhilliard/rfdash/internal/telemetry"
)

// ChannelFields is the number of positional fields in a CHANNEL record.
const ChannelFields = 13

// ChannelFieldNames are the CHANNEL record fields in wire order. Tcp sources
// send this list when enabling the record.
var ChannelFieldNames = []string{
	"channel", "time_on", "packets", "packetsdelta", "usecused",
	"bytes", "bytesdelta", "networks", "activenetworks",
	"maxsignal_dbm", "maxsignal_rssi", "maxnoise_dbm", "maxnoise_rssi",
}

// ChannelTable is the per-channel state built from CHANNEL records.
type ChannelTable struct {
	Channels map[int]*telemetry.ChannelStat

	now func() time.Time
}

// NewChannelTable creates an empty table.
func NewChannelTable() *ChannelTable {
	return &ChannelTable{
		Channels: make(map[int]*telemetry.ChannelStat),
		now:      time.Now,
	}
}

// Apply decodes one CHANNEL record into the table.
//
// Records shorter than ChannelFields are ignored. Fields are decoded left to
// right; the first bad field stops decoding and is reported, but fields
// before it stay applied. A zero time_on, packets delta or bytes delta keeps
// the previous value.
func (t *ChannelTable) Apply(fields []string) error {
	if len(fields) < ChannelFields {
		return nil
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return errors.NewProto("CHANNEL", 0, fields[0], err)
	}

	ci, ok := t.Channels[id]
	if !ok {
		ci = &telemetry.ChannelStat{Channel: id}
		t.Channels[id] = ci
	}
	ci.LastUpdated = t.now()

	d := fieldDecoder{record: "CHANNEL", fields: fields, pos: 1}

	steps := []func(v int64){
		func(v int64) { keepZero(&ci.TimeOnUsec, v) },
		func(v int64) { ci.Packets = v },
		func(v int64) { keepZero(&ci.PacketsDelta, v) },
		func(v int64) { ci.UsecUsed = v },
		func(v int64) { ci.Bytes = v },
		func(v int64) { keepZero(&ci.BytesDelta, v) },
		func(v int64) { ci.Networks = int(v) },
		func(v int64) { ci.ActiveNetworks = int(v) },
		func(v int64) { ci.SigDBM = int(v) },
		func(v int64) { ci.SigRSSI = int(v) },
		func(v int64) { ci.NoiseDBM = int(v) },
		func(v int64) { ci.NoiseRSSI = int(v) },
	}
	for _, apply := range steps {
		v, ok := d.nextInt64()
		if !ok {
			return d.err
		}
		apply(v)
	}

	return nil
}

// Len returns the number of known channels.
func (t *ChannelTable) Len() int {
	return len(t.Channels)
}

// Reset forgets every channel.
func (t *ChannelTable) Reset() {
	t.Channels = make(map[int]*telemetry.ChannelStat)
}
