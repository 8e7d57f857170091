package proto

import (
	"fmt"

	"github.com/rileyhilliard/rfdash/internal/errors"
	"github.com/rileyhilliard/rfdash/internal/telemetry"
)

// SNR is the signal and noise block shared by NETWORK and CLIENT records.
type SNR struct {
	SignalDBM     int
	NoiseDBM      int
	SignalRSSI    int
	NoiseRSSI     int
	MaxSignalDBM  int
	MaxNoiseDBM   int
	MaxSignalRSSI int
	MaxNoiseRSSI  int
}

// Counters is the packet counter block shared by NETWORK and CLIENT records.
// Fragments and Retries are per-second rates; the rest are cumulative.
type Counters struct {
	LLC       int64
	Data      int64
	Crypt     int64
	Fragments int64
	Retries   int64
	Bytes     int64
}

// Packets is the total of management and data frames.
func (c Counters) Packets() int64 {
	return c.LLC + c.Data
}

// NetworkRecord is one decoded NETWORK record.
type NetworkRecord struct {
	BSSID     string
	Type      int
	SSID      string
	Manuf     string
	Channel   int
	FirstTime int64
	LastTime  int64
	SNR
	Counters
}

// ClientRecord is one decoded CLIENT record.
type ClientRecord struct {
	MAC       string
	BSSID     string
	Type      int
	Manuf     string
	Channel   int
	FirstTime int64
	LastTime  int64
	SNR
	Counters
}

// Field lists in wire order. Tcp sources send them when enabling a record.
var (
	NetworkFieldNames = []string{
		"bssid", "type", "ssid", "manuf", "channel", "firsttime", "lasttime",
		"signal_dbm", "noise_dbm", "signal_rssi", "noise_rssi",
		"maxsignal_dbm", "maxnoise_dbm", "maxsignal_rssi", "maxnoise_rssi",
		"llcpackets", "datapackets", "cryptpackets", "fragments", "retries", "datasize",
	}
	ClientFieldNames = []string{
		"mac", "bssid", "type", "manuf", "channel", "firsttime", "lasttime",
		"signal_dbm", "noise_dbm", "signal_rssi", "noise_rssi",
		"maxsignal_dbm", "maxnoise_dbm", "maxsignal_rssi", "maxnoise_rssi",
		"llcpackets", "datapackets", "cryptpackets", "fragments", "retries", "datasize",
	}
	AlertFieldNames = []string{"sec", "usec", "header", "bssid", "text"}
)

// Minimum field counts per record.
var (
	NetworkFields = len(NetworkFieldNames)
	ClientFields  = len(ClientFieldNames)
	AlertFields   = len(AlertFieldNames)
)

func shortRecord(record string, got, want int) error {
	return errors.New(errors.ErrProto,
		fmt.Sprintf("short %s record: %d of %d fields", record, got, want), "")
}

func (d *fieldDecoder) snr(s *SNR) {
	d.ints(
		&s.SignalDBM, &s.NoiseDBM, &s.SignalRSSI, &s.NoiseRSSI,
		&s.MaxSignalDBM, &s.MaxNoiseDBM, &s.MaxSignalRSSI, &s.MaxNoiseRSSI,
	)
}

func (d *fieldDecoder) counters(c *Counters) {
	d.int64s(&c.LLC, &c.Data, &c.Crypt, &c.Fragments, &c.Retries, &c.Bytes)
}

// DecodeNetwork decodes a NETWORK record. Unlike CHANNEL, a bad field
// rejects the whole record: network entries are replaced wholesale.
func DecodeNetwork(fields []string) (*NetworkRecord, error) {
	if len(fields) < NetworkFields {
		return nil, shortRecord("NETWORK", len(fields), NetworkFields)
	}

	d := fieldDecoder{record: "NETWORK", fields: fields}
	rec := &NetworkRecord{BSSID: d.nextString()}
	d.ints(&rec.Type)
	rec.SSID = d.nextString()
	rec.Manuf = d.nextString()
	d.ints(&rec.Channel)
	d.int64s(&rec.FirstTime, &rec.LastTime)
	d.snr(&rec.SNR)
	d.counters(&rec.Counters)

	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}

// DecodeClient decodes a CLIENT record, all or nothing.
func DecodeClient(fields []string) (*ClientRecord, error) {
	if len(fields) < ClientFields {
		return nil, shortRecord("CLIENT", len(fields), ClientFields)
	}

	d := fieldDecoder{record: "CLIENT", fields: fields}
	rec := &ClientRecord{MAC: d.nextString(), BSSID: d.nextString()}
	d.ints(&rec.Type)
	rec.Manuf = d.nextString()
	d.ints(&rec.Channel)
	d.int64s(&rec.FirstTime, &rec.LastTime)
	d.snr(&rec.SNR)
	d.counters(&rec.Counters)

	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}

// DecodeAlert decodes an ALERT record, all or nothing.
func DecodeAlert(fields []string) (*telemetry.Alert, error) {
	if len(fields) < AlertFields {
		return nil, shortRecord("ALERT", len(fields), AlertFields)
	}

	d := fieldDecoder{record: "ALERT", fields: fields}
	a := &telemetry.Alert{}
	d.int64s(&a.Sec, &a.Usec)
	a.Category = d.nextString()
	a.Origin = d.nextString()
	a.Text = d.nextString()

	if d.err != nil {
		return nil, d.err
	}
	return a, nil
}
