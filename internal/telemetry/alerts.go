package telemetry

import (
	"sort"
	"strings"
)

// Alert is one entry of the server's alert log.
type Alert struct {
	Sec      int64
	Usec     int64
	Category string
	Origin   string
	Text     string
}

// Before reports whether a happened strictly earlier than b.
func (a *Alert) Before(b *Alert) bool {
	if a.Sec != b.Sec {
		return a.Sec < b.Sec
	}
	return a.Usec < b.Usec
}

// SortKey selects the alert list ordering.
type SortKey int

const (
	// SortLatest orders newest first. It is the default.
	SortLatest SortKey = iota
	// SortTime orders oldest first.
	SortTime
	// SortCategory orders by alert type label.
	SortCategory
	// SortOrigin orders by the originating BSSID.
	SortOrigin
)

// SortKeys lists every key in cycle order.
var SortKeys = []SortKey{SortLatest, SortTime, SortCategory, SortOrigin}

// String returns the persisted name of the key.
func (k SortKey) String() string {
	switch k {
	case SortTime:
		return "time"
	case SortCategory:
		return "type"
	case SortOrigin:
		return "bssid"
	default:
		return "latest"
	}
}

// Next returns the following key in cycle order.
func (k SortKey) Next() SortKey {
	for i, key := range SortKeys {
		if key == k {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortLatest
}

// SortKeyNames are the accepted spellings of a sort key.
var SortKeyNames = []string{"latest", "time", "type", "category", "bssid", "origin"}

// LookupSortKey maps a name to a key and reports whether it is known.
func LookupSortKey(s string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "latest":
		return SortLatest, true
	case "time":
		return SortTime, true
	case "type", "category":
		return SortCategory, true
	case "bssid", "origin":
		return SortOrigin, true
	default:
		return SortLatest, false
	}
}

// ParseSortKey maps a stored preference to a key. Unknown values fall back
// to SortLatest.
func ParseSortKey(s string) SortKey {
	key, _ := LookupSortKey(s)
	return key
}

func lessFunc(key SortKey, view []*Alert) func(i, j int) bool {
	switch key {
	case SortTime:
		return func(i, j int) bool { return view[i].Before(view[j]) }
	case SortCategory:
		return func(i, j int) bool { return view[i].Category < view[j].Category }
	case SortOrigin:
		return func(i, j int) bool { return view[i].Origin < view[j].Origin }
	default:
		return func(i, j int) bool { return view[j].Before(view[i]) }
	}
}

// AlertSorter keeps a sorted view of an append-only alert log and skips
// re-sorting when neither the log nor the key changed.
type AlertSorter struct {
	newest *Alert
	key    SortKey
	primed bool
}

// Refresh returns a freshly sorted copy of alerts and true, or nil and false
// when the newest alert and the key are the same as on the previous call.
// The input slice is never reordered.
func (s *AlertSorter) Refresh(alerts []*Alert, key SortKey) ([]*Alert, bool) {
	var newest *Alert
	if len(alerts) > 0 {
		newest = alerts[len(alerts)-1]
	}

	if s.primed && newest == s.newest && key == s.key {
		return nil, false
	}

	s.newest = newest
	s.key = key
	s.primed = true

	view := make([]*Alert, len(alerts))
	copy(view, alerts)
	sort.SliceStable(view, lessFunc(key, view))
	return view, true
}

// Invalidate forces the next Refresh to rebuild the view.
func (s *AlertSorter) Invalidate() {
	s.primed = false
	s.newest = nil
}
