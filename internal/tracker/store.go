package tracker

import (
	"github.com/rileyhilliard/rfdash/internal/proto"
	"github.com/rileyhilliard/rfdash/internal/telemetry"
)

// Store keeps the latest network and client snapshots in arrival order, plus
// a selection cursor for each list. Cursors hold keys, not indexes, so new
// arrivals never move the selection.
type Store struct {
	networks     map[string]*Network
	networkOrder []string
	clients      map[string]*Client
	clientOrder  []string

	selNetwork string
	selClient  string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		networks: make(map[string]*Network),
		clients:  make(map[string]*Client),
	}
}

// ApplyNetwork decodes a NETWORK record and replaces the stored snapshot.
// The first network seen becomes the selection.
func (s *Store) ApplyNetwork(fields []string) error {
	rec, err := proto.DecodeNetwork(fields)
	if err != nil {
		return err
	}
	if _, ok := s.networks[rec.BSSID]; !ok {
		s.networkOrder = append(s.networkOrder, rec.BSSID)
	}
	s.networks[rec.BSSID] = &Network{NetworkRecord: *rec}
	if s.selNetwork == "" {
		s.selNetwork = rec.BSSID
	}
	return nil
}

// ApplyClient decodes a CLIENT record and replaces the stored snapshot.
func (s *Store) ApplyClient(fields []string) error {
	rec, err := proto.DecodeClient(fields)
	if err != nil {
		return err
	}
	if _, ok := s.clients[rec.MAC]; !ok {
		s.clientOrder = append(s.clientOrder, rec.MAC)
	}
	s.clients[rec.MAC] = &Client{ClientRecord: *rec}
	return nil
}

// Networks returns every network in arrival order.
func (s *Store) Networks() []*Network {
	out := make([]*Network, 0, len(s.networkOrder))
	for _, k := range s.networkOrder {
		out = append(out, s.networks[k])
	}
	return out
}

// Network looks up a network by BSSID.
func (s *Store) Network(bssid string) (*Network, bool) {
	n, ok := s.networks[bssid]
	return n, ok
}

// Clients returns the clients of the selected network in arrival order, or
// every client when no network is selected.
func (s *Store) Clients() []*Client {
	out := make([]*Client, 0)
	for _, k := range s.clientOrder {
		c := s.clients[k]
		if s.selNetwork == "" || c.BSSID == s.selNetwork {
			out = append(out, c)
		}
	}
	return out
}

// SelectedNetwork returns the selected network, or an untyped nil so
// callers can hand it straight to a telemetry.Tracker.
func (s *Store) SelectedNetwork() telemetry.Entity {
	if n, ok := s.networks[s.selNetwork]; ok {
		return n
	}
	return nil
}

// SelectedClient returns the selected client if it still belongs to the
// visible client list, otherwise the first visible client, otherwise nil.
func (s *Store) SelectedClient() telemetry.Entity {
	visible := s.Clients()
	for _, c := range visible {
		if c.MAC == s.selClient {
			return c
		}
	}
	if len(visible) > 0 {
		s.selClient = visible[0].MAC
		return visible[0]
	}
	return nil
}

// NextNetwork moves the network cursor down, stopping at the last entry.
func (s *Store) NextNetwork() { s.selNetwork = step(s.networkOrder, s.selNetwork, 1) }

// PrevNetwork moves the network cursor up, stopping at the first entry.
func (s *Store) PrevNetwork() { s.selNetwork = step(s.networkOrder, s.selNetwork, -1) }

// NextClient moves the client cursor down within the visible list.
func (s *Store) NextClient() { s.selClient = step(s.clientKeys(), s.selClient, 1) }

// PrevClient moves the client cursor up within the visible list.
func (s *Store) PrevClient() { s.selClient = step(s.clientKeys(), s.selClient, -1) }

// SelectNetwork points the cursor at bssid if it is known.
func (s *Store) SelectNetwork(bssid string) bool {
	if _, ok := s.networks[bssid]; !ok {
		return false
	}
	s.selNetwork = bssid
	return true
}

// ClearSelection leaves nothing selected.
func (s *Store) ClearSelection() {
	s.selNetwork = ""
	s.selClient = ""
}

func (s *Store) clientKeys() []string {
	visible := s.Clients()
	keys := make([]string, len(visible))
	for i, c := range visible {
		keys[i] = c.MAC
	}
	return keys
}

// step moves from cur by delta within keys, clamping at both ends. An
// unknown cur starts from the first key.
func step(keys []string, cur string, delta int) string {
	if len(keys) == 0 {
		return ""
	}
	idx := -1
	for i, k := range keys {
		if k == cur {
			idx = i
			break
		}
	}
	if idx < 0 {
		return keys[0]
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(keys) {
		idx = len(keys) - 1
	}
	return keys[idx]
}
