package dashboard

import (
	"github.com/rileyhilliard/rfdash/internal/prefs"
	"github.com/rileyhilliard/rfdash/internal/proto"
	"github.com/rileyhilliard/rfdash/internal/telemetry"
	"github.com/rileyhilliard/rfdash/internal/tracker"
)

// Panel identifies one of the dashboard panels.
type Panel int

const (
	PanelNetwork Panel = iota
	PanelClient
	PanelChannel
	PanelAlerts
)

// panelCount is the number of panels, for cycling.
const panelCount = 4

// String returns the tab label for the panel.
func (p Panel) String() string {
	switch p {
	case PanelNetwork:
		return "Network"
	case PanelClient:
		return "Client"
	case PanelChannel:
		return "Channels"
	case PanelAlerts:
		return "Alerts"
	default:
		return "unknown"
	}
}

// Next cycles to the next panel.
func (p Panel) Next() Panel {
	return Panel((int(p) + 1) % panelCount)
}

// detailFlags names the preference keys of a detail panel.
type detailFlags struct {
	details string
	signal  string
	packets string
	retries string
}

var (
	networkFlags = detailFlags{prefs.NetShowDetails, prefs.NetShowGraphSig, prefs.NetShowGraphPacket, prefs.NetShowGraphRetry}
	clientFlags  = detailFlags{prefs.CliShowDetails, prefs.CliShowGraphSig, prefs.CliShowGraphPacket, prefs.CliShowGraphRetry}
)

// detailPanel is the shared network/client panel: a refresher over the
// current selection and the detail rows built from it.
type detailPanel struct {
	flags     detailFlags
	refresher *telemetry.Refresher
	selected  func() telemetry.Entity
	build     func() []tracker.Row
	rows      []tracker.Row
	last      telemetry.Action
}

func newDetailPanel(history int, flags detailFlags, selected func() telemetry.Entity, build func() []tracker.Row) *detailPanel {
	return &detailPanel{
		flags:     flags,
		refresher: telemetry.NewRefresher(history, tracker.GraphSample),
		selected:  selected,
		build:     build,
	}
}

// tick runs one refresh cycle and rebuilds the rows when the tracker saw
// work since the last rebuild.
func (p *detailPanel) tick() telemetry.Action {
	p.last = p.refresher.Tick(p.selected())
	if p.refresher.Tracker().TakeDirty() || p.rows == nil {
		p.rows = p.build()
	}
	return p.last
}

// channelPanel aggregates the channel table on every tick.
type channelPanel struct {
	table *proto.ChannelTable
	snap  telemetry.ChannelSnapshot
}

func (p *channelPanel) tick() {
	p.snap = telemetry.Aggregate(p.table.Channels)
}

// alertPanel keeps the sorted view of the alert log.
type alertPanel struct {
	log    *tracker.AlertLog
	sorter telemetry.AlertSorter
	view   []*telemetry.Alert
}

// refresh re-sorts only when the log or the key changed. It reports
// whether the view was rebuilt.
func (p *alertPanel) refresh(key telemetry.SortKey) bool {
	view, changed := p.sorter.Refresh(p.log.Alerts(), key)
	if changed {
		p.view = view
	}
	return changed
}

// clear empties the log and drops the view.
func (p *alertPanel) clear() {
	p.log.Clear()
	p.view = nil
	p.sorter.Invalidate()
}
