// Package dashboard implements the live terminal dashboard.
//
// The dashboard is a Bubble Tea model with four panels: network detail,
// client detail, channel summary and alert list. Protocol lines arrive from
// a source.Feed as messages and are decoded on the Update goroutine, so the
// stores, trackers and series are only ever touched from one goroutine.
//
// # Refresh cycle
//
// A tick message runs one refresh cycle for every panel:
//
//   - network and client panels hand the current selection to their
//     telemetry.Refresher, which decides between NoOp, ResetAndUpdate and
//     UpdateOnly and feeds the graph windows
//   - detail rows are rebuilt only when the tracker reports work
//   - the channel panel re-aggregates the channel table
//   - the alert panel asks its sorter for a new view
//
// # Preferences
//
// Panel visibility and graph toggles are stored in a prefs.Store and saved
// on every toggle. The alert sort order is stored under ALERTLIST_SORT.
//
// # Keyboard Shortcuts
//
//	1-4, tab          Switch panel
//	up/k, down/j      Move the selection (network and client panels)
//	d                 Toggle detail rows
//	s, p, r           Toggle signal, packet and retry graphs
//	s, p, t, w, m     Toggle channel signal, packets, traffic, networks, summary
//	o                 Cycle alert sort order
//	c                 Clear alerts
//	?                 Toggle help
//	q, Ctrl+C         Quit
package dashboard
