package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rfdash/internal/prefs"
	"github.com/rileyhilliard/rfdash/internal/telemetry"
	"github.com/rileyhilliard/rfdash/internal/tracker"
	"github.com/rileyhilliard/rfdash/internal/ui"
	"github.com/rileyhilliard/rfdash/internal/util"
)

// Layout constants.
const (
	defaultWidth = 80
	minWidth     = 40
	graphHeight  = 4
	fieldWidth   = 14
	labelWidth   = 5
	barTextWidth = 16
	trendWidth   = 24
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.viewportReady {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.renderPanel())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the title, summary counts and panel tabs.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("rfdash")

	stats := LabelStyle.Render(" | " + strings.Join([]string{
		count(len(m.store.Networks()), "network"),
		count(len(m.store.Clients()), "client"),
		count(m.channels.Len(), "channel"),
		count(m.alerts.log.Len(), "alert"),
	}, " | "))

	tabs := make([]string, panelCount)
	for i := 0; i < panelCount; i++ {
		p := Panel(i)
		label := fmt.Sprintf("%d %s", i+1, p)
		if p == m.active {
			tabs[i] = TabActiveStyle.Render(label)
		} else {
			tabs[i] = TabStyle.Render(label)
		}
	}

	return HeaderStyle.Render(title+stats) + "\n" + strings.Join(tabs, " ")
}

// renderFooter renders the status line and key hints.
func (m Model) renderFooter() string {
	status := m.status
	if status == "" {
		status = count(m.lines, "line") + ", " + count(m.dispatcher.Failed, "bad record")
		if quiet := m.SecondsSinceLine(); !m.feedDone && quiet >= quietAfter {
			status += fmt.Sprintf(", no data for %ds", quiet)
		}
	}

	style := MutedStyle
	if m.feedErr != nil {
		style = ErrorStyle
	}
	if m.feed != nil {
		status = m.feed.Name() + " | " + status
	}
	status = m.feedSymbol() + " " + status

	return FooterStyle.Render(style.Render(status) + MutedStyle.Render("  tab panels  ? help  q quit"))
}

// feedSymbol shows whether the feed is waiting, live, finished, or failed.
func (m Model) feedSymbol() string {
	switch {
	case m.feedErr != nil:
		return ui.SymbolFail
	case m.feedDone:
		return ui.SymbolSuccess
	case m.lines == 0:
		return ui.SymbolPending
	default:
		return ui.SymbolActive
	}
}

// renderPanel renders the body of the active panel.
func (m Model) renderPanel() string {
	switch m.active {
	case PanelNetwork:
		name := "none"
		if n := m.selectedNetwork(); n != nil {
			name = n.Name()
		}
		return m.renderDetail(m.network, "Network", name)
	case PanelClient:
		name := "none"
		if c := m.selectedClient(); c != nil {
			name = c.MAC
		}
		return m.renderDetail(m.client, "Client", name)
	case PanelChannel:
		return m.renderChannels()
	case PanelAlerts:
		return m.renderAlerts()
	}
	return ""
}

// count formats n with a pluralized noun.
func count(n int, noun string) string {
	return fmt.Sprintf("%d %s", n, util.Pluralize(n, noun, noun+"s"))
}

func (m Model) contentWidth() int {
	w := m.width
	if w == 0 {
		w = defaultWidth
	}
	if w < minWidth {
		w = minWidth
	}
	return w
}

// renderDetail renders detail rows and the enabled graphs of a detail panel.
func (m Model) renderDetail(p *detailPanel, title, name string) string {
	width := m.contentWidth()
	series := p.refresher.Series()
	var blocks []string

	if m.visible(p.flags.details) {
		lines := make([]string, 0, len(p.rows)+1)
		for _, r := range p.rows {
			lines = append(lines, renderRow(r))
		}
		// With the signal graph off, keep a one-line trend in the details.
		if !m.visible(p.flags.signal) {
			if trend := renderTrend(series.Signal); trend != "" {
				lines = append(lines, trend)
			}
		}
		blocks = append(blocks, section(title, name, lines, width))
	}

	graphs := []struct {
		flag   string
		title  string
		window *telemetry.Window
		color  lipgloss.Color
	}{
		{p.flags.signal, "Signal", series.Signal, ColorSignal},
		{p.flags.packets, "Packets", series.Packets, ColorPackets},
		{p.flags.retries, "Retries", series.Retries, ColorRetries},
	}
	for _, g := range graphs {
		if m.visible(g.flag) {
			blocks = append(blocks, renderGraph(g.title, g.window, g.color, width))
		}
	}

	if len(blocks) == 0 {
		return MutedStyle.Render("All " + strings.ToLower(title) + " sections hidden. Press d, s, p or r to show them.")
	}
	return strings.Join(blocks, "\n")
}

func renderRow(r tracker.Row) string {
	if r.Field == "" {
		return MutedStyle.Render(r.Value)
	}
	return LabelStyle.Width(fieldWidth).Render(r.Field+":") + ValueStyle.Render(r.Value)
}

// renderTrend renders a signal window as a labelled sparkline, or nothing
// when the window holds no readings.
func renderTrend(w *telemetry.Window) string {
	data := seriesData(w)
	if data == nil {
		return ""
	}
	color := ColorSignal
	if last := w.Last(); last != telemetry.NoSignal {
		color = SignalColor(last)
	}
	return LabelStyle.Width(fieldWidth).Render("Trend:") + RenderSparkline(data, trendWidth, color)
}

// renderGraph draws one series in a bordered section labelled with its
// newest value.
func renderGraph(title string, w *telemetry.Window, color lipgloss.Color, width int) string {
	data := seriesData(w)
	last := w.Last()

	value := strconv.Itoa(last)
	if w.Sentinel() == telemetry.NoSignal {
		if last == telemetry.NoSignal {
			value = "n/a"
		} else {
			color = SignalColor(last)
		}
	}

	if data == nil {
		return section(title, value, []string{MutedStyle.Render("No signal data available")}, width)
	}
	graph := RenderBrailleGraph(data, width-4, graphHeight, color)
	return section(title, value, []string{graph}, width)
}

// bar is one labelled row of a channel bar chart.
type bar struct {
	label    string
	text     string
	fraction float64
	color    lipgloss.Color
}

func renderBars(bars []bar, width int) []string {
	barWidth := width - 4 - labelWidth - barTextWidth - 2
	if barWidth < 10 {
		barWidth = 10
	}

	lines := make([]string, len(bars))
	for i, b := range bars {
		lines[i] = LabelStyle.Width(labelWidth).Render(b.label) + " " +
			RenderBar(barWidth, b.fraction, b.color) + " " +
			ValueStyle.Render(b.text)
	}
	return lines
}

// signalBars scales readings between just below the weakest and the
// strongest channel. Channels with no reading get an empty bar.
func signalBars(snap telemetry.ChannelSnapshot) []bar {
	lo, hi, seen := 0, 0, false
	for _, s := range snap.Signal {
		if s == telemetry.NoSignal {
			continue
		}
		if !seen || s < lo {
			lo = s
		}
		if !seen || s > hi {
			hi = s
		}
		seen = true
	}
	lo -= 10

	bars := make([]bar, snap.Len())
	for i, s := range snap.Signal {
		b := bar{label: snap.Labels[i], color: SignalColor(s)}
		if s == telemetry.NoSignal {
			b.text = "no signal"
		} else {
			b.fraction = float64(s-lo) / float64(hi-lo)
			b.text = strconv.Itoa(s)
			if n := snap.Noise[i]; n != telemetry.NoSignal {
				b.text += "/" + strconv.Itoa(n)
			}
		}
		bars[i] = b
	}
	return bars
}

// rateBars scales values against the largest one.
func rateBars(labels []string, values []int64, format func(int64) string, color lipgloss.Color) []bar {
	var top int64
	for _, v := range values {
		if v > top {
			top = v
		}
	}

	bars := make([]bar, len(values))
	for i, v := range values {
		b := bar{label: labels[i], text: format(v), color: color}
		if top > 0 && v > 0 {
			b.fraction = float64(v) / float64(top)
		}
		bars[i] = b
	}
	return bars
}

func formatCount(v int64) string {
	return strconv.FormatInt(v, 10)
}

// renderChannels renders the channel graphs and summary table.
func (m Model) renderChannels() string {
	snap := m.channel.snap
	if snap.Len() == 0 {
		return MutedStyle.Render("No channel data yet")
	}

	width := m.contentWidth()
	total := count(snap.Len(), "channel")
	var blocks []string

	if m.visible(prefs.ChanShowSignal) {
		blocks = append(blocks, section("Signal", total, renderBars(signalBars(snap), width), width))
	}
	if m.visible(prefs.ChanShowPackets) {
		bars := rateBars(snap.Labels, snap.Packets, formatCount, ColorPackets)
		blocks = append(blocks, section("Packets", "per second", renderBars(bars, width), width))
	}
	if m.visible(prefs.ChanShowTraffic) {
		bars := rateBars(snap.Labels, snap.Bytes, telemetry.FormatSize, ColorTraffic)
		blocks = append(blocks, section("Traffic", "per second", renderBars(bars, width), width))
	}
	if m.visible(prefs.ChanShowNetwork) {
		networks := make([]int64, snap.Len())
		for i, n := range snap.Networks {
			networks[i] = int64(n)
		}
		bars := rateBars(snap.Labels, networks, formatCount, ColorAccentDim)
		for i := range bars {
			bars[i].text += fmt.Sprintf(" (%d active)", snap.ActiveNetworks[i])
		}
		blocks = append(blocks, section("Networks", "total", renderBars(bars, width), width))
	}
	if m.visible(prefs.ChanShowSummary) {
		blocks = append(blocks, section("Summary", total, []string{renderSummary(snap)}, width))
	}

	if len(blocks) == 0 {
		return MutedStyle.Render("All channel sections hidden. Press s, p, t, w or m to show them.")
	}
	return strings.Join(blocks, "\n")
}

// renderSummary renders the per-channel summary table.
func renderSummary(snap telemetry.ChannelSnapshot) string {
	rows := make([][]string, len(snap.Rows))
	for i, r := range snap.Rows {
		rows[i] = r
	}
	cols := ui.FitColumns(telemetry.SummaryColumns, rows, 0)
	return ui.RenderSimpleTable(cols, rows)
}

// renderAlerts renders the sorted alert list.
func (m Model) renderAlerts() string {
	width := m.contentWidth()
	key := m.sortKey()
	value := "sorted by " + key.String()

	if len(m.alerts.view) == 0 {
		return section("Alerts", value, []string{MutedStyle.Render("No alerts")}, width)
	}

	rows := make([]table.Row, len(m.alerts.view))
	for i, a := range m.alerts.view {
		rows[i] = tracker.AlertRow(a)
	}

	textWidth := width - 4 - 8 - 14 - 17 - 8
	if textWidth < 20 {
		textWidth = 20
	}
	cols := []ui.TableColumn{
		{Title: tracker.AlertColumns[0], Width: 8},
		{Title: tracker.AlertColumns[1], Width: 14},
		{Title: tracker.AlertColumns[2], Width: 17},
		{Title: tracker.AlertColumns[3], Width: textWidth},
	}

	return section("Alerts", value, []string{ui.NewTable(cols, rows).View()}, width)
}
