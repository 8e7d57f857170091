package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/rfdash/internal/logger"
	"github.com/rileyhilliard/rfdash/internal/prefs"
	"github.com/rileyhilliard/rfdash/internal/proto"
	"github.com/rileyhilliard/rfdash/internal/source"
	"github.com/rileyhilliard/rfdash/internal/telemetry"
	"github.com/rileyhilliard/rfdash/internal/tracker"
)

// DefaultInterval is the refresh tick used when Options.Interval is zero.
const DefaultInterval = time.Second

// quietAfter is how many seconds without a line before the footer says so.
const quietAfter = 5

// Options configures a dashboard model.
type Options struct {
	// Feed delivers protocol lines. A nil feed leaves the dashboard idle,
	// which tests use to drive it with lineMsg directly.
	Feed *source.Feed
	// Prefs holds panel toggles. Nil means an in-memory store.
	Prefs *prefs.Store
	// Interval is the refresh tick.
	Interval time.Duration
	// History is the graph series capacity.
	History int
	Log     logger.Logger
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	feed       *source.Feed
	prefs      *prefs.Store
	log        logger.Logger
	dispatcher *proto.Dispatcher

	store    *tracker.Store
	channels *proto.ChannelTable

	network *detailPanel
	client  *detailPanel
	channel *channelPanel
	alerts  *alertPanel

	active   Panel
	width    int
	height   int
	interval time.Duration
	lastLine time.Time
	lines    int
	feedDone bool
	feedErr  error
	status   string
	quitting bool
	showHelp bool

	viewport      viewport.Model
	viewportReady bool
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// lineMsg carries one protocol line from the feed.
type lineMsg string

// feedDoneMsg reports that the feed ended.
type feedDoneMsg struct {
	err error
}

// NewModel creates a dashboard model wired to the given feed and prefs.
func NewModel(opts Options) Model {
	if opts.Prefs == nil {
		opts.Prefs = prefs.NewMemory()
	}
	if opts.Log == nil {
		opts.Log = logger.Noop()
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.History <= 0 {
		opts.History = telemetry.DefaultCapacity
	}

	store := tracker.NewStore()
	network := func() *tracker.Network {
		n, _ := store.SelectedNetwork().(*tracker.Network)
		return n
	}
	client := func() *tracker.Client {
		c, _ := store.SelectedClient().(*tracker.Client)
		return c
	}

	m := Model{
		feed:     opts.Feed,
		prefs:    opts.Prefs,
		log:      opts.Log,
		store:    store,
		channels: proto.NewChannelTable(),
		interval: opts.Interval,
		status:   "waiting for data",
	}

	m.network = newDetailPanel(opts.History, networkFlags,
		store.SelectedNetwork,
		func() []tracker.Row { return tracker.NetworkRows(network()) })
	m.client = newDetailPanel(opts.History, clientFlags,
		store.SelectedClient,
		func() []tracker.Row { return tracker.ClientRows(client(), network()) })
	m.channel = &channelPanel{table: m.channels}
	m.alerts = &alertPanel{log: tracker.NewAlertLog(tracker.DefaultAlertBacklog)}

	m.dispatcher = proto.NewDispatcher(opts.Log)
	m.dispatcher.Register("CHANNEL", proto.ChannelFields, m.channels.Apply)
	m.dispatcher.Register("NETWORK", proto.NetworkFields, m.store.ApplyNetwork)
	m.dispatcher.Register("CLIENT", proto.ClientFields, m.store.ApplyClient)
	m.dispatcher.Register("ALERT", proto.AlertFields, m.alerts.log.Apply)

	return m
}

// Init starts the tick timer and the feed reader.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.waitForLine())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			m.syncViewport()
			return m, cmd
		}
		if m.viewportReady {
			var vcmd tea.Cmd
			m.viewport, vcmd = m.viewport.Update(msg)
			return m, vcmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 2
		viewportHeight := m.height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.viewportReady {
			m.viewport = viewport.New(m.width, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.viewportReady = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.syncViewport()

	case tickMsg:
		m.tick()
		m.syncViewport()
		return m, m.tickCmd()

	case lineMsg:
		m.lines++
		m.lastLine = time.Now()
		// Decode errors are counted and logged by the dispatcher.
		_ = m.dispatcher.Dispatch(string(msg))
		return m, m.waitForLine()

	case feedDoneMsg:
		m.feedDone = true
		m.feedErr = msg.err
		if msg.err != nil {
			m.status = "feed error: " + msg.err.Error()
			m.log.Warn("feed ended: %v", msg.err)
		} else {
			m.status = "feed ended"
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// tick runs one refresh cycle across all panels.
func (m *Model) tick() {
	m.network.tick()
	m.client.tick()
	m.channel.tick()
	m.refreshAlerts()
	if !m.feedDone && m.lines > 0 {
		m.status = ""
	}
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForLine returns a command that blocks for the next feed line.
func (m Model) waitForLine() tea.Cmd {
	if m.feed == nil {
		return nil
	}
	feed := m.feed
	return func() tea.Msg {
		line, ok := <-feed.Lines()
		if !ok {
			return feedDoneMsg{err: feed.Err()}
		}
		return lineMsg(line)
	}
}

// refreshAlerts rebuilds the alert view when the log or the order changed.
// A dirty sort preference forces a rebuild and is consumed here.
func (m *Model) refreshAlerts() {
	if m.prefs.FetchOptDirty(prefs.AlertSort) {
		m.prefs.SetOptDirty(prefs.AlertSort, false)
		m.alerts.sorter.Invalidate()
	}
	m.alerts.refresh(m.sortKey())
}

// sortKey reads the alert order from prefs.
func (m Model) sortKey() telemetry.SortKey {
	v := m.prefs.FetchOpt(prefs.AlertSort)
	if v == "" {
		v = prefs.AlertSortDefault
	}
	return telemetry.ParseSortKey(v)
}

func (m Model) selectedNetwork() *tracker.Network {
	n, _ := m.store.SelectedNetwork().(*tracker.Network)
	return n
}

func (m Model) selectedClient() *tracker.Client {
	c, _ := m.store.SelectedClient().(*tracker.Client)
	return c
}

// visible evaluates a panel flag against its registered default.
func (m Model) visible(key string) bool {
	return m.prefs.Visible(key, prefs.DefaultFor(key))
}

// ActivePanel returns the panel being shown.
func (m Model) ActivePanel() Panel {
	return m.active
}

// SecondsSinceLine returns how long the feed has been quiet, or 0 before
// the first line.
func (m Model) SecondsSinceLine() int {
	if m.lastLine.IsZero() {
		return 0
	}
	return int(time.Since(m.lastLine).Seconds())
}

// syncViewport refreshes the viewport content for the active panel.
func (m *Model) syncViewport() {
	if !m.viewportReady {
		return
	}
	m.viewport.SetContent(m.renderPanel())
}
