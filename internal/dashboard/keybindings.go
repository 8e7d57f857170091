package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/rfdash/internal/prefs"
)

// Key bindings as constants for consistency.
const (
	KeyQuit        = "q"
	KeyQuitAlt     = "ctrl+c"
	KeyNextPanel   = "tab"
	KeyNetwork     = "1"
	KeyClient      = "2"
	KeyChannel     = "3"
	KeyAlerts      = "4"
	KeySelectPrev  = "up"
	KeySelectPrevK = "k"
	KeySelectNext  = "down"
	KeySelectNextJ = "j"
	KeyDetails     = "d"
	KeySignal      = "s"
	KeyPackets     = "p"
	KeyRetries     = "r"
	KeyTraffic     = "t"
	KeyNetworks    = "w"
	KeySummary     = "m"
	KeyCycleSort   = "o"
	KeyClearAlerts = "c"
	KeyCollapse    = "esc"
	KeyToggleHelp  = "?"
)

// HandleKeyMsg processes keyboard input.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && key == KeyCollapse {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyNextPanel:
		m.active = m.active.Next()
		return true, nil

	case KeyNetwork:
		m.active = PanelNetwork
		return true, nil

	case KeyClient:
		m.active = PanelClient
		return true, nil

	case KeyChannel:
		m.active = PanelChannel
		return true, nil

	case KeyAlerts:
		m.active = PanelAlerts
		return true, nil
	}

	switch m.active {
	case PanelNetwork, PanelClient:
		return m.handleDetailKey(key)
	case PanelChannel:
		return m.handleChannelKey(key)
	case PanelAlerts:
		return m.handleAlertKey(key)
	}
	return false, nil
}

// handleDetailKey moves the selection and toggles the detail panel flags.
func (m *Model) handleDetailKey(key string) (bool, tea.Cmd) {
	panel := m.network
	if m.active == PanelClient {
		panel = m.client
	}

	switch key {
	case KeySelectPrev, KeySelectPrevK, KeySelectNext, KeySelectNextJ:
		m.moveSelection(key == KeySelectNext || key == KeySelectNextJ)
		return true, nil
	case KeyDetails:
		m.toggle(panel.flags.details)
		return true, nil
	case KeySignal:
		m.toggle(panel.flags.signal)
		return true, nil
	case KeyPackets:
		m.toggle(panel.flags.packets)
		return true, nil
	case KeyRetries:
		m.toggle(panel.flags.retries)
		return true, nil
	}
	return false, nil
}

// moveSelection steps the cursor of the active detail panel. The next tick
// sees the new identity and restarts that panel's series; a clamped move
// leaves the selection and its history alone.
func (m *Model) moveSelection(down bool) {
	switch {
	case m.active == PanelNetwork && down:
		m.store.NextNetwork()
	case m.active == PanelNetwork:
		m.store.PrevNetwork()
	case down:
		m.store.NextClient()
	default:
		m.store.PrevClient()
	}
}

func (m *Model) handleChannelKey(key string) (bool, tea.Cmd) {
	flags := map[string]string{
		KeySignal:   prefs.ChanShowSignal,
		KeyPackets:  prefs.ChanShowPackets,
		KeyTraffic:  prefs.ChanShowTraffic,
		KeyNetworks: prefs.ChanShowNetwork,
		KeySummary:  prefs.ChanShowSummary,
	}
	flag, ok := flags[key]
	if !ok {
		return false, nil
	}
	m.toggle(flag)
	return true, nil
}

func (m *Model) handleAlertKey(key string) (bool, tea.Cmd) {
	switch key {
	case KeyCycleSort:
		next := m.sortKey().Next()
		m.prefs.SetOpt(prefs.AlertSort, next.String(), true)
		if err := m.prefs.Save(); err != nil {
			m.reportPrefsError(err)
		}
		m.refreshAlerts()
		return true, nil
	case KeyClearAlerts:
		m.alerts.clear()
		m.refreshAlerts()
		return true, nil
	}
	return false, nil
}

// toggle flips a panel flag and persists it.
func (m *Model) toggle(key string) {
	if _, err := m.prefs.Toggle(key, prefs.DefaultFor(key)); err != nil {
		m.reportPrefsError(err)
	}
}

func (m *Model) reportPrefsError(err error) {
	m.log.Warn("saving preferences: %v", err)
	m.status = "cannot save preferences"
}
