package dashboard

import (
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rileyhilliard/rfdash/internal/proto"
)

func init() {
	// Pin the profile so rendered output is the same on every terminal.
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func networkLine(bssid string, last, packets int64) string {
	return proto.FormatLine("NETWORK",
		bssid, "0", "net-"+bssid, "Acme", "6", "1700000000", strconv.FormatInt(last, 10),
		"-50", "-95", "0", "0", "-40", "-90", "0", "0",
		"0", strconv.FormatInt(packets, 10), "0", "0", "2", "2048",
	)
}

func clientLine(mac, bssid string, last int64) string {
	return proto.FormatLine("CLIENT",
		mac, bssid, "4", "Widget", "6", "1700000000", strconv.FormatInt(last, 10),
		"-256", "0", "33", "4", "-256", "0", "40", "6",
		"10", "20", "0", "0", "1", "100",
	)
}

func channelLine(channel, signal int) string {
	return proto.FormatLine("CHANNEL",
		strconv.Itoa(channel), "1500000", "100", "10", "0", "2048", "512", "3", "2",
		strconv.Itoa(signal), "0", "-90", "0",
	)
}

func alertLine(sec int64, header, bssid, text string) string {
	return proto.FormatLine("ALERT", strconv.FormatInt(sec, 10), "0", header, bssid, text)
}

func feedLines(m Model, lines ...string) Model {
	for _, line := range lines {
		next, _ := m.Update(lineMsg(line))
		m = next.(Model)
	}
	return m
}

func tick(m Model) Model {
	next, _ := m.Update(tickMsg(time.Now()))
	return next.(Model)
}

func press(m Model, key string) Model {
	next, _ := m.Update(keyMsg(key))
	return next.(Model)
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
