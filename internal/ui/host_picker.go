package ui

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rfdash/internal/errors"
	"github.com/rileyhilliard/rfdash/pkg/sshutil"
)

// hostItem implements list.Item for the Bubbles list component.
type hostItem struct {
	host sshutil.HostEntry
}

func (i hostItem) Title() string {
	return i.host.Alias
}

func (i hostItem) Description() string {
	return i.host.Description()
}

func (i hostItem) FilterValue() string {
	values := []string{i.host.Alias}
	if i.host.Hostname != "" {
		values = append(values, i.host.Hostname)
	}
	if i.host.User != "" {
		values = append(values, i.host.User)
	}
	return strings.Join(values, " ")
}

// HostPickerModel is a Bubble Tea model for selecting an SSH host.
type HostPickerModel struct {
	list     list.Model
	hosts    []sshutil.HostEntry
	selected *sshutil.HostEntry
	quitting bool
}

type hostPickerKeyMap struct {
	Enter key.Binding
	Quit  key.Binding
}

var hostPickerKeys = hostPickerKeyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q/esc", "cancel"),
	),
}

// NewHostPickerModel creates a picker over hosts.
func NewHostPickerModel(hosts []sshutil.HostEntry) HostPickerModel {
	items := make([]list.Item, len(hosts))
	for i, h := range hosts {
		items[i] = hostItem{host: h}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorPrimary).
		BorderForeground(ColorSecondary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorMuted)

	l := list.New(items, delegate, 80, 15)
	l.Title = "Select the capture host"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 0, 1, 0)
	l.Styles.HelpStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	return HostPickerModel{
		list:  l,
		hosts: hosts,
	}
}

// Init implements tea.Model.
func (m HostPickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m HostPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Keys belong to the filter input while filtering.
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, hostPickerKeys.Enter):
			if item, ok := m.list.SelectedItem().(hostItem); ok {
				m.selected = &item.host
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, hostPickerKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m HostPickerModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// Selected returns the selected host, or nil if cancelled.
func (m HostPickerModel) Selected() *sshutil.HostEntry {
	return m.selected
}

// PickHost displays an interactive host picker and returns the chosen
// alias, or "" if the user cancels.
func PickHost(hosts []sshutil.HostEntry) (string, error) {
	return PickHostWithOutput(hosts, os.Stdout, os.Stdin)
}

// PickHostWithOutput displays the host picker using custom I/O.
func PickHostWithOutput(hosts []sshutil.HostEntry, output io.Writer, input io.Reader) (string, error) {
	if len(hosts) == 0 {
		return "", errors.New(errors.ErrSSH,
			"No hosts found in your SSH config",
			"Add a Host entry to ~/.ssh/config or pass the host with --host")
	}

	if len(hosts) == 1 {
		return hosts[0].Alias, nil
	}

	p := tea.NewProgram(
		NewHostPickerModel(hosts),
		tea.WithOutput(output),
		tea.WithInput(input),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrSSH, "Host picker failed",
			"Pass the host with --host instead")
	}

	if m, ok := finalModel.(HostPickerModel); ok && m.Selected() != nil {
		return m.Selected().Alias, nil
	}
	return "", nil
}
