package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rfdash/internal/errors"
	"github.com/rileyhilliard/rfdash/pkg/sshutil"
)

func TestHostItem(t *testing.T) {
	item := hostItem{host: sshutil.HostEntry{
		Alias:    "sensor",
		Hostname: "10.0.0.5",
		User:     "pi",
	}}

	assert.Equal(t, "sensor", item.Title())
	assert.Contains(t, item.Description(), "10.0.0.5")

	filter := item.FilterValue()
	assert.Contains(t, filter, "sensor")
	assert.Contains(t, filter, "10.0.0.5")
	assert.Contains(t, filter, "pi")
}

func TestHostItem_AliasOnly(t *testing.T) {
	item := hostItem{host: sshutil.HostEntry{Alias: "bare"}}
	assert.Equal(t, "bare", item.FilterValue())
}

func TestNewHostPickerModel(t *testing.T) {
	model := NewHostPickerModel([]sshutil.HostEntry{{Alias: "a"}, {Alias: "b"}})

	assert.Len(t, model.hosts, 2)
	assert.Nil(t, model.Selected())
	assert.False(t, model.quitting)
}

func TestHostPickerModel_EnterSelects(t *testing.T) {
	model := NewHostPickerModel([]sshutil.HostEntry{{Alias: "a"}, {Alias: "b"}})

	next, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	picked := next.(HostPickerModel)

	require.NotNil(t, picked.Selected())
	assert.Equal(t, "a", picked.Selected().Alias)
	assert.NotNil(t, cmd)
	assert.Empty(t, picked.View())
}

func TestHostPickerModel_EscCancels(t *testing.T) {
	model := NewHostPickerModel([]sshutil.HostEntry{{Alias: "a"}, {Alias: "b"}})

	next, _ := model.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, next.(HostPickerModel).Selected())
}

func TestPickHost_NoHosts(t *testing.T) {
	_, err := PickHostWithOutput(nil, nil, nil)
	assert.True(t, errors.IsCode(err, errors.ErrSSH))
}

func TestPickHost_SingleHostSkipsPrompt(t *testing.T) {
	alias, err := PickHostWithOutput([]sshutil.HostEntry{{Alias: "only"}}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "only", alias)
}
