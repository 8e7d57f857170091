package sshutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSSHConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestSplitTarget(t *testing.T) {
	tests := []struct {
		target           string
		user, host, port string
	}{
		{"sensor", "", "sensor", ""},
		{"pi@sensor", "pi", "sensor", ""},
		{"sensor:2222", "", "sensor", "2222"},
		{"pi@10.0.0.5:2200", "pi", "10.0.0.5", "2200"},
		{"sensor:", "", "sensor:", ""},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			user, host, port := splitTarget(tt.target)
			assert.Equal(t, tt.user, user)
			assert.Equal(t, tt.host, host)
			assert.Equal(t, tt.port, port)
		})
	}
}

func TestResolveFromConfig(t *testing.T) {
	t.Setenv("USER", "alice")
	t.Setenv(UserEnv, "")
	path := writeSSHConfig(t, `
Host sensor
  HostName 192.168.1.40
  Port 2222
  User kismet
  IdentityFile ~/.ssh/sensor_key
`)

	s := resolve("sensor", path)
	assert.Equal(t, "192.168.1.40", s.hostname)
	assert.Equal(t, "2222", s.port)
	assert.Equal(t, "kismet", s.user)
	assert.Equal(t, filepath.Join(homeDir(), ".ssh/sensor_key"), s.identityFile)
	assert.True(t, s.fromConfig)
	assert.Equal(t, "192.168.1.40:2222", s.address())
}

func TestResolveExplicitPartsWin(t *testing.T) {
	t.Setenv(UserEnv, "")
	path := writeSSHConfig(t, "Host sensor\n  User kismet\n  Port 2222\n")

	s := resolve("root@sensor:22", path)
	assert.Equal(t, "root", s.user)
	assert.Equal(t, "22", s.port)
}

func TestResolveWithoutConfig(t *testing.T) {
	t.Setenv("USER", "bob")
	t.Setenv(UserEnv, "")

	s := resolve("10.0.0.9", filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, "10.0.0.9", s.hostname)
	assert.Equal(t, "22", s.port)
	assert.Equal(t, "bob", s.user)
	assert.False(t, s.fromConfig)
}

func TestResolveUserOverride(t *testing.T) {
	t.Setenv(UserEnv, "ci")

	s := resolve("10.0.0.9", filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, "ci", s.user)
}

func TestReadConfigUntilMatch(t *testing.T) {
	path := writeSSHConfig(t, "Host a\n  User x\nMatch host b\n  User y\nHost c\n")

	content, line, err := readConfigUntilMatch(path)
	require.NoError(t, err)
	assert.Equal(t, 3, line)
	assert.NotContains(t, string(content), "Host c")

	s := resolve("c", path)
	assert.Equal(t, 3, s.matchLine)
	assert.False(t, s.fromConfig)
}

func TestListHostsFile(t *testing.T) {
	path := writeSSHConfig(t, `
Host *
  ServerAliveInterval 30
Host sensor-b sensor-a
  HostName 10.0.0.2
Host pi
  User pi
  Port 2200
Host pi
  User other
`)

	hosts, err := ListHostsFile(path)
	require.NoError(t, err)
	require.Len(t, hosts, 3)

	assert.Equal(t, "pi", hosts[0].Alias)
	assert.Equal(t, "user: pi, port: 2200", hosts[0].Description())
	assert.Equal(t, "sensor-a", hosts[1].Alias)
	assert.Equal(t, "10.0.0.2", hosts[1].Description())
	assert.Equal(t, "sensor-b", hosts[2].Alias)
}

func TestListHostsFileMissing(t *testing.T) {
	hosts, err := ListHostsFile(filepath.Join(t.TempDir(), "nope"))
	assert.NoError(t, err)
	assert.Empty(t, hosts)
}

func TestHostEntryDescriptionFallsBackToAlias(t *testing.T) {
	assert.Equal(t, "box", HostEntry{Alias: "box", Hostname: "box", Port: "22"}.Description())
}

func TestSuggestions(t *testing.T) {
	assert.Contains(t, dialSuggestion(errString("dial tcp: connection refused")), "Is SSH running")
	assert.Contains(t, dialSuggestion(errString("i/o timeout")), "timed out")
	assert.Contains(t, handshakeSuggestion(errString("ssh: unable to authenticate"), []string{"/k"}), "ssh-add")
	assert.Contains(t, handshakeSuggestion(errString("ssh: unable to authenticate"), nil), "ssh-add -l")
	assert.Contains(t, handshakeSuggestion(errString("host key mismatch"), nil), "Host key")
}

type errString string

func (e errString) Error() string { return string(e) }
