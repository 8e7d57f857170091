package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rfdash/internal/proto"
	"github.com/rileyhilliard/rfdash/internal/tracker"
)

// resetFlags clears package-level flag state between command runs.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		cfgFile, noColor = "", false
		versionShort = false
		watchSource, watchPickHost, watchRefresh, watchPrefs = SourceFlags{}, false, "", ""
		channelsFlags = replayFlags{}
		alertsFlags, alertsSort, alertsPick = replayFlags{}, "", false
		alertsBacklog = tracker.DefaultAlertBacklog
	}
	reset()
	t.Cleanup(func() {
		reset()
		lipgloss.SetColorProfile(termenv.Ascii)
	})
}

// runCLI executes rootCmd with args and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// testWorkspace writes a config whose prefs live in a temp dir and returns
// the config path and the dir.
func testWorkspace(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".rfdash.yaml")
	content := "version: 1\nprefs: " + filepath.Join(dir, "prefs.yaml") + "\noutput:\n  color: never\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	return cfgPath, dir
}

// writeFeed writes protocol lines to a file in dir.
func writeFeed(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, "feed.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func channelRecord(channel, packets string) string {
	return proto.FormatLine("CHANNEL",
		channel, "2000000", packets, "12", "0", "4096", "1024", "4", "1",
		"-45", "0", "-92", "0",
	)
}

func alertRecord(sec, header, bssid, text string) string {
	return proto.FormatLine("ALERT", sec, "0", header, bssid, text)
}
