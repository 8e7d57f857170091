package cli

import (
	"context"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rfdash/internal/config"
	"github.com/rileyhilliard/rfdash/internal/dashboard"
	"github.com/rileyhilliard/rfdash/internal/errors"
	"github.com/rileyhilliard/rfdash/internal/logger"
	"github.com/rileyhilliard/rfdash/internal/prefs"
	"github.com/rileyhilliard/rfdash/internal/source"
	"github.com/rileyhilliard/rfdash/internal/ui"
	"github.com/rileyhilliard/rfdash/pkg/sshutil"
)

// debugLogFile receives log output while the dashboard owns the terminal.
const debugLogFile = "rfdash-debug.log"

var (
	watchSource   SourceFlags
	watchPickHost bool
	watchRefresh  string
	watchPrefs    string
)

// watchCmd opens the live dashboard
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the live dashboard",
	Long: `Open the live dashboard on the configured feed.

Panels: 1 network, 2 client, 3 channels, 4 alerts. Press ? for keys.
Panel toggles and the alert order are saved to the prefs file.

Set RFDASH_DEBUG=1 to write logs to rfdash-debug.log.

Examples:
  rfdash watch
  rfdash watch --address capture.lan:2501
  rfdash watch --url ws://capture.lan:2501/eventbus
  rfdash watch --host sensor --command "nc localhost 2501"
  rfdash watch --pick-host --command "nc localhost 2501"
  rfdash watch --file capture.log --refresh 500ms`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(cmd.Context())
	},
}

func init() {
	AddSourceFlags(watchCmd, &watchSource)
	watchCmd.Flags().BoolVar(&watchPickHost, "pick-host", false, "choose the SSH host from ~/.ssh/config")
	watchCmd.Flags().StringVar(&watchRefresh, "refresh", "", "panel refresh interval (e.g., 1s, 500ms)")
	watchCmd.Flags().StringVar(&watchPrefs, "prefs", "", "preferences file (overrides config)")
	rootCmd.AddCommand(watchCmd)
}

// watchCommand runs the dashboard until the user quits.
func watchCommand(ctx context.Context) error {
	if !ui.IsTerminal(os.Stdout) {
		return errors.New(errors.ErrView,
			"The dashboard needs a terminal",
			"Use 'rfdash channels' or 'rfdash alerts' for plain output.")
	}

	if watchPickHost {
		alias, err := pickSSHHost()
		if err != nil {
			return err
		}
		if alias == "" {
			return nil
		}
		watchSource.Host = alias
	}

	cfg, err := loadConfig(applyWatchFlags)
	if err != nil {
		return err
	}

	store, err := prefs.Open(cfg.Prefs)
	if err != nil {
		return err
	}

	src, err := source.New(cfg.Source)
	if err != nil {
		return err
	}

	restore, err := setupLogging()
	if err != nil {
		return err
	}
	defer restore()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	feed := source.Start(ctx, src, logger.NewEnvLogger("[source]"))
	model := dashboard.NewModel(dashboard.Options{
		Feed:     feed,
		Prefs:    store,
		Interval: cfg.Refresh,
		History:  cfg.History,
		Log:      logger.NewEnvLogger("[proto]"),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()

	// Stop the feed and release SSH resources.
	cancel()
	sshutil.CloseAgent()

	return err
}

// applyWatchFlags layers the watch flags over the loaded config.
func applyWatchFlags(cfg *config.Config) error {
	if err := watchSource.Apply(cfg); err != nil {
		return err
	}

	refresh, err := ParseDuration("refresh", watchRefresh)
	if err != nil {
		return err
	}
	if refresh > 0 {
		cfg.Refresh = refresh
	}

	if watchPrefs != "" {
		cfg.Prefs = config.ExpandTilde(watchPrefs)
	}
	return nil
}

// pickSSHHost lists ~/.ssh/config aliases and lets the user choose one.
// An empty alias means the user cancelled.
func pickSSHHost() (string, error) {
	hosts, err := sshutil.ListHosts()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrSSH,
			"Cannot read ~/.ssh/config",
			"Pass the host with --host instead.")
	}
	return ui.PickHost(hosts)
}

// setupLogging keeps log output off the dashboard. With RFDASH_DEBUG set it
// goes to debugLogFile, otherwise it is discarded. The returned func
// restores stderr logging.
func setupLogging() (func(), error) {
	if logger.DebugEnabled() {
		f, err := tea.LogToFile(debugLogFile, "rfdash")
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot open "+debugLogFile,
				"Check write permissions in the current directory, or unset RFDASH_DEBUG.")
		}
		return func() {
			f.Close()
			log.SetOutput(os.Stderr)
		}, nil
	}

	log.SetOutput(io.Discard)
	return func() { log.SetOutput(os.Stderr) }, nil
}
