package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rfdash/internal/config"
	"github.com/rileyhilliard/rfdash/internal/ui"
)

// Global flags
var (
	cfgFile string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "rfdash",
	Short: "Terminal dashboard for a wireless monitoring server",
	Long: `rfdash reads the line protocol of a wireless monitoring server and shows
networks, clients, channels and alerts as live terminal panels.

Examples:
  rfdash watch
  rfdash watch --address capture.lan:2501
  rfdash watch --pick-host
  rfdash channels --file capture.log
  rfdash alerts --file capture.log --sort type`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .rfdash.yaml, then ~/.config/rfdash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command. Interrupts cancel the command context so
// replay commands can print what they collected.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig finds and loads the config, lets the command override it,
// validates the result and applies the color mode.
func loadConfig(override func(cfg *config.Config) error) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}

	if override != nil {
		if err := override(cfg); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	mode := cfg.Output.Color
	if noColor {
		mode = ui.ColorNever
	}
	ui.SetColorMode(mode)

	return cfg, nil
}
