package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rfdash/internal/config"
	"github.com/rileyhilliard/rfdash/internal/logger"
	"github.com/rileyhilliard/rfdash/internal/proto"
	"github.com/rileyhilliard/rfdash/internal/source"
	"github.com/rileyhilliard/rfdash/internal/ui"
	"github.com/rileyhilliard/rfdash/internal/util"
)

// replayFlags are shared by the commands that read a feed and print a
// table once it ends.
type replayFlags struct {
	Source SourceFlags
	For    string
}

func addReplayFlags(cmd *cobra.Command, flags *replayFlags) {
	AddSourceFlags(cmd, &flags.Source)
	cmd.Flags().StringVar(&flags.For, "for", "", "stop reading after this long (e.g., 10s); live sources otherwise run until interrupted")
}

// replay reads the configured feed into the handlers that register
// installs. A positive window bounds the read; an interrupt ends it early
// without an error.
func replay(ctx context.Context, cfg *config.Config, window time.Duration, register func(d *proto.Dispatcher)) (*proto.Dispatcher, error) {
	src, err := source.New(cfg.Source)
	if err != nil {
		return nil, err
	}

	if window > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, window)
		defer cancel()
	}

	d := proto.NewDispatcher(logger.NewEnvLogger("[proto]"))
	register(d)

	err = source.ReadAll(ctx, src, func(line string) {
		// Bad records are counted and logged by the dispatcher.
		_ = d.Dispatch(line)
	})
	return d, err
}

// loadReplay loads the config with the replay flags applied and parses --for.
func loadReplay(flags *replayFlags) (*config.Config, time.Duration, error) {
	cfg, err := loadConfig(flags.Source.Apply)
	if err != nil {
		return nil, 0, err
	}
	window, err := ParseDuration("for", flags.For)
	if err != nil {
		return nil, 0, err
	}
	return cfg, window, nil
}

// printRecordStats writes the dispatcher counters as a muted footer.
func printRecordStats(out io.Writer, d *proto.Dispatcher) {
	line := fmt.Sprintf("%d %s, %d short, %d bad",
		d.Handled, util.Pluralize(d.Handled, "record", "records"), d.Short, d.Failed)
	fmt.Fprintln(out, lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(line))
}
