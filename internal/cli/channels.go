package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rfdash/internal/proto"
	"github.com/rileyhilliard/rfdash/internal/telemetry"
	"github.com/rileyhilliard/rfdash/internal/ui"
)

var channelsFlags replayFlags

// channelsCmd prints the channel summary table
var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "Print the channel summary table",
	Long: `Read CHANNEL records from the feed and print the per-channel summary
once the feed ends.

Examples:
  rfdash channels --file capture.log
  rfdash channels --address capture.lan:2501 --for 10s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, window, err := loadReplay(&channelsFlags)
		if err != nil {
			return err
		}

		table := proto.NewChannelTable()
		d, err := replay(cmd.Context(), cfg, window, func(d *proto.Dispatcher) {
			d.Register("CHANNEL", proto.ChannelFields, table.Apply)
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		snap := telemetry.Aggregate(table.Channels)
		if snap.Len() == 0 {
			fmt.Fprintln(out, "No channel records seen")
		} else {
			fmt.Fprintln(out, renderChannelTable(snap))
		}
		printRecordStats(out, d)
		return nil
	},
}

func init() {
	addReplayFlags(channelsCmd, &channelsFlags)
	rootCmd.AddCommand(channelsCmd)
}

// renderChannelTable renders the summary rows with columns fitted to content.
func renderChannelTable(snap telemetry.ChannelSnapshot) string {
	rows := make([][]string, len(snap.Rows))
	for i, r := range snap.Rows {
		rows[i] = r
	}
	return ui.RenderSimpleTable(ui.FitColumns(telemetry.SummaryColumns, rows, 0), rows)
}
