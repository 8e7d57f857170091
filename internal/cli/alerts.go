package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rfdash/internal/config"
	"github.com/rileyhilliard/rfdash/internal/errors"
	"github.com/rileyhilliard/rfdash/internal/prefs"
	"github.com/rileyhilliard/rfdash/internal/proto"
	"github.com/rileyhilliard/rfdash/internal/telemetry"
	"github.com/rileyhilliard/rfdash/internal/tracker"
	"github.com/rileyhilliard/rfdash/internal/ui"
	"github.com/rileyhilliard/rfdash/internal/util"
)

var (
	alertsFlags   replayFlags
	alertsSort    string
	alertsPick    bool
	alertsBacklog int
)

// alertsCmd prints the sorted alert list
var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Print the alert list",
	Long: `Read ALERT records from the feed and print the most recent ones, sorted,
once the feed ends.

Without --sort the order saved by the dashboard is used.

Sort orders: latest (newest first), time (oldest first), type, bssid.

Examples:
  rfdash alerts --file capture.log
  rfdash alerts --file capture.log --sort type
  rfdash alerts --address capture.lan:2501 --for 30s --pick`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, window, err := loadReplay(&alertsFlags)
		if err != nil {
			return err
		}

		key, err := alertSortKey(cfg)
		if err != nil {
			return err
		}

		alerts := tracker.NewAlertLog(alertsBacklog)
		d, err := replay(cmd.Context(), cfg, window, func(d *proto.Dispatcher) {
			d.Register("ALERT", proto.AlertFields, alerts.Apply)
		})
		if err != nil {
			return err
		}

		var sorter telemetry.AlertSorter
		view, _ := sorter.Refresh(alerts.Alerts(), key)

		out := cmd.OutOrStdout()
		if len(view) == 0 {
			fmt.Fprintln(out, "No alerts")
		} else {
			fmt.Fprintln(out, renderAlertTable(view))
		}
		printRecordStats(out, d)
		return nil
	},
}

func init() {
	addReplayFlags(alertsCmd, &alertsFlags)
	alertsCmd.Flags().StringVar(&alertsSort, "sort", "", "sort order: latest, time, type, bssid")
	alertsCmd.Flags().BoolVar(&alertsPick, "pick", false, "choose the sort order interactively")
	alertsCmd.Flags().IntVar(&alertsBacklog, "backlog", tracker.DefaultAlertBacklog, "number of alerts to keep")
	rootCmd.AddCommand(alertsCmd)
}

// alertSortKey resolves the order from --pick, --sort, or the saved
// dashboard preference, in that order.
func alertSortKey(cfg *config.Config) (telemetry.SortKey, error) {
	key := savedSortKey(cfg.Prefs)
	if alertsSort != "" {
		var err error
		if key, err = parseSortFlag(alertsSort); err != nil {
			return key, err
		}
	}

	if alertsPick {
		if !ui.IsTerminal(os.Stdin) {
			return key, errors.New(errors.ErrView,
				"--pick needs a terminal",
				"Use --sort instead.")
		}
		return pickSortKey(key)
	}
	return key, nil
}

// parseSortFlag resolves --sort, suggesting the closest name on a typo.
func parseSortFlag(s string) (telemetry.SortKey, error) {
	if key, ok := telemetry.LookupSortKey(s); ok {
		return key, nil
	}

	hint := "Valid orders: " + util.JoinOrNone(telemetry.SortKeyNames)
	if similar := util.SuggestSimilar(s, telemetry.SortKeyNames, 3); len(similar) > 0 {
		hint = fmt.Sprintf("Did you mean '%s'? %s", similar[0], hint)
	}
	return telemetry.SortLatest, errors.New(errors.ErrConfig, "Unknown sort order: "+s, hint)
}

// savedSortKey reads the dashboard's alert order. Unreadable prefs fall
// back to the default order.
func savedSortKey(path string) telemetry.SortKey {
	v := prefs.AlertSortDefault
	if store, err := prefs.Open(path); err == nil {
		if saved := store.FetchOpt(prefs.AlertSort); saved != "" {
			v = saved
		}
	}
	return telemetry.ParseSortKey(v)
}

// sortLabels describe each order in the picker.
var sortLabels = map[telemetry.SortKey]string{
	telemetry.SortLatest:   "Latest first",
	telemetry.SortTime:     "Oldest first",
	telemetry.SortCategory: "Alert type",
	telemetry.SortOrigin:   "BSSID",
}

// sortOptions builds the picker menu in cycle order.
func sortOptions() []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(telemetry.SortKeys))
	for _, k := range telemetry.SortKeys {
		options = append(options, huh.NewOption(sortLabels[k], k.String()))
	}
	return options
}

// pickSortKey shows the sort menu with current preselected. Cancelling
// keeps current.
func pickSortKey(current telemetry.SortKey) (telemetry.SortKey, error) {
	selected := current.String()
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sort alerts by").
				Options(sortOptions()...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return current, nil
		}
		return current, errors.WrapWithCode(err, errors.ErrView, "Sort picker failed", "Use --sort instead.")
	}
	return telemetry.ParseSortKey(selected), nil
}

// renderAlertTable renders alerts with columns fitted to content.
func renderAlertTable(view []*telemetry.Alert) string {
	rows := make([][]string, len(view))
	for i, a := range view {
		rows[i] = tracker.AlertRow(a)
	}
	return ui.RenderSimpleTable(ui.FitColumns(tracker.AlertColumns, rows, 60), rows)
}
