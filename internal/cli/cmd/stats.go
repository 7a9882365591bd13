package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/adshield/internal/application/usecase"
	"github.com/bnema/adshield/internal/cli/styles"
)

var (
	statsSince  time.Duration
	statsTop    int
	statsRecent int
	statsPrune  bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show what the shield blocked",
	Long: `Summarize the recorded block events.

Events are recorded by the proxy when database.record_events is on.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().DurationVarP(&statsSince, "since", "s", 0, "only count events this recent (e.g. 24h)")
	statsCmd.Flags().IntVarP(&statsTop, "top", "t", usecase.DefaultTopHosts, "number of hosts to rank")
	statsCmd.Flags().IntVarP(&statsRecent, "recent", "n", usecase.DefaultRecentEvents, "number of latest events to list")
	statsCmd.Flags().BoolVar(&statsPrune, "prune", false, "delete events older than database.retention_days first")
}

func runStats(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if statsPrune {
		removed, err := app.StatsUC.Prune(app.Ctx(), app.Config.Database.RetentionDays)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, app.Theme.RenderInfo(fmt.Sprintf("Pruned %d events", removed)))
	}

	result, err := app.StatsUC.Execute(app.Ctx(), usecase.StatsInput{
		Since:  statsSince,
		Top:    statsTop,
		Recent: statsRecent,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, styles.NewStatsRenderer(app.Theme).Render(result.Stats, result.Recent, result.Since))
	return nil
}
