/*
PURPOSE:
  Defines the 'history' subcommand.
  Lists recorded probe runs and shows a single recorded run in full.

REQUIREMENTS:
  User-specified:
  - Compare earlier runs without opening result files.

  Implementation-discovered:
  - Runs are recorded by the engine after each run; this command only reads.
  - 'show --status' narrows the per-model lines to one outcome.

ARCHITECTURE INTEGRATION:
  - Uses: internal/history (Store), internal/output (Reporter)

ERROR HANDLING:
  - Disabled history (empty history_path) is an error.
  - Unknown run IDs and unknown statuses are errors.

USAGE:
  gateway-probe history -n 5
  gateway-probe history show 3f6c... --status timeout
*/

package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/daryltucker/gateway-probe/internal/config"
	"github.com/daryltucker/gateway-probe/internal/history"
	"github.com/daryltucker/gateway-probe/internal/model"
	"github.com/daryltucker/gateway-probe/internal/output"
)

func openHistory(cfg *config.Config) (*history.Store, error) {
	if cfg.HistoryPath == "" {
		return nil, fmt.Errorf("history is disabled (history_path is empty)")
	}
	st, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history %s: %w", cfg.HistoryPath, err)
	}
	return st, nil
}

func newHistoryCmd(g *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded probe runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			st, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			entries, err := st.Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tRUN ID\tGATEWAY\tWORKING\tRATE")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%.1f%%\n",
					e.Timestamp.Local().Format(time.DateTime), e.RunID, e.BaseURL, e.Successful, e.Total, e.SuccessRate)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show (0 for all)")
	cmd.AddCommand(newHistoryShowCmd(g))
	return cmd
}

func newHistoryShowCmd(g *globalOptions) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Print the per-model results and summary of one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := model.Status(strings.ToLower(status))
			if status != "" && !filter.Valid() {
				known := make([]string, len(model.AllStatuses))
				for i, s := range model.AllStatuses {
					known[i] = string(s)
				}
				return fmt.Errorf("unknown status %q (known: %s)", status, strings.Join(known, ", "))
			}

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			st, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			sum, ok, err := st.Get(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no recorded run with id %s", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s against %s at %s\n",
				sum.RunID, sum.BaseURL, sum.Timestamp.Local().Format(time.DateTime))

			rep := output.NewReporter(out)
			for _, res := range sum.Results {
				if status != "" && res.Status != filter {
					continue
				}
				rep.ProbeDone(res)
			}
			rep.Summary(sum)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only list models with this outcome")
	return cmd
}
