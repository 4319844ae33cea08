/*
PURPOSE:
  Defines the 'status' subcommand.
  Shows what the gateway reports about its models, grouped by provider,
  then sends one short prompt to the first connected model.

REQUIREMENTS:
  User-specified:
  - Per model: connected mark, name, id, availability, context length.
  - Quick end-to-end check on one working model.

  Implementation-discovered:
  - Targets status_url, which defaults to a different port than run's base_url.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Gateway (ListModels, Ask)

ERROR HANDLING:
  - A gateway that cannot be reached or answers non-200 is an error.
  - The smoke test outcome is printed, never returned.

USAGE:
  gateway-probe status --url http://localhost:3000
*/

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/daryltucker/gateway-probe/internal/engine"
	"github.com/daryltucker/gateway-probe/internal/output"
)

const (
	smokePrompt  = `Say "Hello from AI model test!"`
	smokeTimeout = 30 * time.Second
)

func newStatusCmd(g *globalOptions) *cobra.Command {
	var url string
	var skipSmoke bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the gateway's model connection status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if url != "" {
				cfg.StatusURL = url
			}
			cmd.SilenceUsage = true

			gw := engine.NewGateway(cfg.StatusURL)
			list, err := gw.ListModels(cmd.Context(), cfg.StatusTimeout)
			if err != nil {
				return fmt.Errorf("cannot read model status from %s: %w", cfg.StatusURL, err)
			}

			rep := output.NewReporter(cmd.OutOrStdout())
			rep.ModelStatus(list, time.Now())

			if skipSmoke {
				return nil
			}
			m, ok := output.FirstConnected(list)
			if !ok {
				output.Logger.Info("No connected model to test", "url", cfg.StatusURL)
				return nil
			}
			code, body, err := gw.Ask(cmd.Context(), m.ID, smokePrompt, smokeTimeout)
			rep.SmokeTest(m, code, body, err)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Gateway base URL (overrides status_url)")
	cmd.Flags().BoolVar(&skipSmoke, "no-test", false, "Skip the single-model test")
	return cmd
}
