/*
PURPOSE:
  Defines the root Cobra command for the Gateway Probe CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Running the binary with no arguments probes the full catalog.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Positional arguments on the root command are model identifiers, so the
    root shares the probe flags with `run`.
  - The tree is built by a constructor so tests get fresh flag state.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/gateway-probe/main.go
  - Calls: Child commands (run, status, gemini, history, config)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.

RELATED FILES:
  - cmd/gateway-probe/main.go
  - internal/cli/run.go
*/

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/daryltucker/gateway-probe/internal/config"
	"github.com/daryltucker/gateway-probe/internal/output"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile   string
	logLevel  string
	logFormat string
}

// loadConfig loads the configuration selected by --config.
func (g *globalOptions) loadConfig() (*config.Config, error) {
	return config.Load(g.cfgFile)
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	probe := &probeOptions{global: g}

	cmd := &cobra.Command{
		Use:   "gateway-probe [MODEL...]",
		Short: "Manual verification tool for AI gateway endpoints",
		Long: `Probes an AI gateway's /api/models and /api/ask-ai endpoints.

Without a subcommand it behaves like 'run': every catalog model (or the
models given as arguments) gets the test prompt, one after another.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := output.NewLogger(cmd.ErrOrStderr(), g.logLevel, g.logFormat)
			if err != nil {
				return err
			}
			output.SetLogger(l)
			return nil
		},
		RunE: probe.run,
	}

	cmd.PersistentFlags().StringVar(&g.cfgFile, "config", "", "config file (default is ./gateway_probe.yaml)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "log format: text or json")
	probe.addFlags(cmd)

	cmd.AddCommand(
		newRunCmd(g),
		newStatusCmd(g),
		newGeminiCmd(g),
		newHistoryCmd(g),
		newConfigCmd(),
	)
	return cmd
}

// Execute executes the root command.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
