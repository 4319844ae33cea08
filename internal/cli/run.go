/*
PURPOSE:
  Defines the 'run' subcommand (also the root command's default action).
  Probes the selected models and saves the run summary.

REQUIREMENTS:
  User-specified:
  - No arguments: probe the whole catalog.
  - --list prints the catalog without probing.
  - --google/--anthropic/--mistral/--deepseek restrict by provider.
  - Any other arguments are an explicit model list.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config.
  - --pick offers an interactive checklist over the resolved models.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Runner
  - Uses: internal/config, internal/catalog, internal/picker

ERROR HANDLING:
  - Returns error if config load fails, the selection is ambiguous or the
    gateway is unreachable. Per-model failures are part of the report.

IMPLEMENTATION RULES:
  - Logic: Load Config -> Override -> Resolve -> Runner.Run -> Persist.

USAGE:
  gateway-probe run --google
*/

package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/daryltucker/gateway-probe/internal/catalog"
	"github.com/daryltucker/gateway-probe/internal/config"
	"github.com/daryltucker/gateway-probe/internal/engine"
	"github.com/daryltucker/gateway-probe/internal/output"
	"github.com/daryltucker/gateway-probe/internal/picker"
)

// probeOptions holds the flags shared by the root command and `run`.
type probeOptions struct {
	global *globalOptions

	list      bool
	google    bool
	anthropic bool
	mistral   bool
	deepseek  bool
	provider  string
	pick      bool

	url         string
	prompt      string
	promptFile  string
	outputDir   string
	noSave      bool
	noHistory   bool
	csv         bool
	metricsFile string
	delay       time.Duration

	// ask replaces the interactive prompt in tests.
	ask picker.AskFunc
}

func (o *probeOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&o.list, "list", false, "Print the model catalog and exit")
	f.BoolVar(&o.google, "google", false, "Probe only Google models (gemini, imagen, veo)")
	f.BoolVar(&o.anthropic, "anthropic", false, "Probe only Anthropic models (claude)")
	f.BoolVar(&o.mistral, "mistral", false, "Probe only Mistral models (mistral, magistral, pixtral, codestral)")
	f.BoolVar(&o.deepseek, "deepseek", false, "Probe only DeepSeek models")
	f.StringVar(&o.provider, "provider", "", "Probe only one provider family: "+strings.Join(catalog.Families(), ", "))
	f.BoolVar(&o.pick, "pick", false, "Choose the models to probe interactively")

	f.StringVar(&o.url, "url", "", "Gateway base URL (overrides config)")
	f.StringVar(&o.prompt, "prompt", "", "Test prompt (overrides config)")
	f.StringVarP(&o.promptFile, "prompt-file", "p", "", "Path to a file containing the prompt (overrides config)")
	f.StringVarP(&o.outputDir, "output-dir", "o", "", "Output directory for result files")
	f.BoolVar(&o.noSave, "no-save", false, "Do not write the JSON result file")
	f.BoolVar(&o.noHistory, "no-history", false, "Do not record the run in the history database")
	f.BoolVar(&o.csv, "csv", false, "Also write a CSV file with one row per model")
	f.StringVar(&o.metricsFile, "metrics-file", "", "Write Prometheus metrics for the run to this file")
	f.DurationVar(&o.delay, "delay", 0, "Pause between probes (overrides config)")
}

func newRunCmd(g *globalOptions) *cobra.Command {
	o := &probeOptions{global: g}
	cmd := &cobra.Command{
		Use:   "run [MODEL...]",
		Short: "Probe every selected model through the gateway",
		Long: `Sends the test prompt to each selected model through POST /api/ask-ai,
strictly one at a time, and classifies every outcome as success, error,
timeout, connection_error or unexpected_error.

The run aborts with a non-zero exit status, before any probe, when the
gateway's /api/models endpoint does not answer 200 within the connect timeout.`,
		Example: `  # Probe the whole catalog
  gateway-probe run

  # Only Google models, against another gateway
  gateway-probe run --google --url http://gateway:3001

  # Explicit models (not checked against the catalog)
  gateway-probe run claude-4-sonnet my-custom-model

  # Print the catalog
  gateway-probe run --list`,
		Args: cobra.ArbitraryArgs,
		RunE: o.run,
	}
	o.addFlags(cmd)
	return cmd
}

// applyOverrides copies flag values onto cfg.
func (o *probeOptions) applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	if o.url != "" {
		cfg.BaseURL = o.url
	}
	if o.prompt != "" {
		cfg.Prompt = o.prompt
	}
	if o.promptFile != "" {
		data, err := os.ReadFile(o.promptFile)
		if err != nil {
			return fmt.Errorf("failed to read prompt file: %w", err)
		}
		cfg.Prompt = string(data)
	}
	if o.outputDir != "" {
		cfg.OutputDir = o.outputDir
	}
	if o.noSave {
		cfg.Save = false
	}
	if o.noHistory {
		cfg.HistoryPath = ""
	}
	if o.csv {
		cfg.CSV = true
	}
	if o.metricsFile != "" {
		cfg.MetricsFile = o.metricsFile
	}
	if cmd.Flags().Changed("delay") {
		cfg.Delay = o.delay
	}
	return cfg.Validate()
}

// selection turns the filter flags and arguments into a catalog selection.
func (o *probeOptions) selection(args []string) (catalog.Selection, error) {
	var families []string
	for name, set := range map[string]bool{
		"google":    o.google,
		"anthropic": o.anthropic,
		"mistral":   o.mistral,
		"deepseek":  o.deepseek,
	} {
		if set {
			families = append(families, name)
		}
	}
	if o.provider != "" {
		families = append(families, o.provider)
	}
	if len(families) > 1 {
		return catalog.Selection{}, fmt.Errorf("only one provider filter may be used at a time")
	}

	sel := catalog.Selection{Models: args}
	if len(families) == 1 {
		sel.Provider = families[0]
	}
	return sel, nil
}

func (o *probeOptions) run(cmd *cobra.Command, args []string) error {
	// 1. Load Config
	cfg, err := o.global.loadConfig()
	if err != nil {
		return err
	}

	// 2. Overrides
	if err := o.applyOverrides(cmd, cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	cat := cfg.Catalog()
	if o.list {
		output.NewReporter(out).Catalog(cat.Entries())
		return nil
	}

	// 3. Resolution
	sel, err := o.selection(args)
	if err != nil {
		return err
	}
	ids, err := cat.Resolve(sel)
	if err != nil {
		return err
	}
	if o.pick {
		if ids, err = picker.Pick(ids, o.ask); err != nil {
			return err
		}
	}

	cmd.SilenceUsage = true
	fmt.Fprintf(out, "🤖 AI Models Comprehensive Test Suite\n%s\n", strings.Repeat("=", 50))

	// 4. Execution
	r := engine.NewRunner(cfg, out)
	sum, runErr := r.Run(cmd.Context(), ids)
	if sum != nil {
		r.Persist(sum)
	}
	if runErr != nil {
		return runErr
	}
	r.Report.Done(sum)
	return nil
}
