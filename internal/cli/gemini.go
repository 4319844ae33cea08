/*
PURPOSE:
  Defines the 'gemini' subcommand.
  Sends a prompt straight to the Gemini API, bypassing the gateway.

REQUIREMENTS:
  User-specified:
  - Tell a broken gateway apart from a broken upstream.

  Implementation-discovered:
  - The key comes from GEMINI_API_KEY (or .env), never from a flag.

ARCHITECTURE INTEGRATION:
  - Calls: internal/gemini.Client

USAGE:
  gateway-probe gemini "Say hello"
*/

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daryltucker/gateway-probe/internal/gemini"
)

func newGeminiCmd(g *globalOptions) *cobra.Command {
	var modelName, baseURL string

	cmd := &cobra.Command{
		Use:   "gemini PROMPT...",
		Short: "Send a prompt directly to the Gemini API, bypassing the gateway",
		Long: `Sends the prompt to the Gemini API with the key from GEMINI_API_KEY
(or gemini.api_key in the config file). Useful to tell a broken gateway
apart from a broken upstream.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if modelName != "" {
				cfg.Gemini.Model = modelName
			}
			cmd.SilenceUsage = true

			client, err := gemini.New(cmd.Context(), gemini.Options{
				APIKey:  cfg.Gemini.APIKey,
				Model:   cfg.Gemini.Model,
				BaseURL: baseURL,
			})
			if err != nil {
				return err
			}

			reply, err := client.Send(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("gemini request failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if reply.Text != "" {
				fmt.Fprintf(out, "Gemini: %s\n", reply.Text)
				return nil
			}
			fmt.Fprintf(out, "Unexpected response format: %s\n", reply.Raw)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelName, "model", "", "Gemini model (default from config: gemini-2.5-flash)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Override the Gemini API endpoint")
	return cmd
}
