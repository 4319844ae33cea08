/*
PURPOSE:
  Defines the 'config init' subcommand.
  Writes the embedded, annotated example configuration to disk.

ERROR HANDLING:
  - Refuses to overwrite an existing file unless --force is given.

ARCHITECTURE INTEGRATION:
  - Uses: internal/assets (ExampleConfig)

USAGE:
  gateway-probe config init
  gateway-probe config init ~/.config/gateway-probe.yaml --force
*/

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daryltucker/gateway-probe/internal/assets"
	"github.com/daryltucker/gateway-probe/internal/config"
	"github.com/daryltucker/gateway-probe/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the gateway-probe configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write an annotated example config (default ./" + config.DefaultFiles[0] + ")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := config.DefaultFiles[0]
			if len(args) == 1 {
				target = args[0]
			}

			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if dir := filepath.Dir(target); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}
			if err := os.WriteFile(target, assets.ExampleConfig, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}

			output.Logger.Info("Wrote example config", "path", target)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}
