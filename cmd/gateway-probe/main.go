/*
PURPOSE:
  Entry point for the Gateway Probe application.
  Initializes the CLI root command and executes it.

REQUIREMENTS:
  User-specified:
  - Must serve as the single binary entry point.
  - Exit non-zero when the gateway cannot be reached.

  Implementation-discovered:
  - Uses cobra for CLI command management.
  - Ctrl-C cancels the in-flight probe through the command context.

ARCHITECTURE INTEGRATION:
  - Calls: internal/cli.Execute()

ERROR HANDLING:
  - Explicit error check on Execute(); exit code 1 on failure.

IMPLEMENTATION RULES:
  - Critical: Keep main() minimal. All logic belongs in internal/ packages.

USAGE:
  go build -o gateway-probe ./cmd/gateway-probe
  ./gateway-probe [command] [flags]
*/

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/daryltucker/gateway-probe/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
