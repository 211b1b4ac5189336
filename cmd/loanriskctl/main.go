// Command loanriskctl holds the offline tooling around loanriskd: model
// training, database maintenance, credentials and event inspection.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/observability"
)

var (
	version = "v0.0.1-default"
	commit  = ""

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs",
	}
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "loanriskctl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:            "loanriskctl",
		Version:         fmt.Sprintf("%s (commit: %s)", version, commit),
		Usage:           "Tooling for the loan default prediction service",
		HideHelpCommand: true,
		Flags:           []cli.Flag{debugFlag},
		Commands: []*cli.Command{
			trainModelCmd(),
			trainUrbanizationCmd(),
			migrateCmd(),
			importDatasetCmd(),
			predictionsCmd(),
			issueTokenCmd(),
			genCertsCmd(),
			tailEventsCmd(),
		},
	}
}

// newLogger writes text logs to stderr so stdout stays parseable.
func newLogger(cmd *cli.Command) *slog.Logger {
	level := "info"
	if cmd.Root().Bool(debugFlag.Name) {
		level = "debug"
	}
	return observability.InitLogger(observability.LogConfig{
		Level:       level,
		Format:      "text",
		ServiceName: "loanriskctl",
		Output:      os.Stderr,
	})
}
