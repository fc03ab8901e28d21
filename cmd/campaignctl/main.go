package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logLevel string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "campaignctl",
		Short:         "Operate the marketing campaign generator from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newExtractCmd(),
		newGenerateCmd(),
		newRecentCmd(),
		newMigrateCmd(),
	)
	return root
}

func newLogger() (*zap.Logger, error) {
	return logging.New(logLevel, "console")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
