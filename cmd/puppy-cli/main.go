package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/futig/puppy-picker/internal/cli"
	"github.com/futig/puppy-picker/internal/config"
	"github.com/futig/puppy-picker/internal/integration/recommender"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	serverURL string
	timeout   time.Duration
	verbose   bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "puppy-cli",
	Short: "Find the dog breed that fits your lifestyle",
	Long: `Answer seven questions in the terminal and get a breed recommendation.

Answers are sent to the analyse endpoint of a running puppy-picker server.
Type the option number to answer, b to go back, s to submit, r to start over and q to quit.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logCfg := zap.NewProductionConfig()
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = logCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runQuestionnaire,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "puppy-picker server URL")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 60*time.Second, "request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func runQuestionnaire(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connector := recommender.NewConnector(config.HTTPClientConfig{
		Url:            serverURL,
		RequestTimeout: timeout,
	}, logger)

	session := cli.NewSession(connector, cmd.InOrStdin(), cmd.OutOrStdout())
	if err := session.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
