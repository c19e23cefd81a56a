package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lb-conn/ekaer/application/usecases"
	"github.com/lb-conn/ekaer/setup"
)

var (
	configPath string
	verbose    bool

	cfg    *setup.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ekaer",
	Short: "Client for the EKAER trade card management service",
	Long: `ekaer queries, creates, modifies, finalizes and deletes EKAER trade cards.

Credentials are read from ekaer.yaml (or --config) and EKAER_* environment
variables, e.g. EKAER_USERNAME, EKAER_PASSWORD, EKAER_VAT_NUMBER and
EKAER_SECRET_KEY.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = setup.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Log.Level = zapcore.DebugLevel.String()
		}
		logger, err = setup.NewLogger(cfg.Log)
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
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path of the config file (default ./ekaer.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests and responses at debug level")

	rootCmd.AddCommand(queryCmd, listCmd)
	rootCmd.AddCommand(createCmd, modifyCmd, validateCmd, finalizeCmd, deleteCmd)
	rootCmd.AddCommand(signCmd)
}

// application builds the client for commands that talk to the service.
func application() (*usecases.Application, error) {
	return setup.NewSetup(cfg, logger)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
