// Command laiff runs the festival API.  "serve" is the default; "schema"
// prepares the store and "consume" runs only the broker consumer.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/laiff-festival/internal/config"
	"github.com/iliyamo/laiff-festival/internal/pkg/logger"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "laiff",
	Short:         "LAIFF festival companion API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// a missing .env is fine; the environment may already be set
		_ = godotenv.Load()
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger.Set(logger.NewLogger(cfg.Env))
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, schemaCmd, consumeCmd)
}

func main() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		logger.Error("laiff exited", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
