package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/laiff-festival/internal/pkg/logger"
	"github.com/iliyamo/laiff-festival/internal/queue"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Run only the broker consumer that writes the order and broadcast logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("consumer starting", zap.String("log_dir", cfg.LogDir))
		err := queue.NewConsumer(cfg.BrokerURL, cfg.LogDir).Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}
