package main

import (
	"context"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"online_queue/cmd/command"
	"online_queue/internal/config"
	"online_queue/internal/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	const description = "queuectl: administration of the online queue service"
	root := &cobra.Command{Use: "queuectl", Short: description, SilenceUsage: true}

	cfg, err := config.Load()
	if err != nil {
		log.WithContext(ctx).Fatal(err)
	}

	appLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.WithContext(ctx).Fatal(err)
	}

	root.AddCommand(
		command.MigrateCommand{Logger: appLogger}.Command(ctx, cfg),
		command.QueueCommand{Logger: appLogger}.Command(ctx, cfg),
		command.TokenCommand{Logger: appLogger}.Command(ctx, cfg),
	)

	if err := root.Execute(); err != nil {
		appLogger.WithContext(ctx).Fatalf("failed to execute root command: \n%v", err)
	}
}
