package command

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"online_queue/internal/config"
	"online_queue/internal/storage"
)

type MigrateCommand struct {
	Logger *log.Logger
}

func (cmd MigrateCommand) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "run schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.main(ctx, cfg, args[0])
		},
	}
}

func (cmd MigrateCommand) main(ctx context.Context, cfg *config.Config, direction string) error {
	dbCfg := *cfg
	dbCfg.DBAutoMigrate = false

	db, err := storage.ConnectDatabase(&dbCfg, cmd.Logger)
	if err != nil {
		return errors.Wrap(err, "migrate : failed to connect to database")
	}
	defer storage.Close(db)

	// Версионные миграции есть только для PostgreSQL; SQLite обходится AutoMigrate.
	if cfg.DBDriver == config.DriverSQLite {
		if direction != "up" {
			return errors.Errorf("migration command : %s is not supported for sqlite", direction)
		}
		if err := storage.AutoMigrate(db); err != nil {
			return err
		}
		cmd.Logger.WithContext(ctx).Info("sqlite schema is up to date")
		return nil
	}

	switch direction {
	case "up":
		err = storage.MigrateUp(db, cfg.DBName)
	case "down":
		err = storage.MigrateDown(db, cfg.DBName)
	default:
		err = errors.Errorf("migration command : %s is not supported", direction)
	}
	if err != nil {
		return err
	}

	cmd.Logger.WithContext(ctx).WithField("direction", direction).Info("migrations applied")
	return nil
}
