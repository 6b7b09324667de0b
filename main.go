package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	_ "online_queue/docs"
	"online_queue/internal/auth"
	"online_queue/internal/config"
	"online_queue/internal/handlers"
	"online_queue/internal/logger"
	"online_queue/internal/queue"
	"online_queue/internal/server"
	"online_queue/internal/storage"
	"online_queue/internal/tasks"
	"online_queue/internal/ws"
)

// @Title						Онлайн очередь
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Ошибка конфигурации: ", err.Error())
	}

	appLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.WithError(err).Fatal("server stopped")
	}
	appLogger.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, appLogger *log.Logger) error {
	db, err := storage.ConnectDatabase(cfg, appLogger)
	if err != nil {
		return errors.Wrap(err, "server : failed to connect to database")
	}
	defer func() {
		if err := storage.Close(db); err != nil {
			appLogger.WithError(err).Error("failed to close database")
		}
	}()

	redisClient, err := storage.InitRedis(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "server : failed to connect to redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	hub := ws.NewHub(cfg.HubBuffer, appLogger)
	var notifier queue.Notifier = hub
	if cfg.NotifyBackend == config.NotifyRedis {
		bridge := ws.NewRedisBridge(redisClient, cfg.NotifyChannel, hub, appLogger)
		notifier = bridge
		go bridge.Serve(ctx)
	}

	svc := queue.NewService(storage.NewQueueStore(db), notifier, queue.Options{
		Skip: queue.SkipMode(cfg.SkipMode),
		Swap: queue.SwapMode(cfg.SwapMode),
	}, appLogger)

	scheduler, err := tasks.InitScheduler(tasks.Schedule{
		Stats:      cfg.StatsSchedule,
		Prune:      cfg.PruneSchedule,
		PruneAfter: cfg.PruneAfter,
	}, svc, hub, appLogger)
	if err != nil {
		return errors.Wrap(err, "server : failed to start scheduler")
	}
	defer scheduler.Stop()

	srv := server.New(cfg.AppEnv, appLogger)
	srv.OnShutdown(hub.Close)
	srv.SetupAPIRoutes(server.Routes{
		Queues: handlers.New(svc, hub, cfg.SSEHeartbeat, appLogger),
		Health: handlers.NewHealthHandler(func(ctx context.Context) error {
			return storage.Ping(ctx, db)
		}, hub),
		Hub:      hub,
		Verifier: newVerifier(cfg, redisClient, appLogger),
		Logger:   appLogger,
	})

	return srv.Serve(ctx, fmt.Sprintf(":%d", cfg.HTTPPort))
}

func newVerifier(cfg *config.Config, redisClient *redis.Client, appLogger *log.Logger) auth.Verifier {
	if cfg.AuthMode == config.AuthRemote {
		return auth.NewRemoteVerifier(cfg.AuthURL, redisClient, cfg.AuthCacheTTL, appLogger)
	}
	return auth.NewJWTVerifier(cfg.JWTAccessSecret)
}
