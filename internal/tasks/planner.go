package tasks

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"online_queue/internal/ws"
)

const pruneTimeout = time.Minute

// Pruner удаляет устаревшие записи очередей.
type Pruner interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// StatsSource отдаёт статистику хаба уведомлений.
type StatsSource interface {
	Stats() ws.Stats
}

// Schedule — расписания фоновых задач в формате cron с секундами.
type Schedule struct {
	Stats      string
	Prune      string
	PruneAfter time.Duration
}

// LogHubStats пишет в лог число наблюдателей и потерянных событий.
func LogHubStats(hub StatsSource, logger *log.Logger) func() {
	return func() {
		stats := hub.Stats()
		logger.WithFields(log.Fields{
			"subscribers": stats.Subscribers,
			"published":   stats.Published,
			"dropped":     stats.Dropped,
		}).Info("notification hub stats")
	}
}

// PruneStaleEntries удаляет записи старше olderThan.
func PruneStaleEntries(pruner Pruner, olderThan time.Duration, now func() time.Time, logger *log.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
		defer cancel()

		cutoff := now().Add(-olderThan)
		affected, err := pruner.PruneBefore(ctx, cutoff)
		if err != nil {
			logger.WithError(err).Error("failed to prune stale entries")
			return
		}
		if affected > 0 {
			logger.WithFields(log.Fields{"queues": affected, "cutoff": cutoff}).Info("stale entries pruned")
		}
	}
}

// InitScheduler инициализирует и запускает планировщик cron-задач.
// Очистка устаревших записей включается только при PruneAfter > 0.
func InitScheduler(schedule Schedule, pruner Pruner, hub StatsSource, logger *log.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc(schedule.Stats, LogHubStats(hub, logger)); err != nil {
		return nil, errors.Wrapf(err, "invalid stats schedule %q", schedule.Stats)
	}

	if schedule.PruneAfter > 0 {
		if _, err := c.AddFunc(schedule.Prune, PruneStaleEntries(pruner, schedule.PruneAfter, time.Now, logger)); err != nil {
			return nil, errors.Wrapf(err, "invalid prune schedule %q", schedule.Prune)
		}
	}

	c.Start()
	logger.WithField("jobs", len(c.Entries())).Info("cron scheduler started")
	return c, nil
}
