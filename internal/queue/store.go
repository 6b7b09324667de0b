package queue

import (
	"context"
	"time"

	"online_queue/internal/models"
)

// Store — хранилище очередей. Каждая операция атомарна на уровне строки;
// Transaction объединяет последовательность чтение-запись.
// Отсутствие записи — (nil, nil), а не ошибка.
type Store interface {
	CreateQueue(ctx context.Context, name string) (int64, error)
	ListQueues(ctx context.Context) ([]models.Queue, error)
	QueueExists(ctx context.Context, queueID int64) (bool, error)
	QueuesWithMembers(ctx context.Context, queueIDs []int64) ([]models.Queue, error)

	InsertEntry(ctx context.Context, queueID, userID int64) (int64, error)
	InsertEntryWithTimestamp(ctx context.Context, queueID, userID int64, ts time.Time) (int64, error)
	DeleteEntry(ctx context.Context, entryID int64) error
	FindEntry(ctx context.Context, queueID, userID int64) (*models.QueueEntry, error)
	FindEntryByID(ctx context.Context, entryID, queueID int64) (*models.QueueEntry, error)
	UpdateEntryUser(ctx context.Context, entryID, userID int64) error
	EntriesForUser(ctx context.Context, userID int64) ([]models.QueueEntry, error)
	DeleteEntriesBefore(ctx context.Context, cutoff time.Time) ([]int64, error)

	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// Notifier получает сигнал «очередь изменилась» после каждой успешной мутации.
type Notifier interface {
	Publish(queueID int64)
}
