package storage

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"online_queue/internal/models"
	"online_queue/internal/queue"
)

var _ queue.Store = (*QueueStore)(nil)

// QueueStore хранит очереди и записи через gorm.
type QueueStore struct {
	db  *gorm.DB
	now func() time.Time
}

type Option func(*QueueStore)

// WithClock подменяет источник времени для InsertEntry.
func WithClock(now func() time.Time) Option {
	return func(s *QueueStore) {
		s.now = now
	}
}

func NewQueueStore(db *gorm.DB, opts ...Option) *QueueStore {
	s := &QueueStore{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// byPosition упорядочивает записи по (timestamp, id).
func byPosition(db *gorm.DB) *gorm.DB {
	return db.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
}

func (s *QueueStore) CreateQueue(ctx context.Context, name string) (int64, error) {
	q := models.Queue{Name: name}
	if err := s.db.WithContext(ctx).Create(&q).Error; err != nil {
		return 0, errors.Wrap(err, "failed to create queue")
	}
	return q.ID, nil
}

func (s *QueueStore) ListQueues(ctx context.Context) ([]models.Queue, error) {
	var queues []models.Queue
	if err := s.db.WithContext(ctx).
		Preload("Members", byPosition).
		Order("id ASC").
		Find(&queues).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list queues")
	}
	return withMembers(queues), nil
}

func (s *QueueStore) QueuesWithMembers(ctx context.Context, queueIDs []int64) ([]models.Queue, error) {
	var queues []models.Queue
	if len(queueIDs) == 0 {
		return queues, nil
	}

	if err := s.db.WithContext(ctx).
		Preload("Members", byPosition).
		Where("id IN ?", queueIDs).
		Order("id ASC").
		Find(&queues).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load queues")
	}
	return withMembers(queues), nil
}

// withMembers гарантирует пустой, а не nil, список участников.
func withMembers(queues []models.Queue) []models.Queue {
	if queues == nil {
		return []models.Queue{}
	}
	for i := range queues {
		if queues[i].Members == nil {
			queues[i].Members = []models.QueueEntry{}
		}
	}
	return queues
}

func (s *QueueStore) QueueExists(ctx context.Context, queueID int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Queue{}).
		Where("id = ?", queueID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check queue")
	}
	return count > 0, nil
}

func (s *QueueStore) InsertEntry(ctx context.Context, queueID, userID int64) (int64, error) {
	return s.InsertEntryWithTimestamp(ctx, queueID, userID, s.now())
}

func (s *QueueStore) InsertEntryWithTimestamp(ctx context.Context, queueID, userID int64, ts time.Time) (int64, error) {
	entry := models.QueueEntry{
		QueueID:   queueID,
		UserID:    userID,
		Timestamp: ts.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return 0, errors.Wrap(err, "failed to insert entry")
	}
	return entry.ID, nil
}

func (s *QueueStore) DeleteEntry(ctx context.Context, entryID int64) error {
	if err := s.db.WithContext(ctx).Delete(&models.QueueEntry{}, entryID).Error; err != nil {
		return errors.Wrapf(err, "failed to delete entry %d", entryID)
	}
	return nil
}

func (s *QueueStore) FindEntry(ctx context.Context, queueID, userID int64) (*models.QueueEntry, error) {
	var entry models.QueueEntry
	err := s.db.WithContext(ctx).
		Scopes(byPosition).
		Where("queue_id = ? AND user_id = ?", queueID, userID).
		Take(&entry).Error
	return found(&entry, err)
}

func (s *QueueStore) FindEntryByID(ctx context.Context, entryID, queueID int64) (*models.QueueEntry, error) {
	var entry models.QueueEntry
	err := s.db.WithContext(ctx).
		Where("id = ? AND queue_id = ?", entryID, queueID).
		Take(&entry).Error
	return found(&entry, err)
}

func found(entry *models.QueueEntry, err error) (*models.QueueEntry, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find entry")
	}
	return entry, nil
}

func (s *QueueStore) UpdateEntryUser(ctx context.Context, entryID, userID int64) error {
	if err := s.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Where("id = ?", entryID).
		Update("user_id", userID).Error; err != nil {
		return errors.Wrapf(err, "failed to update entry %d", entryID)
	}
	return nil
}

func (s *QueueStore) EntriesForUser(ctx context.Context, userID int64) ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("queue_id ASC").
		Scopes(byPosition).
		Find(&entries).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load user entries")
	}
	return entries, nil
}

// DeleteEntriesBefore удаляет записи старше cutoff и возвращает id затронутых очередей.
func (s *QueueStore) DeleteEntriesBefore(ctx context.Context, cutoff time.Time) ([]int64, error) {
	stale := clause.Lt{Column: clause.Column{Name: "timestamp"}, Value: cutoff.UTC()}

	var queueIDs []int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.QueueEntry{}).
			Where(stale).
			Distinct().
			Pluck("queue_id", &queueIDs).Error; err != nil {
			return err
		}
		if len(queueIDs) == 0 {
			return nil
		}
		return tx.Where(stale).Delete(&models.QueueEntry{}).Error
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete stale entries")
	}

	sort.Slice(queueIDs, func(i, j int) bool { return queueIDs[i] < queueIDs[j] })
	return queueIDs, nil
}

// Transaction выполняет fn в одной транзакции базы.
func (s *QueueStore) Transaction(ctx context.Context, fn func(tx queue.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&QueueStore{db: tx, now: s.now})
	})
}
