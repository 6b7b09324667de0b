package queue

import (
	"context"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"online_queue/internal/models"
)

// SkipMode задаёт, что происходит с записью при пропуске хода.
type SkipMode string

const (
	// SkipPreserve пересоздаёт запись с прежним timestamp: id меняется, порядок нет.
	SkipPreserve SkipMode = "preserve"
	// SkipRequeue пересоздаёт запись с текущим временем, то есть в конце очереди.
	SkipRequeue SkipMode = "requeue"
)

// SwapMode задаёт семантику обмена местами.
type SwapMode string

const (
	// SwapShare добавляет вызывающему запись с timestamp цели; цель остаётся на месте.
	SwapShare SwapMode = "share"
	// SwapExchange меняет пользователей двух записей местами.
	SwapExchange SwapMode = "exchange"
)

type Options struct {
	Skip SkipMode
	Swap SwapMode
}

func DefaultOptions() Options {
	return Options{Skip: SkipPreserve, Swap: SwapShare}
}

// Service реализует операции над очередями поверх Store и сообщает Notifier
// о каждой успешной мутации ровно один раз.
type Service struct {
	store    Store
	notifier Notifier
	opts     Options
	logger   *log.Logger
}

func NewService(store Store, notifier Notifier, opts Options, logger *log.Logger) *Service {
	if opts.Skip == "" {
		opts.Skip = SkipPreserve
	}
	if opts.Swap == "" {
		opts.Swap = SwapShare
	}
	if logger == nil {
		logger = log.StandardLogger()
	}

	return &Service{
		store:    store,
		notifier: notifier,
		opts:     opts,
		logger:   logger,
	}
}

func (s *Service) CreateQueue(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, missing("name")
	}

	id, err := s.store.CreateQueue(ctx, name)
	if err != nil {
		return 0, wrap("create queue", err)
	}

	s.logger.WithFields(log.Fields{"queue_id": id, "name": name}).Info("queue created")
	return id, nil
}

func (s *Service) ListQueues(ctx context.Context) ([]models.Queue, error) {
	queues, err := s.store.ListQueues(ctx)
	if err != nil {
		return nil, wrap("list queues", err)
	}
	return queues, nil
}

// Join ставит пользователя в конец очереди и возвращает id новой записи.
func (s *Service) Join(ctx context.Context, queueID, userID int64) (int64, error) {
	if queueID <= 0 {
		return 0, missing("queue_id")
	}
	if userID <= 0 {
		return 0, missing("user_id")
	}

	var entryID int64
	err := s.store.Transaction(ctx, func(tx Store) error {
		exists, err := tx.QueueExists(ctx, queueID)
		if err != nil {
			return err
		}
		if !exists {
			return &NotFoundError{Resource: "queue", ID: queueID}
		}

		entryID, err = tx.InsertEntry(ctx, queueID, userID)
		return err
	})
	if err != nil {
		return 0, wrap("join", err)
	}

	s.changed(queueID, "join", log.Fields{"user_id": userID, "entry_id": entryID})
	return entryID, nil
}

// Leave удаляет первую запись пользователя. Если записи нет — это успешный no-op.
func (s *Service) Leave(ctx context.Context, queueID, userID int64) error {
	if queueID <= 0 {
		return missing("queue_id")
	}
	if userID <= 0 {
		return missing("user_id")
	}

	err := s.store.Transaction(ctx, func(tx Store) error {
		entry, err := tx.FindEntry(ctx, queueID, userID)
		if err != nil || entry == nil {
			return err
		}
		return tx.DeleteEntry(ctx, entry.ID)
	})
	if err != nil {
		return wrap("leave", err)
	}

	s.changed(queueID, "leave", log.Fields{"user_id": userID})
	return nil
}

// Skip пересоздаёт запись пользователя согласно Options.Skip.
func (s *Service) Skip(ctx context.Context, queueID, userID int64) error {
	if queueID <= 0 {
		return missing("queue_id")
	}
	if userID <= 0 {
		return missing("user_id")
	}

	var entryID int64
	err := s.store.Transaction(ctx, func(tx Store) error {
		entry, err := tx.FindEntry(ctx, queueID, userID)
		if err != nil {
			return err
		}
		if entry == nil {
			return &NotFoundError{Resource: "entry", ID: userID}
		}

		entryID, err = s.reinsert(ctx, tx, *entry)
		return err
	})
	if err != nil {
		return wrap("skip", err)
	}

	s.changed(queueID, "skip", log.Fields{"user_id": userID, "entry_id": entryID, "mode": s.opts.Skip})
	return nil
}

// reinsert удаляет запись и вставляет новую для того же пользователя.
func (s *Service) reinsert(ctx context.Context, tx Store, entry models.QueueEntry) (int64, error) {
	if err := tx.DeleteEntry(ctx, entry.ID); err != nil {
		return 0, err
	}

	if s.opts.Skip == SkipRequeue {
		return tx.InsertEntry(ctx, entry.QueueID, entry.UserID)
	}
	return tx.InsertEntryWithTimestamp(ctx, entry.QueueID, entry.UserID, entry.Timestamp)
}

// Swap передаёт вызывающему место целевой записи согласно Options.Swap.
func (s *Service) Swap(ctx context.Context, queueID, callerID, targetEntryID int64) error {
	if queueID <= 0 {
		return missing("queue_id")
	}
	if callerID <= 0 {
		return missing("user_id")
	}
	if targetEntryID <= 0 {
		return missing("target_entry_id")
	}

	err := s.store.Transaction(ctx, func(tx Store) error {
		target, err := tx.FindEntryByID(ctx, targetEntryID, queueID)
		if err != nil {
			return err
		}
		if target == nil {
			return &NotFoundError{Resource: "entry", ID: targetEntryID}
		}

		if s.opts.Swap == SwapExchange {
			return exchange(ctx, tx, *target, callerID)
		}
		return share(ctx, tx, *target, callerID)
	})
	if err != nil {
		return wrap("swap", err)
	}

	s.changed(queueID, "swap", log.Fields{"user_id": callerID, "target_entry_id": targetEntryID, "mode": s.opts.Swap})
	return nil
}

// share: запись цели переписывается на её же пользователя, вызывающий получает
// новую запись с тем же timestamp и встаёт сразу за целью.
func share(ctx context.Context, tx Store, target models.QueueEntry, callerID int64) error {
	if err := tx.UpdateEntryUser(ctx, target.ID, target.UserID); err != nil {
		return err
	}
	_, err := tx.InsertEntryWithTimestamp(ctx, target.QueueID, callerID, target.Timestamp)
	return err
}

// exchange: две записи обмениваются пользователями, слоты остаются на месте.
func exchange(ctx context.Context, tx Store, target models.QueueEntry, callerID int64) error {
	own, err := tx.FindEntry(ctx, target.QueueID, callerID)
	if err != nil {
		return err
	}
	if own == nil {
		return &NotFoundError{Resource: "entry", ID: callerID}
	}
	if own.ID == target.ID {
		return nil
	}

	if err := tx.UpdateEntryUser(ctx, target.ID, callerID); err != nil {
		return err
	}
	return tx.UpdateEntryUser(ctx, own.ID, target.UserID)
}

// UserQueueItem — запись пользователя с вычисленной позицией.
type UserQueueItem struct {
	QueueID   int64     `json:"queue_id"`
	QueueName string    `json:"queue_name"`
	EntryID   int64     `json:"entry_id"`
	Position  int       `json:"position"`
	Timestamp time.Time `json:"timestamp"`
}

// UserQueues возвращает все записи пользователя с их текущими позициями.
func (s *Service) UserQueues(ctx context.Context, userID int64) ([]UserQueueItem, error) {
	if userID <= 0 {
		return nil, missing("user_id")
	}

	entries, err := s.store.EntriesForUser(ctx, userID)
	if err != nil {
		return nil, wrap("user queues", err)
	}
	if len(entries) == 0 {
		return []UserQueueItem{}, nil
	}

	seen := make(map[int64]bool)
	var queueIDs []int64
	for _, e := range entries {
		if !seen[e.QueueID] {
			seen[e.QueueID] = true
			queueIDs = append(queueIDs, e.QueueID)
		}
	}

	queues, err := s.store.QueuesWithMembers(ctx, queueIDs)
	if err != nil {
		return nil, wrap("user queues", err)
	}

	queueMap := make(map[int64]models.Queue, len(queues))
	positions := make(map[int64]int)
	for _, q := range queues {
		queueMap[q.ID] = q
		for entryID, pos := range models.Rank(q.Members) {
			positions[entryID] = pos
		}
	}

	result := make([]UserQueueItem, 0, len(entries))
	for _, e := range entries {
		q, ok := queueMap[e.QueueID]
		if !ok {
			continue
		}
		pos, ok := positions[e.ID]
		if !ok {
			// запись удалили между двумя чтениями
			continue
		}
		result = append(result, UserQueueItem{
			QueueID:   q.ID,
			QueueName: q.Name,
			EntryID:   e.ID,
			Position:  pos,
			Timestamp: e.Timestamp,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].QueueID != result[j].QueueID {
			return result[i].QueueID < result[j].QueueID
		}
		return result[i].Position < result[j].Position
	})

	return result, nil
}

// PruneBefore удаляет записи старше cutoff и уведомляет по каждой затронутой очереди.
func (s *Service) PruneBefore(ctx context.Context, cutoff time.Time) (int, error) {
	queueIDs, err := s.store.DeleteEntriesBefore(ctx, cutoff)
	if err != nil {
		return 0, wrap("prune", err)
	}

	for _, id := range queueIDs {
		s.changed(id, "prune", log.Fields{"cutoff": cutoff})
	}
	return len(queueIDs), nil
}

func (s *Service) changed(queueID int64, op string, fields log.Fields) {
	s.logger.WithFields(fields).WithFields(log.Fields{"queue_id": queueID, "op": op}).Debug("queue changed")
	if s.notifier != nil {
		s.notifier.Publish(queueID)
	}
}
