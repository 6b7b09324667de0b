package ws

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// DefaultBuffer — ёмкость канала подписки по умолчанию.
const DefaultBuffer = 64

// Event — полезная нагрузка уведомления об изменении очереди.
type Event struct {
	QueueID int64 `json:"queueId"`
}

// Encode сериализует событие для очереди queueID.
func Encode(queueID int64) ([]byte, error) {
	return json.Marshal(Event{QueueID: queueID})
}

// Subscription — один наблюдатель: буферизованный канал и счётчик потерь.
type Subscription struct {
	id      string
	send    chan []byte
	dropped atomic.Int64
	closed  bool
}

func (s *Subscription) ID() string {
	return s.id
}

// C возвращает канал событий. Канал закрывается при Unsubscribe или Close хаба.
func (s *Subscription) C() <-chan []byte {
	return s.send
}

// Dropped — сколько событий не поместилось в буфер этого наблюдателя.
func (s *Subscription) Dropped() int64 {
	return s.dropped.Load()
}

// Stats — снимок состояния хаба.
type Stats struct {
	Subscribers int    `json:"subscribers"`
	Published   uint64 `json:"published"`
	Dropped     uint64 `json:"dropped"`
}

// Hub рассылает события всем подписчикам. Регистрация, удаление и обход
// выполняются под одним мьютексом, поэтому удалённый подписчик событий не получит.
type Hub struct {
	mu        sync.Mutex
	clients   map[string]*Subscription
	buffer    int
	closed    bool
	published uint64
	dropped   uint64
	logger    *log.Logger
}

func NewHub(buffer int, logger *log.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	if logger == nil {
		logger = log.StandardLogger()
	}

	return &Hub{
		clients: make(map[string]*Subscription),
		buffer:  buffer,
		logger:  logger,
	}
}

// Subscribe регистрирует нового наблюдателя. После Close возвращает уже закрытую подписку.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{
		id:   uuid.NewString(),
		send: make(chan []byte, h.buffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		sub.closed = true
		close(sub.send)
		return sub
	}

	h.clients[sub.id] = sub
	h.logger.WithFields(log.Fields{"subscription": sub.id, "total": len(h.clients)}).Debug("observer subscribed")
	return sub
}

// Unsubscribe удаляет наблюдателя и закрывает его канал. Повторный вызов ничего не делает.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if sub.closed {
		return
	}
	delete(h.clients, sub.id)
	sub.closed = true
	close(sub.send)

	h.logger.WithFields(log.Fields{
		"subscription": sub.id,
		"dropped":      sub.Dropped(),
		"total":        len(h.clients),
	}).Debug("observer unsubscribed")
}

// Publish сообщает всем наблюдателям, что очередь queueID изменилась.
func (h *Hub) Publish(queueID int64) {
	payload, err := Encode(queueID)
	if err != nil {
		h.logger.WithError(err).WithField("queue_id", queueID).Error("failed to encode event")
		return
	}
	h.Broadcast(payload)
}

// Broadcast предлагает payload каждому подписчику без блокировки.
// Если буфер подписчика полон, событие для него теряется и учитывается в Dropped.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.published++

	for _, sub := range h.clients {
		select {
		case sub.send <- payload:
		default:
			sub.dropped.Add(1)
			h.dropped++
			h.logger.WithField("subscription", sub.id).Warn("observer buffer full, event dropped")
		}
	}
}

// Count — число активных подписчиков.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	return Stats{
		Subscribers: len(h.clients),
		Published:   h.published,
		Dropped:     h.dropped,
	}
}

// Close закрывает все подписки. Используется при остановке сервера.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for id, sub := range h.clients {
		sub.closed = true
		close(sub.send)
		delete(h.clients, id)
	}
	h.logger.Info("notification hub closed")
}
