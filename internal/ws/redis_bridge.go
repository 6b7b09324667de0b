package ws

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	publishTimeout = 2 * time.Second
	minRetryDelay  = 500 * time.Millisecond
	maxRetryDelay  = 30 * time.Second
)

// RedisBridge раздаёт события через Redis pub/sub, чтобы их получили
// наблюдатели всех экземпляров сервиса.
type RedisBridge struct {
	client  *redis.Client
	channel string
	hub     *Hub
	logger  *log.Logger

	retryDelay time.Duration
}

func NewRedisBridge(client *redis.Client, channel string, hub *Hub, logger *log.Logger) *RedisBridge {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &RedisBridge{
		client:  client,
		channel: channel,
		hub:     hub,
		logger:  logger,

		retryDelay: minRetryDelay,
	}
}

// Publish отправляет событие в канал Redis. Если Redis недоступен,
// событие доставляется только локальным наблюдателям.
func (b *RedisBridge) Publish(queueID int64) {
	payload, err := Encode(queueID)
	if err != nil {
		b.logger.WithError(err).WithField("queue_id", queueID).Error("failed to encode event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		b.logger.WithError(err).WithFields(log.Fields{
			"queue_id": queueID,
			"channel":  b.channel,
		}).Warn("redis publish failed, delivering locally")
		b.hub.Broadcast(payload)
	}
}

// Run подписывается на канал и пересылает сообщения в локальный хаб до отмены ctx.
func (b *RedisBridge) Run(ctx context.Context) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	// Ждём подтверждения подписки.
	if _, err := pubsub.Receive(ctx); err != nil {
		return errors.Wrapf(err, "failed to subscribe to %s", b.channel)
	}
	b.logger.WithField("channel", b.channel).Info("redis bridge subscribed")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Info("redis bridge stopping")
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.hub.Broadcast([]byte(msg.Payload))
		}
	}
}

// Serve держит подписку до отмены ctx: если Run завершился, мост
// переподключается с экспоненциальной задержкой.
func (b *RedisBridge) Serve(ctx context.Context) {
	delay := b.retryDelay
	for {
		err := b.Run(ctx)
		if ctx.Err() != nil {
			return
		}
		if err == nil {
			delay = b.retryDelay
		}
		b.logger.WithError(err).WithFields(log.Fields{
			"channel":  b.channel,
			"retry_in": delay,
		}).Warn("redis bridge disconnected")

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		delay *= 2
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}
	}
}
