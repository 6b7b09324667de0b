package ws

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"online_queue/internal/logger"
)

const testChannel = "queue:updates"

func TestRedisBridge_DeliversOnce(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	hub := NewHub(8, logger.Discard())
	bridge := NewRedisBridge(client, testChannel, hub, logger.Discard())
	sub := hub.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bridge.Run(ctx) }()

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(testChannel)[testChannel] == 1
	}, 2*time.Second, 10*time.Millisecond)

	bridge.Publish(9)
	assert.Equal(t, `{"queueId":9}`, recv(t, sub))

	select {
	case msg := <-sub.C():
		t.Fatalf("unexpected second delivery: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("bridge did not stop")
	}
}

func TestRedisBridge_FallsBackToLocalDelivery(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	hub := NewHub(8, logger.Discard())
	bridge := NewRedisBridge(client, testChannel, hub, logger.Discard())
	sub := hub.Subscribe()

	bridge.Publish(3)

	assert.Equal(t, `{"queueId":3}`, recv(t, sub))
}

func TestRedisBridge_ServeResubscribesAfterOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	hub := NewHub(8, logger.Discard())
	bridge := NewRedisBridge(client, testChannel, hub, logger.Discard())
	bridge.retryDelay = 10 * time.Millisecond
	sub := hub.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		bridge.Serve(ctx)
		close(done)
	}()

	// Первые попытки подписки падают, пока Redis лежит.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, mr.Restart())

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(testChannel)[testChannel] == 1
	}, 5*time.Second, 10*time.Millisecond)

	bridge.Publish(12)
	assert.Equal(t, `{"queueId":12}`, recv(t, sub))

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("bridge did not stop")
	}
}
