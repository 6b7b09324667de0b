package ws

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"online_queue/internal/logger"
)

func recv(t *testing.T, sub *Subscription) string {
	t.Helper()
	select {
	case msg, ok := <-sub.C():
		require.True(t, ok, "subscription closed")
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return ""
	}
}

func TestHub_PublishReachesEverySubscriber(t *testing.T) {
	hub := NewHub(8, logger.Discard())
	a := hub.Subscribe()
	b := hub.Subscribe()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, hub.Count())

	hub.Publish(7)

	assert.Equal(t, `{"queueId":7}`, recv(t, a))
	assert.Equal(t, `{"queueId":7}`, recv(t, b))
}

func TestHub_FIFOPerSubscriber(t *testing.T) {
	hub := NewHub(8, logger.Discard())
	sub := hub.Subscribe()

	hub.Publish(1)
	hub.Publish(2)
	hub.Publish(3)

	assert.Equal(t, `{"queueId":1}`, recv(t, sub))
	assert.Equal(t, `{"queueId":2}`, recv(t, sub))
	assert.Equal(t, `{"queueId":3}`, recv(t, sub))
}

func TestHub_UnsubscribeIsIdempotentAndStopsDelivery(t *testing.T) {
	hub := NewHub(8, logger.Discard())
	sub := hub.Subscribe()
	other := hub.Subscribe()

	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub)
	hub.Unsubscribe(nil)
	assert.Equal(t, 1, hub.Count())

	hub.Publish(4)

	_, ok := <-sub.C()
	assert.False(t, ok, "channel is closed and empty")
	assert.Equal(t, `{"queueId":4}`, recv(t, other))
}

func TestHub_FullBufferDropsOnlyForSlowObserver(t *testing.T) {
	hub := NewHub(1, logger.Discard())
	slow := hub.Subscribe()
	fast := hub.Subscribe()

	hub.Publish(1)
	assert.Equal(t, `{"queueId":1}`, recv(t, fast))
	hub.Publish(2)

	assert.Equal(t, int64(1), slow.Dropped())
	assert.Equal(t, int64(0), fast.Dropped())
	assert.Equal(t, `{"queueId":1}`, recv(t, slow))
	assert.Equal(t, `{"queueId":2}`, recv(t, fast))

	stats := hub.Stats()
	assert.Equal(t, Stats{Subscribers: 2, Published: 2, Dropped: 1}, stats)
}

func TestHub_PublishWithoutSubscribers(t *testing.T) {
	hub := NewHub(0, logger.Discard())
	assert.NotPanics(t, func() { hub.Publish(1) })
	assert.Equal(t, uint64(1), hub.Stats().Published)
}

func TestHub_Close(t *testing.T) {
	hub := NewHub(4, logger.Discard())
	sub := hub.Subscribe()

	hub.Close()
	hub.Close()

	_, ok := <-sub.C()
	assert.False(t, ok)
	assert.Equal(t, 0, hub.Count())
	assert.NotPanics(t, func() { hub.Unsubscribe(sub) })

	late := hub.Subscribe()
	_, ok = <-late.C()
	assert.False(t, ok, "subscriptions after close are already closed")
	assert.NotPanics(t, func() { hub.Publish(1) })
}

func TestHub_ConcurrentSubscribePublish(t *testing.T) {
	hub := NewHub(DefaultBuffer, logger.Discard())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := hub.Subscribe()
			hub.Unsubscribe(sub)
		}()
		go func(id int64) {
			defer wg.Done()
			hub.Publish(id)
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, 0, hub.Count())
	assert.Equal(t, uint64(20), hub.Stats().Published)
}
