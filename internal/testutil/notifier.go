package testutil

import "sync"

// RecordingNotifier remembers every published queue id in call order.
type RecordingNotifier struct {
	mu        sync.Mutex
	published []int64
}

func (r *RecordingNotifier) Publish(queueID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, queueID)
}

func (r *RecordingNotifier) Published() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int64, len(r.published))
	copy(out, r.published)
	return out
}

func (r *RecordingNotifier) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = nil
}
