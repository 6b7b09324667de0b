package models

import (
	"sort"
	"time"
)

// QueueEntry — место пользователя в очереди.
// Позиция не хранится: порядок задаётся парой (Timestamp, ID).
type QueueEntry struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	QueueID   int64     `gorm:"index;not null" json:"queue_id"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	Timestamp time.Time `gorm:"column:timestamp;index;not null" json:"timestamp"`
}

// Before сообщает, стоит ли e раньше other в очереди.
func (e QueueEntry) Before(other QueueEntry) bool {
	if !e.Timestamp.Equal(other.Timestamp) {
		return e.Timestamp.Before(other.Timestamp)
	}
	return e.ID < other.ID
}

// SortEntries упорядочивает записи по (Timestamp, ID).
func SortEntries(entries []QueueEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Before(entries[j])
	})
}

// Rank возвращает 1-based позиции записей очереди по их ID.
func Rank(entries []QueueEntry) map[int64]int {
	ordered := make([]QueueEntry, len(entries))
	copy(ordered, entries)
	SortEntries(ordered)

	positions := make(map[int64]int, len(ordered))
	for i, e := range ordered {
		positions[e.ID] = i + 1
	}
	return positions
}
