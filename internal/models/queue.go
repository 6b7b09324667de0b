package models

// Queue — именованная очередь. Имя не меняется после создания, очереди не удаляются.
type Queue struct {
	ID      int64        `gorm:"primaryKey" json:"id"`
	Name    string       `gorm:"not null" json:"name"`
	Members []QueueEntry `gorm:"foreignKey:QueueID" json:"members"`
}
