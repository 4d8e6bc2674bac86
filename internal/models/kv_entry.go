package models

import "time"

// KVEntry backs the database key-value store
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps the table name stable across drivers
func (KVEntry) TableName() string {
	return "kv_entries"
}
