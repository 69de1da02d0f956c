package models

import "time"

// StorageEntry is one key/value slot of the persisted store.
type StorageEntry struct {
	Key       string    `gorm:"primaryKey;column:slot_key;size:191"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
