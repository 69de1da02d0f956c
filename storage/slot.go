package storage

import (
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrewpaige1/coursemap-api/models"
)

// Slot is a string key/value store with the semantics of browser local storage.
type Slot interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// GormSlot keeps slots as rows of the storage_entries table.
type GormSlot struct {
	*gorm.DB
}

func NewGormSlot(db *gorm.DB) *GormSlot {
	return &GormSlot{DB: db}
}

func (db *GormSlot) GetItem(key string) (string, bool, error) {
	var entry models.StorageEntry
	err := db.Where("slot_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (db *GormSlot) SetItem(key, value string) error {
	entry := models.StorageEntry{Key: key, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (db *GormSlot) RemoveItem(key string) error {
	return db.Where("slot_key = ?", key).Delete(&models.StorageEntry{}).Error
}

// MemorySlot is a process-local Slot.
type MemorySlot struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{items: make(map[string]string)}
}

func (m *MemorySlot) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemorySlot) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MemorySlot) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
