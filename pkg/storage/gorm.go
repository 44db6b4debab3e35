package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageSlot is the backing row: one key, one opaque value.
type StorageSlot struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value;type:text"`
}

func (StorageSlot) TableName() string {
	return "storage_slots"
}

// GormStore persists slots in a postgres table, upserting on write.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&StorageSlot{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var slot StorageSlot
	err := s.db.WithContext(ctx).First(&slot, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(slot.Value), nil
}

func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	slot := StorageSlot{Key: key, Value: string(value)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&slot).Error
}
