package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"genvo-server/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gorm 把每个 key 存为 kv_entry 表中的一行，value 是 JSON 列
type Gorm struct {
	DB *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{DB: db}
}

func (s *Gorm) Read(ctx context.Context, key string) ([]byte, error) {
	var entry models.KVEntry
	err := s.DB.WithContext(ctx).First(&entry, "`key` = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

func (s *Gorm) Write(ctx context.Context, key string, value []byte) error {
	entry := models.KVEntry{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now(),
	}
	// upsert：主键冲突时覆盖 value
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Gorm) Delete(ctx context.Context, key string) error {
	if err := s.DB.WithContext(ctx).Delete(&models.KVEntry{}, "`key` = ?", key).Error; err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
