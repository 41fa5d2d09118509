package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"trinethra/internal/observability"
)

// record is a single key-value row. One row per storage key; the whole
// collection behind a key is replaced on every write.
type record struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (record) TableName() string { return "kv_records" }

// SQLiteStore persists key-value records in a local SQLite database. It is
// the durable analog of the browser's local storage: one logical writer, no
// cross-process coordination.
type SQLiteStore struct {
	db  *gorm.DB
	log *observability.StoreLogger
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// kv_records table exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite store %q: %w", path, err)
	}
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite store: %w", err)
	}
	return &SQLiteStore{db: db, log: observability.NewStoreLogger("sqlite")}, nil
}

// Get decodes the value under key into dest. Absent keys and undecodable
// values both report false.
func (s *SQLiteStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	var rec record
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		s.log.LogError(ctx, key, "get", err)
		return false, err
	}
	if err := json.Unmarshal(rec.Value, dest); err != nil {
		s.log.LogCorrupt(ctx, key, err)
		return false, nil
	}
	return true, nil
}

// Set upserts the value under key as a single row write.
func (s *SQLiteStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for %q: %w", key, err)
	}
	rec := record{Key: key, Value: data}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(&rec).Error
	if err != nil {
		s.log.LogError(ctx, key, "set", err)
		return err
	}
	s.log.LogWrite(ctx, key)
	return nil
}

// Delete removes the row for key, if any.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&record{}).Error
	if err != nil {
		s.log.LogError(ctx, key, "delete", err)
	}
	return err
}
