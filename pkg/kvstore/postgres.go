package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// blobRecord is one persisted key/value row
type blobRecord struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (blobRecord) TableName() string {
	return "storefront_blobs"
}

// PostgresStore persists blobs in a single PostgreSQL table via GORM
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore creates the store and runs the schema migration
func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&blobRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate blob table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var record blobRecord
	err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: postgres get %q: %v", ErrUnavailable, key, err)
	}
	return record.Value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	record := blobRecord{Key: key, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("%w: postgres set %q: %v", ErrUnavailable, key, err)
	}
	return nil
}
