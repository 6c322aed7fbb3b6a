package storage

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Snapshot is the row shape for the SQL-backed store: one row per blob key.
type Snapshot struct {
	Key       string    `gorm:"primaryKey;type:varchar(100)"`
	Data      []byte    `gorm:"type:bytea;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// GormStore is the PostgreSQL snapshot backend, selected with
// STORE_BACKEND=postgres. Blobs land in a single snapshots table.
type GormStore struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormStore connects to PostgreSQL and migrates the snapshots table.
func NewGormStore(dsn string, log *zap.Logger) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("migrate snapshots table: %w", err)
	}
	return &GormStore{db: db, log: log}, nil
}

func (s *GormStore) Load(key string) ([]byte, bool) {
	var snap Snapshot
	err := s.db.First(&snap, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false
	}
	if err != nil {
		s.log.Warn("snapshot load failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return snap.Data, true
}

func (s *GormStore) Save(key string, value []byte) bool {
	snap := Snapshot{Key: key, Data: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		s.log.Warn("snapshot save failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
