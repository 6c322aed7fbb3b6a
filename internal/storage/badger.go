package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// BadgerConfig holds configuration for the embedded BadgerDB store.
type BadgerConfig struct {
	// Path is the directory for database files. Required unless InMemory.
	Path string
	// InMemory keeps all data in RAM. Used by tests.
	InMemory bool
	// SyncWrites makes every save durable before returning.
	SyncWrites bool
}

// BadgerStore is the default snapshot backend: an embedded key-value store,
// one key per persisted blob.
type BadgerStore struct {
	db  *badger.DB
	log *zap.Logger
}

// NewBadgerStore opens (and creates if needed) a BadgerDB at cfg.Path.
func NewBadgerStore(cfg BadgerConfig, log *zap.Logger) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for a persistent store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	opts = opts.WithLogger(nil) // badger's own logging is noisy, keep it off

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}

	return &BadgerStore{db: db, log: log}, nil
}

func (s *BadgerStore) Load(key string) ([]byte, bool) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false
	}
	if err != nil {
		s.log.Warn("badger load failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return value, true
}

func (s *BadgerStore) Save(key string, value []byte) bool {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		s.log.Warn("badger save failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
