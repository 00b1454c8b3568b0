package store

import (
	"fmt"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Backend is the key-value persistence collaborator. Writes are
// last-write-wins and there are no transactions across keys.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryBackend keeps values in a map. It is used by tests and ephemeral runs.
type MemoryBackend struct {
	values map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (b *MemoryBackend) Get(key string) (string, bool, error) {
	value, ok := b.values[key]
	return value, ok, nil
}

func (b *MemoryBackend) Set(key, value string) error {
	b.values[key] = value
	return nil
}

func (b *MemoryBackend) Delete(key string) error {
	delete(b.values, key)
	return nil
}

// KVEntry is a single persisted key
type KVEntry struct {
	Key       string    `gorm:"primaryKey;column:kv_key"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`

	Value string `gorm:"type:text"`
}

// SQLiteBackend persists keys in a sqlite database through gorm
type SQLiteBackend struct {
	db *gorm.DB
}

func NewSQLiteBackend(dbFilePath string) (*SQLiteBackend, error) {
	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database")
		return nil, err
	}

	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, err
	}

	return &SQLiteBackend{
		db: db,
	}, nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (b *SQLiteBackend) Get(key string) (string, bool, error) {
	var entries []KVEntry
	result := b.db.Where("kv_key = ?", key).Limit(1).Find(&entries)
	if result.Error != nil {
		return "", false, result.Error
	}
	if len(entries) == 0 {
		return "", false, nil
	}
	return entries[0].Value, true, nil
}

func (b *SQLiteBackend) Set(key, value string) error {
	entry := KVEntry{
		Key:   key,
		Value: value,
	}

	result := b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)
	return result.Error
}

func (b *SQLiteBackend) Delete(key string) error {
	result := b.db.Where("kv_key = ?", key).Delete(&KVEntry{})
	return result.Error
}
