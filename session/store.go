package session

import (
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store holds the one durable piece of client state: the last resolved
// session id, surviving restarts until found stale.
type Store interface {
	Load() (string, error)
	Save(id string) error
	Clear() error
}

const cacheKey = "sessionId"

type cachedSession struct {
	Key       string `gorm:"primaryKey;type:varchar(36)"`
	SessionID string `gorm:"type:varchar(36);not null"`
	UpdatedAt time.Time
}

// FileStore persists the cached session id in a local sqlite file.
type FileStore struct {
	db *gorm.DB
}

func OpenFileStore(path string) (*FileStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&cachedSession{}); err != nil {
		return nil, err
	}
	return &FileStore{db: db}, nil
}

func (s *FileStore) Load() (string, error) {
	var row cachedSession
	err := s.db.First(&row, "key = ?", cacheKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return row.SessionID, nil
}

func (s *FileStore) Save(id string) error {
	return s.db.Save(&cachedSession{Key: cacheKey, SessionID: id}).Error
}

func (s *FileStore) Clear() error {
	return s.db.Delete(&cachedSession{}, "key = ?", cacheKey).Error
}
