package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// tokenKey is the fixed key the bearer token is persisted under.
const tokenKey = "session_token"

// Store provides read/write access to the process-wide session token.
// The gateway only reads; Set is called at sign-in and Clear at sign-out.
type Store interface {
	Get() (string, error)
	Set(token string) error
	Clear() error
}

// Session is a persisted key-value row. Only the session token lives here
// today, but the table is keyed so other client-side values can join it.
type Session struct {
	Key       string `gorm:"primaryKey"`
	Token     string
	UpdatedAt time.Time
}

// DBStore persists the session token in the local sqlite database so it
// survives process restarts.
type DBStore struct {
	db *gorm.DB
}

var _ Store = (*DBStore)(nil)

// NewDBStore creates a token store backed by the given database.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Get returns the stored token, or "" when no token has been stored.
// An absent token is not an error; callers treat it as signed-out.
func (s *DBStore) Get() (string, error) {
	var row Session
	err := s.db.First(&row, "key = ?", tokenKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session token: %w", err)
	}
	return row.Token, nil
}

// Set stores the token, replacing any previous one.
func (s *DBStore) Set(token string) error {
	row := Session{Key: tokenKey, Token: token}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	return nil
}

// Clear removes the stored token.
func (s *DBStore) Clear() error {
	if err := s.db.Delete(&Session{}, "key = ?", tokenKey).Error; err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}

// MemoryStore is an in-process Store for tests and embedded use.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore holding the given token.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	return s.Set("")
}
