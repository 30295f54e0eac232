package repositories

import (
	"database/sql"
	"sync"
	"time"

	"thescent/internal/models"
)

type SessionRepository interface {
	Create(s *models.Session) error
	GetByToken(token string) (*models.Session, error)
	Delete(token string) error
	DeleteExpired(now time.Time) error
}

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) SessionRepository {
	return &sessionRepository{DB: db}
}

func (r *sessionRepository) Create(s *models.Session) error {
	const q = `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES ($1,$2,$3,$4)
	`
	_, err := r.DB.Exec(q, s.Token, s.UserID, s.CreatedAt, s.ExpiresAt)
	return translate(err)
}

func (r *sessionRepository) GetByToken(token string) (*models.Session, error) {
	const q = `
		SELECT token, user_id, created_at, expires_at
		FROM sessions
		WHERE token = $1
	`
	s := &models.Session{}
	err := r.DB.QueryRow(q, token).Scan(&s.Token, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		return nil, translate(err)
	}
	return s, nil
}

func (r *sessionRepository) Delete(token string) error {
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE token = $1`, token)
	return translate(err)
}

func (r *sessionRepository) DeleteExpired(now time.Time) error {
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE expires_at <= $1`, now)
	return translate(err)
}

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{sessions: make(map[string]*models.Session)}
}

func (r *memorySessionRepository) Create(s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions[s.Token] = &cp
	return nil
}

func (r *memorySessionRepository) GetByToken(token string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memorySessionRepository) Delete(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

func (r *memorySessionRepository) DeleteExpired(now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, s := range r.sessions {
		if !s.ExpiresAt.After(now) {
			delete(r.sessions, token)
		}
	}
	return nil
}
