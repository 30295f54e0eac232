package services

import (
	"errors"
	"time"

	"thescent/internal/models"
	"thescent/internal/repositories"
	"thescent/internal/utils"
)

// ErrSessionNotFound covers missing and expired sessions alike.
var ErrSessionNotFound = errors.New("session not found")

// SessionService owns the opaque token <-> account association. Cookie
// mechanics stay in the HTTP layer.
type SessionService struct {
	repo repositories.SessionRepository
	ttl  time.Duration
	now  func() time.Time
}

func NewSessionService(repo repositories.SessionRepository, ttl time.Duration) *SessionService {
	return &SessionService{repo: repo, ttl: ttl, now: time.Now}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Create issues a fresh session for the account.
func (s *SessionService) Create(userID int) (*models.Session, error) {
	token, err := utils.NewSessionToken(32)
	if err != nil {
		return nil, err
	}
	now := s.now()
	session := &models.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Resolve returns the session behind a token. Expired sessions read as
// absent and are removed lazily.
func (s *SessionService) Resolve(token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	session, err := s.repo.GetByToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if !session.ExpiresAt.After(s.now()) {
		_ = s.repo.Delete(token)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Destroy drops the session. Destroying an unknown token is a no-op.
func (s *SessionService) Destroy(token string) error {
	if token == "" {
		return nil
	}
	return s.repo.Delete(token)
}
