package repositories

import (
	"sync"
	"time"

	"thescent/internal/models"
)

// memoryUserRepository is the in-memory backend, used in tests and when
// storage.driver is "memory". The mutex gives the same atomicity on the
// lockout counter that the SQL backend gets from its single UPDATE.
type memoryUserRepository struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*models.User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{nextID: 1, users: make(map[int]*models.User)}
}

func (r *memoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
		if u.Username == user.Username {
			return ErrDuplicate
		}
	}
	user.ID = r.nextID
	r.nextID++
	if user.Role == "" {
		user.Role = "user"
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepository) GetByID(id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) UpdateProfile(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	u.FirstName = user.FirstName
	u.LastName = user.LastName
	u.Phone = user.Phone
	u.UpdatedAt = time.Now()
	return nil
}

func (r *memoryUserRepository) RecordFailedLogin(id, threshold int, until time.Time) (int, *time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return 0, nil, ErrNotFound
	}
	u.LoginAttempts++
	if u.LoginAttempts >= threshold {
		t := until
		u.LockUntil = &t
	}
	u.UpdatedAt = time.Now()
	if u.LockUntil == nil {
		return u.LoginAttempts, nil, nil
	}
	t := *u.LockUntil
	return u.LoginAttempts, &t, nil
}

func (r *memoryUserRepository) ResetLoginAttempts(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LoginAttempts = 0
	u.LockUntil = nil
	u.UpdatedAt = time.Now()
	return nil
}
