package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/scrypt"

	"thescent/internal/models"
	"thescent/internal/repositories"
)

// Lockout policy: the fifth consecutive failure locks the account for
// thirty minutes.
const (
	MaxLoginAttempts = 5
	LockDuration     = 30 * time.Minute
)

// scrypt parameters for password derivation.
const (
	scryptN      = 32768
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16
)

var (
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// AccountLockedError reports a login rejected because of the lockout policy.
// Remaining is how long the lock still holds at the time of the attempt.
type AccountLockedError struct {
	Until     time.Time
	Remaining time.Duration
	// Fresh marks the failure that triggered the lock, as opposed to an
	// attempt against an already locked account.
	Fresh bool
}

func (e *AccountLockedError) Error() string {
	if e.Fresh {
		return fmt.Sprintf("Account locked for %d minutes due to too many failed attempts", int(LockDuration.Minutes()))
	}
	mins := int(e.Remaining.Round(time.Minute).Minutes())
	if mins <= 1 {
		return "Account is locked. Try again in 1 minute."
	}
	return fmt.Sprintf("Account is locked. Try again in %d minutes.", mins)
}

// AuthService verifies credentials, manages the password hash and enforces
// the failed-login lockout policy.
type AuthService struct {
	users repositories.UserRepository
	now   func() time.Time
}

func NewAuthService(users repositories.UserRepository) *AuthService {
	return &AuthService{users: users, now: time.Now}
}

// HashPassword derives a salted scrypt hash and packs it with its salt as
// "hash.salt", both hex encoded.
func (s *AuthService) HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	hash, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("derive password hash: %w", err)
	}
	return hex.EncodeToString(hash) + "." + hex.EncodeToString(salt), nil
}

// VerifyPassword recomputes the scrypt hash with the stored salt and compares
// in constant time.
func (s *AuthService) VerifyPassword(password, stored string) bool {
	parts := strings.SplitN(stored, ".", 2)
	if len(parts) != 2 {
		return false
	}
	hash, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	candidate, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(hash, candidate) == 1
}

// Register creates an account with a fresh salted hash and a clean lockout
// state. Email and username conflicts surface as the dedicated errors.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.User, error) {
	if _, err := s.users.GetByEmail(req.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByUsername(req.Username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
	}
	if err := s.users.Create(user); err != nil {
		// The pre-checks above can still lose the race to a concurrent
		// insert. Re-run the lookups to name the conflicting field.
		if errors.Is(err, repositories.ErrDuplicate) {
			if _, lookErr := s.users.GetByEmail(req.Email); lookErr == nil {
				return nil, ErrDuplicateEmail
			}
			if _, lookErr := s.users.GetByUsername(req.Username); lookErr == nil {
				return nil, ErrDuplicateUsername
			}
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials for the account registered under email.
//
// An unknown email reports ErrInvalidCredentials so callers cannot probe
// which addresses exist. A live lock rejects the attempt without consuming
// it. An expired lock does not reset the counter: the next success clears
// it, the next failure keeps incrementing from the stored count.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := s.now()
	if user.LockUntil != nil && user.LockUntil.After(now) {
		return nil, &AccountLockedError{Until: *user.LockUntil, Remaining: user.LockUntil.Sub(now)}
	}

	if s.VerifyPassword(password, user.PasswordHash) {
		if err := s.users.ResetLoginAttempts(user.ID); err != nil {
			return nil, err
		}
		user.LoginAttempts = 0
		user.LockUntil = nil
		return user, nil
	}

	attempts, lockUntil, err := s.users.RecordFailedLogin(user.ID, MaxLoginAttempts, now.Add(LockDuration))
	if err != nil {
		return nil, err
	}
	if attempts >= MaxLoginAttempts && lockUntil != nil && lockUntil.After(now) {
		return nil, &AccountLockedError{Until: *lockUntil, Remaining: lockUntil.Sub(now), Fresh: true}
	}
	return nil, ErrInvalidCredentials
}

// CurrentAccount resolves the account behind an authenticated user id.
func (s *AuthService) CurrentAccount(userID int) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	return user, nil
}
