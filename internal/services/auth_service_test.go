package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"thescent/internal/models"
	"thescent/internal/repositories"
)

func newTestAuth(t *testing.T) (*AuthService, repositories.UserRepository, *time.Time) {
	t.Helper()
	users := repositories.NewMemoryUserRepository()
	svc := NewAuthService(users)
	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	return svc, users, &clock
}

func registerTestUser(t *testing.T, svc *AuthService) *models.User {
	t.Helper()
	user, err := svc.Register(&models.RegisterRequest{
		Email:    "aroma@example.com",
		Username: "aromafan",
		Password: "lavender-fields-42",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	user := registerTestUser(t, svc)
	require.NotZero(t, user.ID)
	require.Equal(t, "user", user.Role)

	got, err := svc.Login("aroma@example.com", "lavender-fields-42")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	registerTestUser(t, svc)

	_, err := svc.Register(&models.RegisterRequest{
		Email:    "aroma@example.com",
		Username: "someoneelse",
		Password: "whatever-pass-1",
	})
	require.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = svc.Register(&models.RegisterRequest{
		Email:    "other@example.com",
		Username: "aromafan",
		Password: "whatever-pass-1",
	})
	require.ErrorIs(t, err, ErrDuplicateUsername)
}

// raceUserRepo lands another account right before Create, simulating a
// concurrent registration slipping in between the pre-checks and the insert.
type raceUserRepo struct {
	repositories.UserRepository
	racer *models.User
}

func (r *raceUserRepo) Create(user *models.User) error {
	if r.racer != nil {
		rc := *r.racer
		if err := r.UserRepository.Create(&rc); err != nil {
			return err
		}
		r.racer = nil
	}
	return r.UserRepository.Create(user)
}

func TestRegisterLostInsertRaceNamesField(t *testing.T) {
	users := &raceUserRepo{
		UserRepository: repositories.NewMemoryUserRepository(),
		racer:          &models.User{Email: "other@example.com", Username: "aromafan", PasswordHash: "x.y"},
	}
	svc := NewAuthService(users)

	_, err := svc.Register(&models.RegisterRequest{
		Email:    "aroma@example.com",
		Username: "aromafan",
		Password: "lavender-fields-42",
	})
	require.ErrorIs(t, err, ErrDuplicateUsername)

	users.racer = &models.User{Email: "aroma@example.com", Username: "someoneelse", PasswordHash: "x.y"}
	_, err = svc.Register(&models.RegisterRequest{
		Email:    "aroma@example.com",
		Username: "newname",
		Password: "lavender-fields-42",
	})
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	_, err := svc.Login("nobody@example.com", "anything")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLockoutAfterFiveFailures(t *testing.T) {
	svc, users, clock := newTestAuth(t)
	user := registerTestUser(t, svc)

	for i := 1; i <= MaxLoginAttempts-1; i++ {
		_, err := svc.Login("aroma@example.com", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials, "attempt %d", i)
	}

	// The fifth failure triggers the lock.
	_, err := svc.Login("aroma@example.com", "wrong-password")
	var locked *AccountLockedError
	require.ErrorAs(t, err, &locked)
	require.True(t, locked.Fresh)
	require.Equal(t, clock.Add(LockDuration), locked.Until)
	require.Equal(t, "Account locked for 30 minutes due to too many failed attempts", locked.Error())

	// The correct password does not get through a live lock, and the
	// attempt is not consumed.
	_, err = svc.Login("aroma@example.com", "lavender-fields-42")
	locked = nil
	require.ErrorAs(t, err, &locked)
	require.False(t, locked.Fresh)
	stored, err := users.GetByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, MaxLoginAttempts, stored.LoginAttempts)

	// Once the lock expires the correct password works and the lockout
	// state is cleared.
	*clock = clock.Add(LockDuration + time.Minute)
	got, err := svc.Login("aroma@example.com", "lavender-fields-42")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	stored, err = users.GetByID(user.ID)
	require.NoError(t, err)
	require.Zero(t, stored.LoginAttempts)
	require.Nil(t, stored.LockUntil)
}

func TestLockedErrorMessageCountsDown(t *testing.T) {
	svc, _, clock := newTestAuth(t)
	registerTestUser(t, svc)

	for i := 0; i < MaxLoginAttempts; i++ {
		svc.Login("aroma@example.com", "wrong-password")
	}

	*clock = clock.Add(18 * time.Minute)
	_, err := svc.Login("aroma@example.com", "lavender-fields-42")
	var locked *AccountLockedError
	require.ErrorAs(t, err, &locked)
	require.Equal(t, "Account is locked. Try again in 12 minutes.", locked.Error())
}

func TestExpiredLockDoesNotResetCounter(t *testing.T) {
	svc, users, clock := newTestAuth(t)
	user := registerTestUser(t, svc)

	for i := 0; i < MaxLoginAttempts; i++ {
		svc.Login("aroma@example.com", "wrong-password")
	}

	// Past the lock window a single further failure re-locks immediately,
	// because the counter survived the expiry.
	*clock = clock.Add(LockDuration + time.Minute)
	_, err := svc.Login("aroma@example.com", "wrong-password")
	var locked *AccountLockedError
	require.ErrorAs(t, err, &locked)
	require.True(t, locked.Fresh)
	require.Equal(t, clock.Add(LockDuration), locked.Until)

	stored, err := users.GetByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, MaxLoginAttempts+1, stored.LoginAttempts)
}

func TestVerifyPasswordFormat(t *testing.T) {
	svc, _, _ := newTestAuth(t)

	hash, err := svc.HashPassword("rosewater-and-oak")
	require.NoError(t, err)
	require.True(t, svc.VerifyPassword("rosewater-and-oak", hash))
	require.False(t, svc.VerifyPassword("rosewater-and-elm", hash))

	// Malformed stored values never verify.
	require.False(t, svc.VerifyPassword("anything", "not-a-hash"))
	require.False(t, svc.VerifyPassword("anything", "zz.zz"))
	require.False(t, svc.VerifyPassword("anything", ""))

	// A second derivation of the same password salts differently.
	hash2, err := svc.HashPassword("rosewater-and-oak")
	require.NoError(t, err)
	require.NotEqual(t, hash, hash2)
}

func TestCurrentAccount(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	user := registerTestUser(t, svc)

	got, err := svc.CurrentAccount(user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, got.Email)

	_, err = svc.CurrentAccount(9999)
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLockedErrorIsNotInvalidCredentials(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	registerTestUser(t, svc)

	var err error
	for i := 0; i < MaxLoginAttempts; i++ {
		_, err = svc.Login("aroma@example.com", "wrong-password")
	}
	require.False(t, errors.Is(err, ErrInvalidCredentials))
}
