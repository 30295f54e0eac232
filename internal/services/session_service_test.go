package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"thescent/internal/repositories"
)

func newTestSessions(t *testing.T) (*SessionService, *time.Time) {
	t.Helper()
	svc := NewSessionService(repositories.NewMemorySessionRepository(), 7*24*time.Hour)
	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	return svc, &clock
}

func TestSessionLifecycle(t *testing.T) {
	svc, _ := newTestSessions(t)

	session, err := svc.Create(42)
	require.NoError(t, err)
	require.Len(t, session.Token, 64) // 32 random bytes, hex encoded
	require.Equal(t, 42, session.UserID)

	got, err := svc.Resolve(session.Token)
	require.NoError(t, err)
	require.Equal(t, 42, got.UserID)

	require.NoError(t, svc.Destroy(session.Token))
	_, err = svc.Resolve(session.Token)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionTokensAreUnique(t *testing.T) {
	svc, _ := newTestSessions(t)
	a, err := svc.Create(1)
	require.NoError(t, err)
	b, err := svc.Create(1)
	require.NoError(t, err)
	require.NotEqual(t, a.Token, b.Token)

	// Both stay valid, logging in twice does not kick the first session.
	_, err = svc.Resolve(a.Token)
	require.NoError(t, err)
	_, err = svc.Resolve(b.Token)
	require.NoError(t, err)
}

func TestSessionExpiry(t *testing.T) {
	svc, clock := newTestSessions(t)

	session, err := svc.Create(7)
	require.NoError(t, err)

	*clock = clock.Add(7*24*time.Hour - time.Second)
	_, err = svc.Resolve(session.Token)
	require.NoError(t, err)

	*clock = clock.Add(2 * time.Second)
	_, err = svc.Resolve(session.Token)
	require.ErrorIs(t, err, ErrSessionNotFound)

	// The expired row was removed lazily, a later resolve still misses.
	_, err = svc.Resolve(session.Token)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDestroyUnknownTokenIsNoop(t *testing.T) {
	svc, _ := newTestSessions(t)
	require.NoError(t, svc.Destroy("deadbeef"))
	require.NoError(t, svc.Destroy(""))
}

func TestResolveEmptyToken(t *testing.T) {
	svc, _ := newTestSessions(t)
	_, err := svc.Resolve("")
	require.ErrorIs(t, err, ErrSessionNotFound)
}
