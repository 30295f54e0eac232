package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"thescent/internal/models"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestRecordFailedLoginBelowThreshold(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	until := time.Now().Add(30 * time.Minute)

	mock.ExpectQuery(`UPDATE users`).
		WithArgs(7, 5, until).
		WillReturnRows(sqlmock.NewRows([]string{"login_attempts", "lock_until"}).AddRow(3, nil))

	attempts, lockUntil, err := repo.RecordFailedLogin(7, 5, until)
	if err != nil {
		t.Fatalf("RecordFailedLogin: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if lockUntil != nil {
		t.Errorf("lockUntil = %v, want nil", lockUntil)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestRecordFailedLoginReachesThreshold(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	until := time.Now().Add(30 * time.Minute)

	mock.ExpectQuery(`UPDATE users`).
		WithArgs(7, 5, until).
		WillReturnRows(sqlmock.NewRows([]string{"login_attempts", "lock_until"}).AddRow(5, until))

	attempts, lockUntil, err := repo.RecordFailedLogin(7, 5, until)
	if err != nil {
		t.Fatalf("RecordFailedLogin: %v", err)
	}
	if attempts != 5 {
		t.Errorf("attempts = %d, want 5", attempts)
	}
	if lockUntil == nil || !lockUntil.Equal(until) {
		t.Errorf("lockUntil = %v, want %v", lockUntil, until)
	}
}

func TestRecordFailedLoginUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	until := time.Now().Add(30 * time.Minute)

	mock.ExpectQuery(`UPDATE users`).
		WithArgs(99, 5, until).
		WillReturnError(sql.ErrNoRows)

	_, _, err := repo.RecordFailedLogin(99, 5, until)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateTranslatesUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: pqUniqueViolation})

	err := repo.Create(&models.User{Email: "dup@example.com", Username: "dup", PasswordHash: "h.s"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

func TestGetByEmailScansLockout(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now()
	lock := now.Add(10 * time.Minute)

	rows := sqlmock.NewRows([]string{
		"id", "email", "username", "password_hash",
		"first_name", "last_name", "phone",
		"role", "login_attempts", "lock_until", "created_at", "updated_at",
	}).AddRow(1, "a@example.com", "a", "h.s", "", "", "", "user", 5, lock, now, now)
	mock.ExpectQuery(`SELECT`).WithArgs("a@example.com").WillReturnRows(rows)

	u, err := repo.GetByEmail("a@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u.LoginAttempts != 5 {
		t.Errorf("LoginAttempts = %d, want 5", u.LoginAttempts)
	}
	if u.LockUntil == nil || !u.LockUntil.Equal(lock) {
		t.Errorf("LockUntil = %v, want %v", u.LockUntil, lock)
	}
}

func TestResetLoginAttempts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE users`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ResetLoginAttempts(7); err != nil {
		t.Fatalf("ResetLoginAttempts: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
