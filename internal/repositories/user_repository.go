package repositories

import (
	"database/sql"
	"time"

	"thescent/internal/models"
)

// UserRepository is the narrow surface the auth layer needs: lookups by the
// three identities, creation, profile updates and atomic lockout bookkeeping.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	UpdateProfile(user *models.User) error

	// RecordFailedLogin increments the failed-attempt counter and, when the
	// incremented counter reaches threshold, sets the lock expiry to until.
	// Counter and lock are written in one statement so concurrent attempts
	// cannot leave them inconsistent.
	RecordFailedLogin(id, threshold int, until time.Time) (attempts int, lockUntil *time.Time, err error)
	// ResetLoginAttempts zeroes the counter and clears any lock.
	ResetLoginAttempts(id int) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, email, username, password_hash,
	COALESCE(first_name,''), COALESCE(last_name,''), COALESCE(phone,''),
	COALESCE(role,'user'), login_attempts, lock_until, created_at, updated_at
`

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var lockUntil sql.NullTime
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.Phone,
		&u.Role, &u.LoginAttempts, &lockUntil, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	if lockUntil.Valid {
		t := lockUntil.Time
		u.LockUntil = &t
	}
	return u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (email, username, password_hash, first_name, last_name, phone, role, login_attempts)
		VALUES ($1,$2,$3,$4,$5,$6,$7,0)
		RETURNING id, created_at, updated_at
	`
	role := user.Role
	if role == "" {
		role = "user"
	}
	err := r.DB.QueryRow(q,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Phone,
		role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	user.Role = role
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	return r.scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return r.scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	return r.scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *userRepository) UpdateProfile(user *models.User) error {
	const q = `
		UPDATE users
		SET first_name=$1, last_name=$2, phone=$3, updated_at=NOW()
		WHERE id=$4
	`
	_, err := r.DB.Exec(q, user.FirstName, user.LastName, user.Phone, user.ID)
	return translate(err)
}

func (r *userRepository) RecordFailedLogin(id, threshold int, until time.Time) (int, *time.Time, error) {
	const q = `
		UPDATE users
		SET login_attempts = login_attempts + 1,
		    lock_until = CASE WHEN login_attempts + 1 >= $2 THEN $3 ELSE lock_until END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING login_attempts, lock_until
	`
	var attempts int
	var lockUntil sql.NullTime
	if err := r.DB.QueryRow(q, id, threshold, until).Scan(&attempts, &lockUntil); err != nil {
		return 0, nil, translate(err)
	}
	if lockUntil.Valid {
		t := lockUntil.Time
		return attempts, &t, nil
	}
	return attempts, nil, nil
}

func (r *userRepository) ResetLoginAttempts(id int) error {
	const q = `
		UPDATE users
		SET login_attempts = 0, lock_until = NULL, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.DB.Exec(q, id)
	return translate(err)
}
