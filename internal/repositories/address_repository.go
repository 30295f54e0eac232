package repositories

import (
	"database/sql"
	"sync"
	"time"

	"thescent/internal/models"
)

type AddressRepository interface {
	ListByUser(userID int) ([]*models.Address, error)
	GetByID(id int) (*models.Address, error)
	Create(a *models.Address) error
	Update(a *models.Address) error
	Delete(id int) error
	// ClearDefault unsets is_default on every address of the user.
	ClearDefault(userID int) error
}

type addressRepository struct {
	DB *sql.DB
}

func NewAddressRepository(db *sql.DB) AddressRepository {
	return &addressRepository{DB: db}
}

const addressColumns = `
	id, user_id, address_line1, COALESCE(address_line2,''), city, state,
	postal_code, country, is_default, created_at, updated_at
`

func scanAddress(row interface{ Scan(...any) error }) (*models.Address, error) {
	a := &models.Address{}
	err := row.Scan(
		&a.ID, &a.UserID, &a.AddressLine1, &a.AddressLine2, &a.City, &a.State,
		&a.PostalCode, &a.Country, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

func (r *addressRepository) ListByUser(userID int) ([]*models.Address, error) {
	rows, err := r.DB.Query(`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var res []*models.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *addressRepository) GetByID(id int) (*models.Address, error) {
	return scanAddress(r.DB.QueryRow(`SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id))
}

func (r *addressRepository) Create(a *models.Address) error {
	const q = `
		INSERT INTO addresses (user_id, address_line1, address_line2, city, state, postal_code, country, is_default)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at
	`
	return translate(r.DB.QueryRow(q,
		a.UserID, a.AddressLine1, a.AddressLine2, a.City, a.State, a.PostalCode, a.Country, a.IsDefault,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt))
}

func (r *addressRepository) Update(a *models.Address) error {
	const q = `
		UPDATE addresses
		SET address_line1=$1, address_line2=$2, city=$3, state=$4, postal_code=$5, country=$6, is_default=$7, updated_at=NOW()
		WHERE id=$8
	`
	_, err := r.DB.Exec(q, a.AddressLine1, a.AddressLine2, a.City, a.State, a.PostalCode, a.Country, a.IsDefault, a.ID)
	return translate(err)
}

func (r *addressRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM addresses WHERE id = $1`, id)
	return translate(err)
}

func (r *addressRepository) ClearDefault(userID int) error {
	_, err := r.DB.Exec(`UPDATE addresses SET is_default = FALSE, updated_at = NOW() WHERE user_id = $1`, userID)
	return translate(err)
}

type memoryAddressRepository struct {
	mu        sync.Mutex
	nextID    int
	addresses map[int]*models.Address
}

func NewMemoryAddressRepository() AddressRepository {
	return &memoryAddressRepository{nextID: 1, addresses: make(map[int]*models.Address)}
}

func (r *memoryAddressRepository) ListByUser(userID int) ([]*models.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.Address
	for id := 1; id < r.nextID; id++ {
		if a, ok := r.addresses[id]; ok && a.UserID == userID {
			cp := *a
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *memoryAddressRepository) GetByID(id int) (*models.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.addresses[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memoryAddressRepository) Create(a *models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.nextID
	r.nextID++
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	cp := *a
	r.addresses[a.ID] = &cp
	return nil
}

func (r *memoryAddressRepository) Update(a *models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.addresses[a.ID]
	if !ok {
		return ErrNotFound
	}
	existing.AddressLine1 = a.AddressLine1
	existing.AddressLine2 = a.AddressLine2
	existing.City = a.City
	existing.State = a.State
	existing.PostalCode = a.PostalCode
	existing.Country = a.Country
	existing.IsDefault = a.IsDefault
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *memoryAddressRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.addresses, id)
	return nil
}

func (r *memoryAddressRepository) ClearDefault(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.addresses {
		if a.UserID == userID {
			a.IsDefault = false
		}
	}
	return nil
}
