package repositories

import (
	"database/sql"
	"sync"
	"time"

	"thescent/internal/models"
)

type CartRepository interface {
	GetByUserID(userID int) (*models.Cart, error)
	Create(cart *models.Cart) error
	Items(cartID int) ([]*models.CartItem, error)
	GetItem(itemID int) (*models.CartItem, error)
	AddItem(item *models.CartItem) error
	UpdateItemQuantity(itemID, quantity int) (*models.CartItem, error)
	RemoveItem(itemID int) error
	Clear(cartID int) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepository(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) GetByUserID(userID int) (*models.Cart, error) {
	const q = `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`
	cart := &models.Cart{}
	err := r.DB.QueryRow(q, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return cart, nil
}

func (r *cartRepository) Create(cart *models.Cart) error {
	const q = `INSERT INTO carts (user_id) VALUES ($1) RETURNING id, created_at, updated_at`
	return translate(r.DB.QueryRow(q, cart.UserID).Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt))
}

const cartItemColumns = `id, cart_id, product_id, quantity, created_at, updated_at`

func scanCartItem(row interface{ Scan(...any) error }) (*models.CartItem, error) {
	item := &models.CartItem{}
	err := row.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return item, nil
}

func (r *cartRepository) Items(cartID int) ([]*models.CartItem, error) {
	rows, err := r.DB.Query(`SELECT `+cartItemColumns+` FROM cart_items WHERE cart_id = $1 ORDER BY id`, cartID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var res []*models.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, rows.Err()
}

func (r *cartRepository) GetItem(itemID int) (*models.CartItem, error) {
	return scanCartItem(r.DB.QueryRow(`SELECT `+cartItemColumns+` FROM cart_items WHERE id = $1`, itemID))
}

func (r *cartRepository) AddItem(item *models.CartItem) error {
	const q = `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1,$2,$3)
		RETURNING id, created_at, updated_at
	`
	return translate(r.DB.QueryRow(q, item.CartID, item.ProductID, item.Quantity).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt))
}

func (r *cartRepository) UpdateItemQuantity(itemID, quantity int) (*models.CartItem, error) {
	const q = `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + cartItemColumns
	return scanCartItem(r.DB.QueryRow(q, quantity, itemID))
}

func (r *cartRepository) RemoveItem(itemID int) error {
	_, err := r.DB.Exec(`DELETE FROM cart_items WHERE id = $1`, itemID)
	return translate(err)
}

func (r *cartRepository) Clear(cartID int) error {
	_, err := r.DB.Exec(`DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return translate(err)
}

type memoryCartRepository struct {
	mu         sync.Mutex
	nextCartID int
	nextItemID int
	carts      map[int]*models.Cart
	items      map[int]*models.CartItem
}

func NewMemoryCartRepository() CartRepository {
	return &memoryCartRepository{
		nextCartID: 1,
		nextItemID: 1,
		carts:      make(map[int]*models.Cart),
		items:      make(map[int]*models.CartItem),
	}
}

func (r *memoryCartRepository) GetByUserID(userID int) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cart := range r.carts {
		if cart.UserID == userID {
			cp := *cart
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryCartRepository) Create(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart.ID = r.nextCartID
	r.nextCartID++
	now := time.Now()
	cart.CreatedAt = now
	cart.UpdatedAt = now
	cp := *cart
	r.carts[cart.ID] = &cp
	return nil
}

func (r *memoryCartRepository) Items(cartID int) ([]*models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.CartItem
	for id := 1; id < r.nextItemID; id++ {
		if item, ok := r.items[id]; ok && item.CartID == cartID {
			cp := *item
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *memoryCartRepository) GetItem(itemID int) (*models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *memoryCartRepository) AddItem(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = r.nextItemID
	r.nextItemID++
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	cp := *item
	cp.Product = nil
	r.items[item.ID] = &cp
	return nil
}

func (r *memoryCartRepository) UpdateItemQuantity(itemID, quantity int) (*models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return nil, ErrNotFound
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	cp := *item
	return &cp, nil
}

func (r *memoryCartRepository) RemoveItem(itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, itemID)
	return nil
}

func (r *memoryCartRepository) Clear(cartID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.items {
		if item.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}
