package repositories

import (
	"database/sql"
	"sync"
	"time"

	"thescent/internal/models"
)

type OrderRepository interface {
	// Create persists the order and its items together; in the SQL backend
	// this runs in one transaction.
	Create(order *models.Order, items []*models.OrderItem) error
	ListByUser(userID int) ([]*models.Order, error)
	GetByID(id int) (*models.Order, error)
	Items(orderID int) ([]*models.OrderItem, error)
	UpdatePaymentStatus(id int, paymentStatus, orderStatus string) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `
	id, user_id, order_number, status, total::text, shipping_address_id,
	billing_address_id, payment_status, COALESCE(payment_intent_id,''),
	COALESCE(notes,''), created_at, updated_at
`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	o := &models.Order{}
	err := row.Scan(
		&o.ID, &o.UserID, &o.OrderNumber, &o.Status, &o.Total, &o.ShippingAddressID,
		&o.BillingAddressID, &o.PaymentStatus, &o.PaymentIntentID,
		&o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return o, nil
}

func (r *orderRepository) Create(order *models.Order, items []*models.OrderItem) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO orders (user_id, order_number, status, total, shipping_address_id, billing_address_id, payment_status, payment_intent_id, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NULLIF($8,''),NULLIF($9,''))
		RETURNING id, created_at, updated_at
	`
	if err := tx.QueryRow(q,
		order.UserID, order.OrderNumber, order.Status, order.Total,
		order.ShippingAddressID, order.BillingAddressID, order.PaymentStatus,
		order.PaymentIntentID, order.Notes,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return translate(err)
	}

	const itemQ = `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at
	`
	for _, item := range items {
		item.OrderID = order.ID
		if err := tx.QueryRow(itemQ, order.ID, item.ProductID, item.Quantity, item.Price).
			Scan(&item.ID, &item.CreatedAt); err != nil {
			return translate(err)
		}
	}
	return tx.Commit()
}

func (r *orderRepository) ListByUser(userID int) ([]*models.Order, error) {
	rows, err := r.DB.Query(`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var res []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, rows.Err()
}

func (r *orderRepository) GetByID(id int) (*models.Order, error) {
	return scanOrder(r.DB.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
}

func (r *orderRepository) Items(orderID int) ([]*models.OrderItem, error) {
	const q = `
		SELECT id, order_id, product_id, quantity, price::text, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := r.DB.Query(q, orderID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var res []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, rows.Err()
}

func (r *orderRepository) UpdatePaymentStatus(id int, paymentStatus, orderStatus string) error {
	const q = `
		UPDATE orders
		SET payment_status = $1, status = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.DB.Exec(q, paymentStatus, orderStatus, id)
	return translate(err)
}

type memoryOrderRepository struct {
	mu         sync.Mutex
	nextID     int
	nextItemID int
	orders     map[int]*models.Order
	items      map[int][]*models.OrderItem
}

func NewMemoryOrderRepository() OrderRepository {
	return &memoryOrderRepository{
		nextID:     1,
		nextItemID: 1,
		orders:     make(map[int]*models.Order),
		items:      make(map[int][]*models.OrderItem),
	}
}

func (r *memoryOrderRepository) Create(order *models.Order, items []*models.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = r.nextID
	r.nextID++
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	cp := *order
	r.orders[order.ID] = &cp
	for _, item := range items {
		item.ID = r.nextItemID
		r.nextItemID++
		item.OrderID = order.ID
		item.CreatedAt = now
		icp := *item
		icp.Product = nil
		r.items[order.ID] = append(r.items[order.ID], &icp)
	}
	return nil
}

func (r *memoryOrderRepository) ListByUser(userID int) ([]*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.Order
	for id := r.nextID - 1; id >= 1; id-- {
		if o, ok := r.orders[id]; ok && o.UserID == userID {
			cp := *o
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *memoryOrderRepository) GetByID(id int) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *memoryOrderRepository) Items(orderID int) ([]*models.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.OrderItem
	for _, item := range r.items[orderID] {
		cp := *item
		res = append(res, &cp)
	}
	return res, nil
}

func (r *memoryOrderRepository) UpdatePaymentStatus(id int, paymentStatus, orderStatus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.PaymentStatus = paymentStatus
	o.Status = orderStatus
	o.UpdatedAt = time.Now()
	return nil
}
