package models

import "time"

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
	PaymentStatusRefunded   = "refunded"
)

type Order struct {
	ID                int       `json:"id"`
	UserID            int       `json:"user_id"`
	OrderNumber       string    `json:"order_number"`
	Status            string    `json:"status"`
	Total             string    `json:"total"`
	ShippingAddressID int       `json:"shipping_address_id"`
	BillingAddressID  int       `json:"billing_address_id"`
	PaymentStatus     string    `json:"payment_status"`
	// Opaque id from the payment provider's hosted flow.
	PaymentIntentID string    `json:"payment_intent_id,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID        int       `json:"id"`
	OrderID   int       `json:"order_id"`
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	// Unit price snapshotted at checkout time.
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"created_at"`

	Product *Product `json:"product,omitempty"`
}

type OrderView struct {
	Order
	Items []*OrderItem `json:"items"`
}

type CreateOrderRequest struct {
	ShippingAddressID int    `json:"shipping_address_id" binding:"required"`
	BillingAddressID  int    `json:"billing_address_id" binding:"required"`
	PaymentIntentID   string `json:"payment_intent_id"`
	Notes             string `json:"notes"`
}
