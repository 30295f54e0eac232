package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"thescent/internal/models"
	"thescent/internal/repositories"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
)

type OrderService struct {
	orders    repositories.OrderRepository
	carts     repositories.CartRepository
	products  repositories.ProductRepository
	addresses repositories.AddressRepository
	users     repositories.UserRepository
	email     EmailService
	notifier  *TelegramNotifier
}

func NewOrderService(
	orders repositories.OrderRepository,
	carts repositories.CartRepository,
	products repositories.ProductRepository,
	addresses repositories.AddressRepository,
	users repositories.UserRepository,
	email EmailService,
	notifier *TelegramNotifier,
) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		products:  products,
		addresses: addresses,
		users:     users,
		email:     email,
		notifier:  notifier,
	}
}

// newOrderNumber derives a short human-readable reference from a random uuid.
func newOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORD-" + id[:12]
}

// CreateFromCart turns the user's cart into an order. Unit prices are
// snapshotted from the catalog at checkout time, so later price changes do
// not affect placed orders. The cart is cleared on success.
func (s *OrderService) CreateFromCart(userID int, req *models.CreateOrderRequest) (*models.OrderView, error) {
	cart, err := s.carts.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	cartItems, err := s.carts.Items(cart.ID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	if err := s.checkAddress(userID, req.ShippingAddressID); err != nil {
		return nil, err
	}
	if req.BillingAddressID != req.ShippingAddressID {
		if err := s.checkAddress(userID, req.BillingAddressID); err != nil {
			return nil, err
		}
	}

	var total float64
	items := make([]*models.OrderItem, 0, len(cartItems))
	for _, ci := range cartItems {
		product, err := s.products.GetByID(ci.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", ci.ProductID, err)
		}
		price, err := strconv.ParseFloat(product.Price, 64)
		if err != nil {
			return nil, fmt.Errorf("product %d has malformed price %q", product.ID, product.Price)
		}
		total += price * float64(ci.Quantity)
		items = append(items, &models.OrderItem{
			ProductID: product.ID,
			Quantity:  ci.Quantity,
			Price:     product.Price,
			Product:   product,
		})
	}

	order := &models.Order{
		UserID:            userID,
		OrderNumber:       newOrderNumber(),
		Status:            models.OrderStatusPending,
		Total:             strconv.FormatFloat(total, 'f', 2, 64),
		ShippingAddressID: req.ShippingAddressID,
		BillingAddressID:  req.BillingAddressID,
		PaymentStatus:     models.PaymentStatusPending,
		PaymentIntentID:   req.PaymentIntentID,
		Notes:             req.Notes,
	}
	if err := s.orders.Create(order, items); err != nil {
		return nil, err
	}
	if err := s.carts.Clear(cart.ID); err != nil {
		log.Printf("[order][create] clearing cart %d: %v", cart.ID, err)
	}

	// Confirmation mail and staff notification are best effort, the order
	// is already placed.
	if s.email != nil {
		if user, err := s.users.GetByID(userID); err == nil {
			if err := s.email.SendOrderConfirmation(user.Email, order, items); err != nil {
				log.Printf("[order][email] order %s: %v", order.OrderNumber, err)
			}
		}
	}
	s.notifier.NotifyNewOrder(order, len(items))

	return &models.OrderView{Order: *order, Items: items}, nil
}

func (s *OrderService) checkAddress(userID, addressID int) error {
	addr, err := s.addresses.GetByID(addressID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAddressNotFound
		}
		return err
	}
	if addr.UserID != userID {
		return ErrAddressNotFound
	}
	return nil
}

func (s *OrderService) List(userID int) ([]*models.Order, error) {
	return s.orders.ListByUser(userID)
}

func (s *OrderService) Get(userID, orderID int) (*models.OrderView, error) {
	order, err := s.ownedOrder(userID, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.orders.Items(order.ID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if product, err := s.products.GetByID(item.ProductID); err == nil {
			item.Product = product
		}
	}
	return &models.OrderView{Order: *order, Items: items}, nil
}

func (s *OrderService) ownedOrder(userID, orderID int) (*models.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
