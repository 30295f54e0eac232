package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"thescent/internal/models"
	"thescent/internal/repositories"
)

type checkoutFixture struct {
	orders    *OrderService
	carts     *CartService
	users     repositories.UserRepository
	addresses repositories.AddressRepository
}

func newCheckoutFixture(t *testing.T) (*checkoutFixture, repositories.ProductRepository) {
	t.Helper()
	products, _ := newTestCatalogRepos(t)
	cartRepo := repositories.NewMemoryCartRepository()
	users := repositories.NewMemoryUserRepository()
	addresses := repositories.NewMemoryAddressRepository()
	orderRepo := repositories.NewMemoryOrderRepository()

	f := &checkoutFixture{
		orders:    NewOrderService(orderRepo, cartRepo, products, addresses, users, nil, nil),
		carts:     NewCartService(cartRepo, products),
		users:     users,
		addresses: addresses,
	}
	return f, products
}

func (f *checkoutFixture) seedUserWithAddress(t *testing.T) (*models.User, *models.Address) {
	t.Helper()
	user := &models.User{Email: "buyer@example.com", Username: "buyer", PasswordHash: "x.y"}
	require.NoError(t, f.users.Create(user))
	addr := &models.Address{
		UserID:       user.ID,
		AddressLine1: "12 Rosemary Lane",
		City:         "Portland",
		State:        "OR",
		PostalCode:   "97201",
		Country:      "US",
		IsDefault:    true,
	}
	require.NoError(t, f.addresses.Create(addr))
	return user, addr
}

func TestCreateOrderFromCart(t *testing.T) {
	f, products := newCheckoutFixture(t)
	user, addr := f.seedUserWithAddress(t)

	oil := seedProduct(t, products, "Lavender Oil", "lavender-oil", "24.99")
	soap := seedProduct(t, products, "Cedar Soap", "cedar-soap", "12.50")
	_, err := f.carts.AddItem(user.ID, oil.ID, 2)
	require.NoError(t, err)
	_, err = f.carts.AddItem(user.ID, soap.ID, 1)
	require.NoError(t, err)

	view, err := f.orders.CreateFromCart(user.ID, &models.CreateOrderRequest{
		ShippingAddressID: addr.ID,
		BillingAddressID:  addr.ID,
		PaymentIntentID:   "pi_12345",
	})
	require.NoError(t, err)

	// 2 * 24.99 + 12.50
	require.Equal(t, "62.48", view.Total)
	require.Equal(t, models.OrderStatusPending, view.Status)
	require.Equal(t, models.PaymentStatusPending, view.PaymentStatus)
	require.True(t, strings.HasPrefix(view.OrderNumber, "ORD-"))
	require.Len(t, view.Items, 2)
	for _, item := range view.Items {
		require.NotEmpty(t, item.Price)
	}

	// Price is snapshotted: changing the catalog later does not touch the
	// stored order.
	got, err := f.orders.Get(user.ID, view.ID)
	require.NoError(t, err)
	require.Equal(t, "62.48", got.Total)

	// The cart was cleared.
	cart, err := f.carts.View(user.ID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	f, _ := newCheckoutFixture(t)
	user, addr := f.seedUserWithAddress(t)

	_, err := f.orders.CreateFromCart(user.ID, &models.CreateOrderRequest{
		ShippingAddressID: addr.ID,
		BillingAddressID:  addr.ID,
	})
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateOrderForeignAddress(t *testing.T) {
	f, products := newCheckoutFixture(t)
	user, _ := f.seedUserWithAddress(t)

	other := &models.User{Email: "other@example.com", Username: "other", PasswordHash: "x.y"}
	require.NoError(t, f.users.Create(other))
	foreign := &models.Address{UserID: other.ID, AddressLine1: "1 Elm St", City: "Salem", State: "OR", PostalCode: "97301", Country: "US"}
	require.NoError(t, f.addresses.Create(foreign))

	oil := seedProduct(t, products, "Citrus Oil", "citrus-oil", "19.99")
	_, err := f.carts.AddItem(user.ID, oil.ID, 1)
	require.NoError(t, err)

	_, err = f.orders.CreateFromCart(user.ID, &models.CreateOrderRequest{
		ShippingAddressID: foreign.ID,
		BillingAddressID:  foreign.ID,
	})
	require.ErrorIs(t, err, ErrAddressNotFound)
}

func TestOrderOwnership(t *testing.T) {
	f, products := newCheckoutFixture(t)
	user, addr := f.seedUserWithAddress(t)

	oil := seedProduct(t, products, "Lavender Oil", "lavender-oil", "24.99")
	_, err := f.carts.AddItem(user.ID, oil.ID, 1)
	require.NoError(t, err)
	view, err := f.orders.CreateFromCart(user.ID, &models.CreateOrderRequest{
		ShippingAddressID: addr.ID,
		BillingAddressID:  addr.ID,
	})
	require.NoError(t, err)

	_, err = f.orders.Get(user.ID+1, view.ID)
	require.ErrorIs(t, err, ErrOrderNotFound)

	mine, err := f.orders.List(user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	theirs, err := f.orders.List(user.ID + 1)
	require.NoError(t, err)
	require.Empty(t, theirs)
}

func TestOrderNumbersAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := newOrderNumber()
		require.True(t, strings.HasPrefix(n, "ORD-"))
		require.Len(t, n, len("ORD-")+12)
		require.False(t, seen[n], "duplicate order number %s", n)
		seen[n] = true
	}
}
