package repositories

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"thescent/internal/models"
)

func TestUpdatePaymentStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectExec(`UPDATE orders`).
		WithArgs("paid", "processing", 12).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePaymentStatus(12, "paid", "processing"); err != nil {
		t.Fatalf("UpdatePaymentStatus: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUpdatePaymentStatusMemory(t *testing.T) {
	repo := NewMemoryOrderRepository()
	order := &models.Order{
		UserID:            1,
		OrderNumber:       "ORD-TESTPAY0001",
		Status:            "pending",
		Total:             "24.99",
		ShippingAddressID: 1,
		BillingAddressID:  1,
		PaymentStatus:     "pending",
	}
	if err := repo.Create(order, []*models.OrderItem{{ProductID: 1, Quantity: 1, Price: "24.99"}}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.UpdatePaymentStatus(order.ID, "paid", "processing"); err != nil {
		t.Fatalf("UpdatePaymentStatus: %v", err)
	}
	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PaymentStatus != "paid" {
		t.Errorf("PaymentStatus = %q, want %q", got.PaymentStatus, "paid")
	}
	if got.Status != "processing" {
		t.Errorf("Status = %q, want %q", got.Status, "processing")
	}

	if err := repo.UpdatePaymentStatus(9999, "paid", "processing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
