package pdf

import (
	"bytes"
	"testing"
	"time"

	"thescent/internal/models"
)

func TestGenerateInvoice(t *testing.T) {
	gen := NewInvoiceGenerator()
	order := &models.Order{
		ID:            1,
		OrderNumber:   "ORD-AB12CD34EF56",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		Total:         "62.48",
	}
	items := []*models.OrderItem{
		{ProductID: 1, Quantity: 2, Price: "24.99", Product: &models.Product{ID: 1, Name: "Lavender Oil"}},
		{ProductID: 2, Quantity: 1, Price: "12.50"},
	}

	data, err := gen.GenerateInvoice(InvoiceData{
		Order:    order,
		Items:    items,
		Customer: "Jamie Buyer",
		IssuedAt: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("GenerateInvoice: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty PDF output")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with PDF header, got %q", data[:8])
	}
}
