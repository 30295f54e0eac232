package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"thescent/internal/models"
	"thescent/internal/pdf"
	"thescent/internal/services"
)

type OrderHandler struct {
	orders   *services.OrderService
	auth     *services.AuthService
	invoices pdf.Generator
}

func NewOrderHandler(orders *services.OrderService, auth *services.AuthService, invoices pdf.Generator) *OrderHandler {
	return &OrderHandler{orders: orders, auth: auth, invoices: invoices}
}

// @Summary      Place order
// @Description  Builds an order from the caller's cart and clears the cart
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        order  body      models.CreateOrderRequest  true  "Checkout details"
// @Success      201    {object}  models.OrderView
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	userID := currentUserID(c)
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.orders.CreateFromCart(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		case errors.Is(err, services.ErrAddressNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Address not found"})
		default:
			log.Printf("[orders][create] userID=%d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		}
		return
	}
	log.Printf("[orders][create] userID=%d order=%s total=%s", userID, view.OrderNumber, view.Total)
	c.JSON(http.StatusCreated, view)
}

// @Summary      List my orders
// @Tags         Orders
// @Produce      json
// @Success      200  {array}  models.Order
// @Failure      401  {object}  map[string]string
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	userID := currentUserID(c)
	orders, err := h.orders.List(userID)
	if err != nil {
		log.Printf("[orders][list] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// @Summary      Order details
// @Tags         Orders
// @Produce      json
// @Param        id  path      int  true  "Order id"
// @Success      200  {object}  models.OrderView
// @Failure      404  {object}  map[string]string
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	userID := currentUserID(c)
	orderID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	view, err := h.orders.Get(userID, orderID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Printf("[orders][get] userID=%d orderID=%d: %v", userID, orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary      Order invoice
// @Description  Renders the order as a PDF invoice
// @Tags         Orders
// @Produce      application/pdf
// @Param        id  path  int  true  "Order id"
// @Success      200  {file}    file
// @Failure      404  {object}  map[string]string
// @Router       /api/orders/{id}/invoice [get]
func (h *OrderHandler) Invoice(c *gin.Context) {
	userID := currentUserID(c)
	orderID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	view, err := h.orders.Get(userID, orderID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Printf("[orders][invoice] userID=%d orderID=%d: %v", userID, orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}

	customer := fmt.Sprintf("Customer #%d", userID)
	if user, err := h.auth.CurrentAccount(userID); err == nil {
		customer = user.Username
		if user.FirstName != "" {
			customer = user.FirstName + " " + user.LastName
		}
	}

	data, err := h.invoices.GenerateInvoice(pdf.InvoiceData{
		Order:    &view.Order,
		Items:    view.Items,
		Customer: customer,
		IssuedAt: time.Now(),
	})
	if err != nil {
		log.Printf("[orders][invoice] render orderID=%d: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render invoice"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_%s.pdf", view.OrderNumber))
	c.Data(http.StatusOK, "application/pdf", data)
}
