package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"thescent/internal/models"
	"thescent/internal/repositories"
	"thescent/internal/services"
)

type CartHandler struct {
	carts *services.CartService
}

func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// @Summary      Get cart
// @Description  Returns the caller's cart, creating it on first access
// @Tags         Cart
// @Produce      json
// @Success      200  {object}  models.CartView
// @Failure      401  {object}  map[string]string
// @Router       /api/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := currentUserID(c)
	view, err := h.carts.View(userID)
	if err != nil {
		log.Printf("[cart][view] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary      Add cart item
// @Description  Adds a product to the cart, merging quantity if already present
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        item  body      models.AddCartItemRequest  true  "Product and quantity"
// @Success      201   {object}  models.CartItem
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := currentUserID(c)
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.carts.AddItem(userID, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		log.Printf("[cart][add] userID=%d productID=%d: %v", userID, req.ProductID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// @Summary      Update cart item quantity
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        id    path      int                           true  "Cart item id"
// @Param        item  body      models.UpdateCartItemRequest  true  "New quantity"
// @Success      200   {object}  models.CartItem
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID := currentUserID(c)
	itemID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.carts.UpdateItemQuantity(userID, itemID, req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		log.Printf("[cart][update] userID=%d itemID=%d: %v", userID, itemID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary      Remove cart item
// @Tags         Cart
// @Param        id  path  int  true  "Cart item id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := currentUserID(c)
	itemID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}
	if err := h.carts.RemoveItem(userID, itemID); err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		log.Printf("[cart][remove] userID=%d itemID=%d: %v", userID, itemID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
		return
	}
	c.Status(http.StatusNoContent)
}
