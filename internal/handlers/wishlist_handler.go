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

type WishlistHandler struct {
	wishlists *services.WishlistService
}

func NewWishlistHandler(wishlists *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists}
}

// @Summary      Get wishlist
// @Tags         Wishlist
// @Produce      json
// @Success      200  {array}  models.Wishlist
// @Failure      401  {object}  map[string]string
// @Router       /api/wishlist [get]
func (h *WishlistHandler) List(c *gin.Context) {
	userID := currentUserID(c)
	items, err := h.wishlists.List(userID)
	if err != nil {
		log.Printf("[wishlist][list] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wishlist"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Add to wishlist
// @Tags         Wishlist
// @Accept       json
// @Produce      json
// @Param        item  body      models.AddWishlistRequest  true  "Product id"
// @Success      201   {object}  models.Wishlist
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/wishlist [post]
func (h *WishlistHandler) Add(c *gin.Context) {
	userID := currentUserID(c)
	var req models.AddWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.wishlists.Add(userID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyInWishlist):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product already in wishlist"})
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		default:
			log.Printf("[wishlist][add] userID=%d productID=%d: %v", userID, req.ProductID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to wishlist"})
		}
		return
	}
	c.JSON(http.StatusCreated, item)
}

// @Summary      Remove from wishlist
// @Tags         Wishlist
// @Param        productId  path  int  true  "Product id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/wishlist/{productId} [delete]
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID := currentUserID(c)
	productID, ok := pathID(c, "productId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}
	if err := h.wishlists.Remove(userID, productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not in wishlist"})
			return
		}
		log.Printf("[wishlist][remove] userID=%d productID=%d: %v", userID, productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from wishlist"})
		return
	}
	c.Status(http.StatusNoContent)
}
