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

type ReviewHandler struct {
	reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// @Summary      Product reviews
// @Tags         Reviews
// @Produce      json
// @Param        slug  path     int  true  "Product id"
// @Success      200  {array}  models.Review
// @Router       /api/products/{slug}/reviews [get]
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	// The path segment is named :slug to share the wildcard with the
	// product details route, but reviews are addressed by numeric id.
	productID, ok := pathID(c, "slug")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}
	reviews, err := h.reviews.ListByProduct(productID)
	if err != nil {
		log.Printf("[reviews][list] productID=%d: %v", productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviews"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// @Summary      Create review
// @Description  Stores the review and refreshes the product's rating aggregates
// @Tags         Reviews
// @Accept       json
// @Produce      json
// @Param        review  body      models.CreateReviewRequest  true  "Review"
// @Success      201     {object}  models.Review
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	userID := currentUserID(c)
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	review, err := h.reviews.Create(userID, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		log.Printf("[reviews][create] userID=%d productID=%d: %v", userID, req.ProductID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}
	c.JSON(http.StatusCreated, review)
}
