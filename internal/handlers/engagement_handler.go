package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"thescent/internal/models"
	"thescent/internal/services"
)

type EngagementHandler struct {
	engagement *services.EngagementService
}

func NewEngagementHandler(engagement *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagement: engagement}
}

// @Summary      Subscribe to the newsletter
// @Tags         Engagement
// @Accept       json
// @Produce      json
// @Param        subscription  body      models.SubscribeRequest  true  "Email"
// @Success      201           {object}  models.NewsletterSubscription
// @Failure      400           {object}  map[string]string
// @Router       /api/newsletter [post]
func (h *EngagementHandler) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub, err := h.engagement.Subscribe(req.Email)
	if err != nil {
		if errors.Is(err, services.ErrAlreadySubscribed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already subscribed"})
			return
		}
		log.Printf("[engagement][newsletter] email=%q: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// @Summary      Contact form
// @Description  Stores the enquiry; the account id is attached when the caller is signed in
// @Tags         Engagement
// @Accept       json
// @Produce      json
// @Param        enquiry  body      models.Enquiry  true  "Enquiry"
// @Success      201      {object}  models.Enquiry
// @Failure      400      {object}  map[string]string
// @Router       /api/contact [post]
func (h *EngagementHandler) Contact(c *gin.Context) {
	var enq models.Enquiry
	if err := c.ShouldBindJSON(&enq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := currentUserID(c) // 0 when anonymous
	created, err := h.engagement.SubmitEnquiry(userID, &enq)
	if err != nil {
		log.Printf("[engagement][contact] email=%q: %v", enq.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit enquiry"})
		return
	}
	c.JSON(http.StatusCreated, created)
}
