package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"thescent/internal/models"
	"thescent/internal/services"
)

type AddressHandler struct {
	addresses *services.AddressService
}

func NewAddressHandler(addresses *services.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// @Summary      List addresses
// @Tags         Addresses
// @Produce      json
// @Success      200  {array}  models.Address
// @Failure      401  {object}  map[string]string
// @Router       /api/addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	userID := currentUserID(c)
	addrs, err := h.addresses.List(userID)
	if err != nil {
		log.Printf("[addresses][list] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load addresses"})
		return
	}
	c.JSON(http.StatusOK, addrs)
}

// @Summary      Create address
// @Description  Marking the new address default clears the previous default
// @Tags         Addresses
// @Accept       json
// @Produce      json
// @Param        address  body      models.Address  true  "Address"
// @Success      201      {object}  models.Address
// @Failure      400      {object}  map[string]string
// @Router       /api/addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	userID := currentUserID(c)
	var addr models.Address
	if err := c.ShouldBindJSON(&addr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.addresses.Create(userID, &addr)
	if err != nil {
		log.Printf("[addresses][create] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary      Update address
// @Tags         Addresses
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "Address id"
// @Param        address  body      models.Address  true  "Address"
// @Success      200      {object}  models.Address
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /api/addresses/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	userID := currentUserID(c)
	addressID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}
	var addr models.Address
	if err := c.ShouldBindJSON(&addr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.addresses.Update(userID, addressID, &addr)
	if err != nil {
		if errors.Is(err, services.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		log.Printf("[addresses][update] userID=%d addressID=%d: %v", userID, addressID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Delete address
// @Tags         Addresses
// @Param        id  path  int  true  "Address id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	userID := currentUserID(c)
	addressID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}
	if err := h.addresses.Delete(userID, addressID); err != nil {
		if errors.Is(err, services.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		log.Printf("[addresses][delete] userID=%d addressID=%d: %v", userID, addressID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
		return
	}
	c.Status(http.StatusNoContent)
}
