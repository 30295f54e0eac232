package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"thescent/internal/models"
	"thescent/internal/repositories"
	"thescent/internal/services"
)

type CatalogHandler struct {
	catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// @Summary      List categories
// @Tags         Catalog
// @Produce      json
// @Success      200  {array}  models.Category
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories()
	if err != nil {
		log.Printf("[catalog][categories] list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// @Summary      Category by slug
// @Tags         Catalog
// @Produce      json
// @Param        slug  path      string  true  "Category slug"
// @Success      200   {object}  models.Category
// @Failure      404   {object}  map[string]string
// @Router       /api/categories/{slug} [get]
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.catalog.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		log.Printf("[catalog][categories] slug=%q: %v", c.Param("slug"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load category"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// @Summary      List products
// @Tags         Catalog
// @Produce      json
// @Param        limit   query     int  false  "Page size"     default(20)
// @Param        offset  query     int  false  "Page offset"   default(0)
// @Success      200     {array}   models.Product
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	products, err := h.catalog.ListProducts(limit, offset)
	if err != nil {
		log.Printf("[catalog][products] list limit=%d offset=%d: %v", limit, offset, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// @Summary      Featured products
// @Tags         Catalog
// @Produce      json
// @Success      200  {array}  models.Product
// @Router       /api/products/featured [get]
func (h *CatalogHandler) ListFeatured(c *gin.Context) {
	products, err := h.catalog.ListFeaturedProducts()
	if err != nil {
		log.Printf("[catalog][products] featured: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// @Summary      Products in a category
// @Tags         Catalog
// @Produce      json
// @Param        categoryId  path     int  true  "Category id"
// @Success      200         {array}  models.Product
// @Router       /api/products/category/{categoryId} [get]
func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}
	products, err := h.catalog.ListProductsByCategory(categoryID)
	if err != nil {
		log.Printf("[catalog][products] categoryID=%d: %v", categoryID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// @Summary      Product by slug
// @Description  Full product card: ingredients, benefits, images, scent profiles and moods
// @Tags         Catalog
// @Produce      json
// @Param        slug  path      string  true  "Product slug"
// @Success      200   {object}  models.ProductDetails
// @Failure      404   {object}  map[string]string
// @Router       /api/products/{slug} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	details, err := h.catalog.ProductDetails(c.Param("slug"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		log.Printf("[catalog][products] slug=%q: %v", c.Param("slug"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		return
	}
	c.JSON(http.StatusOK, details)
}

// @Summary      List scent profiles
// @Tags         ScentFinder
// @Produce      json
// @Success      200  {array}  models.ScentProfile
// @Router       /api/scent-profiles [get]
func (h *CatalogHandler) ListScentProfiles(c *gin.Context) {
	profiles, err := h.catalog.ListScentProfiles()
	if err != nil {
		log.Printf("[catalog][scent-profiles] list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load scent profiles"})
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// @Summary      List moods
// @Tags         ScentFinder
// @Produce      json
// @Success      200  {array}  models.Mood
// @Router       /api/moods [get]
func (h *CatalogHandler) ListMoods(c *gin.Context) {
	moods, err := h.catalog.ListMoods()
	if err != nil {
		log.Printf("[catalog][moods] list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load moods"})
		return
	}
	c.JSON(http.StatusOK, moods)
}

// @Summary      List lifestyle items
// @Tags         Catalog
// @Produce      json
// @Success      200  {array}  models.LifestyleItem
// @Router       /api/lifestyle-items [get]
func (h *CatalogHandler) ListLifestyleItems(c *gin.Context) {
	items, err := h.catalog.ListLifestyleItems()
	if err != nil {
		log.Printf("[catalog][lifestyle] list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lifestyle items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Scent finder
// @Description  Ranks products against the quiz answers
// @Tags         ScentFinder
// @Accept       json
// @Produce      json
// @Param        answers  body      models.ScentFinderRequest  true  "Selected mood and scent profile ids"
// @Success      200      {array}   models.Recommendation
// @Failure      400      {object}  map[string]string
// @Router       /api/scent-finder [post]
func (h *CatalogHandler) ScentFinder(c *gin.Context) {
	var req models.ScentFinderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.MoodIDs) == 0 && len(req.ScentProfileIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Select at least one mood or scent profile"})
		return
	}
	limit := req.Limit
	if limit <= 0 || limit > 20 {
		limit = 4
	}
	recs, err := h.catalog.Recommend(req.MoodIDs, req.ScentProfileIDs, limit)
	if err != nil {
		log.Printf("[catalog][scent-finder] moods=%v profiles=%v: %v", req.MoodIDs, req.ScentProfileIDs, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute recommendations"})
		return
	}
	c.JSON(http.StatusOK, recs)
}
