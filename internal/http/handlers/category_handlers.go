package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// CategoryHandlers handles category HTTP requests
type CategoryHandlers struct {
	categorySvc domain.CategoryService
}

// NewCategoryHandlers creates new category handlers
func NewCategoryHandlers(categorySvc domain.CategoryService) *CategoryHandlers {
	return &CategoryHandlers{categorySvc: categorySvc}
}

// CategoryRequest represents a category create or update request
type CategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required"`
}

// Create handles category creation
func (h *CategoryHandlers) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "access token not found"}})
		return
	}

	category, err := h.categorySvc.Create(c.Request.Context(), userID, req.Name, req.Color)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, categoryBody(category))
}

// List returns the caller's categories
func (h *CategoryHandlers) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "access token not found"}})
		return
	}

	categories, err := h.categorySvc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	body := make([]gin.H, 0, len(categories))
	for i := range categories {
		body = append(body, categoryBody(&categories[i]))
	}
	c.JSON(http.StatusOK, body)
}

// Update handles category update
func (h *CategoryHandlers) Update(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}

	category, err := h.categorySvc.Update(c.Request.Context(), id, req.Name, req.Color)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categoryBody(category))
}

// Delete handles category deletion
func (h *CategoryHandlers) Delete(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}

	if err := h.categorySvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func categoryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{"message": "invalid category id"}})
		return 0, false
	}
	return uint(id), true
}

func categoryBody(cat *domain.Category) gin.H {
	return gin.H{
		"id":    cat.ID,
		"name":  cat.Name,
		"color": cat.Color,
	}
}
