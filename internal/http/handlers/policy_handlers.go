package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// PolicyHandlers handles admin policy management requests
type PolicyHandlers struct {
	policySvc domain.PolicyService
}

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(policySvc domain.PolicyService) *PolicyHandlers {
	return &PolicyHandlers{policySvc: policySvc}
}

// PolicyRequest represents a single policy rule
type PolicyRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// List returns all stored policy rules
func (h *PolicyHandlers) List(c *gin.Context) {
	policies, err := h.policySvc.GetPolicies()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"policies": policies})
}

// Add stores a new policy rule
func (h *PolicyHandlers) Add(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}

	if err := h.policySvc.AddPolicy(req.Role, req.Resource, req.Action); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Policy added successfully"})
}

// Remove deletes a policy rule
func (h *PolicyHandlers) Remove(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}

	if err := h.policySvc.RemovePolicy(req.Role, req.Resource, req.Action); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Policy removed successfully"})
}
