package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaungsithu202/Tide-Focus/domain"
	"github.com/kaungsithu202/Tide-Focus/internal/http/middleware"
)

// statusOf maps an error kind to its HTTP status
func statusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the typed error as a structured body. Internal errors
// get a generic message so no implementation detail leaks.
func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "an unexpected error occurred"
	}
	c.JSON(status, gin.H{"error": gin.H{"message": message}})
}

// currentUserID reads the guard-verified identity from the request context
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(middleware.CtxUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
