package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// RoleMW enforces role-based access through the Casbin policy set
type RoleMW struct {
	enforcer domain.CasbinEnforcer
}

// NewRoleMW creates the role-enforcement middleware
func NewRoleMW(enforcer domain.CasbinEnforcer) *RoleMW {
	return &RoleMW{enforcer: enforcer}
}

// Enforce checks (role, path, method) against the policy set. It must run
// after the auth guard, which attaches the role.
func (m *RoleMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxUserRole)

		allowed, err := m.enforcer.Enforce(role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "an unexpected error occurred"}})
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "access denied"}})
			return
		}

		c.Next()
	}
}
