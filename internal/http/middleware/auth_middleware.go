package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// Context keys the guard sets for downstream handlers.
const (
	CtxUserID        = "user_id"
	CtxUserRole      = "user_role"
	CtxAccessToken   = "access_token"
	CtxAccessExpires = "access_expires"
)

// AuthMW verifies bearer access tokens
type AuthMW struct {
	tokenSvc  domain.TokenService
	tokenRepo domain.TokenRepository
}

// NewAuthMW creates the auth guard middleware
func NewAuthMW(tokenSvc domain.TokenService, tokenRepo domain.TokenRepository) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc, tokenRepo: tokenRepo}
}

// Guard extracts the bearer token, rejects denylisted tokens, verifies the
// signature and attaches the verified identity to the request context.
// Handlers never trust any caller-supplied identity besides this one.
func (m *AuthMW) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "access token not found"}})
			return
		}

		// Denylist check runs before signature verification: a logged-out
		// token is rejected regardless of its own validity.
		invalidated, err := m.tokenRepo.IsTokenInvalidated(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "an unexpected error occurred"}})
			return
		}
		if invalidated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": domain.ErrTokenRevoked.Message}})
			return
		}

		claims, err := m.tokenSvc.ValidateAccessToken(token)
		if err != nil {
			message := "access token invalid"
			if errors.Is(err, domain.ErrTokenExpired) {
				message = "access token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": message}})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxAccessToken, token)
		c.Set(CtxAccessExpires, claims.ExpiresAt)

		c.Next()
	}
}
