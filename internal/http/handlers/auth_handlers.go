package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaungsithu202/Tide-Focus/domain"
	"github.com/kaungsithu202/Tide-Focus/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role,omitempty" binding:"omitempty,oneof=ADMIN USER"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TwoFALoginRequest represents the second step of a 2FA login
type TwoFALoginRequest struct {
	TempToken string `json:"tempToken" binding:"required"`
	TOTP      string `json:"totp" binding:"required"`
}

// ChangePasswordRequest represents password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
	TOTP            string `json:"totp,omitempty"`
}

// TOTPRequest carries a bare TOTP code
type TOTPRequest struct {
	TOTP string `json:"totp" binding:"required"`
}

// DisableTwoFARequest represents a 2FA disable request
type DisableTwoFARequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	TOTP            string `json:"totp" binding:"required"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Register handles user registration. No tokens are issued.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}

	userID, err := h.authSvc.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"userId":  userID,
	})
}

// Login handles password login. For 2FA accounts the response carries only
// the temporary handle.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.TwoFARequired {
		c.JSON(http.StatusOK, gin.H{
			"tempToken":        result.TempToken,
			"expiresInSeconds": result.ExpiresInSeconds,
		})
		return
	}

	c.JSON(http.StatusOK, loginBody(result))
}

// TwoFALogin handles the TOTP step of a 2FA login
func (h *AuthHandlers) TwoFALogin(c *gin.Context) {
	var req TwoFALoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}

	result, err := h.authSvc.TwoFALogin(c.Request.Context(), req.TempToken, req.TOTP)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginBody(result))
}

// ChangePassword handles a password change for the authenticated user
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "access token not found"}})
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword, req.TOTP); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// GenerateTwoFA returns an enrollment QR code as a PNG attachment
func (h *AuthHandlers) GenerateTwoFA(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "access token not found"}})
		return
	}

	qrPNG, err := h.authSvc.GenerateTwoFA(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=qrcode.png")
	c.Data(http.StatusOK, "image/png", qrPNG)
}

// ValidateTwoFA confirms enrollment and enables two-factor
func (h *AuthHandlers) ValidateTwoFA(c *gin.Context) {
	var req TOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "access token not found"}})
		return
	}

	if err := h.authSvc.ValidateTwoFA(c.Request.Context(), userID, req.TOTP); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "TOTP validated successfully"})
}

// DisableTwoFA turns two-factor off and clears the secret
func (h *AuthHandlers) DisableTwoFA(c *gin.Context) {
	var req DisableTwoFARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "access token not found"}})
		return
	}

	if err := h.authSvc.DisableTwoFA(c.Request.Context(), userID, req.CurrentPassword, req.TOTP); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "2FA disabled successfully"})
}

// Logout removes every refresh token of the user and denylists the
// presented access token until its natural expiry.
func (h *AuthHandlers) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "access token not found"}})
		return
	}

	accessToken := c.GetString(middleware.CtxAccessToken)
	expiresAt := time.Unix(c.GetInt64(middleware.CtxAccessExpires), 0)

	if err := h.authSvc.Logout(c.Request.Context(), userID, accessToken, expiresAt); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Refresh rotates the presented refresh token
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "refresh token not found"}})
		return
	}

	pair, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// Me returns the authenticated user's public profile
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "access token not found"}})
		return
	}

	user, err := h.authSvc.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

func loginBody(result *domain.LoginResult) gin.H {
	return gin.H{
		"id":           result.UserID,
		"name":         result.Name,
		"email":        result.Email,
		"twoFaEnable":  result.TwoFAEnabled,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	}
}
