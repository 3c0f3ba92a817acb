package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaungsithu202/Tide-Focus/domain"
	"github.com/kaungsithu202/Tide-Focus/internal/mocks"
)

func guardedRouter(t *testing.T, tokenSvc domain.TokenService, tokenRepo domain.TokenRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", NewAuthMW(tokenSvc, tokenRepo).Guard(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.MustGet(CtxUserID),
			"role":   c.GetString(CtxUserRole),
		})
	})
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGuardAcceptsValidBearer(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	token, err := tokenSvc.GenerateAccessToken(42, domain.RoleUser)
	require.NoError(t, err)

	r := guardedRouter(t, tokenSvc, mocks.NewMockTokenRepository())
	w := doGet(r, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestGuardRejectsMissingToken(t *testing.T) {
	r := guardedRouter(t, mocks.NewMockTokenService(), mocks.NewMockTokenRepository())
	w := doGet(r, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "access token not found")
}

func TestGuardRejectsInvalidToken(t *testing.T) {
	r := guardedRouter(t, mocks.NewMockTokenService(), mocks.NewMockTokenRepository())
	w := doGet(r, "Bearer garbage")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "access token invalid")
}

func TestGuardRejectsExpiredToken(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return nil, domain.ErrTokenExpired
	}

	r := guardedRouter(t, tokenSvc, mocks.NewMockTokenRepository())
	w := doGet(r, "Bearer whatever")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "access token expired")
}

func TestGuardRejectsDenylistedTokenBeforeVerification(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	token, err := tokenSvc.GenerateAccessToken(42, domain.RoleUser)
	require.NoError(t, err)

	tokenRepo := mocks.NewMockTokenRepository()
	require.NoError(t, tokenRepo.InsertInvalidatedToken(context.Background(), &domain.InvalidatedToken{
		Token:     token,
		UserID:    42,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	// validation must not even run for a denylisted token
	tokenSvc.ValidateAccessTokenFunc = func(string) (*domain.TokenClaims, error) {
		t.Fatal("validation ran for a denylisted token")
		return nil, nil
	}

	r := guardedRouter(t, tokenSvc, tokenRepo)
	w := doGet(r, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "access token invalid")
}
