package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaungsithu202/Tide-Focus/internal/mocks"
	"github.com/kaungsithu202/Tide-Focus/internal/services"
)

func authTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authSvc := services.NewAuthService(
		mocks.NewMockUserRepository(),
		mocks.NewMockTokenRepository(),
		mocks.NewMockPendingLoginStore(),
		mocks.NewMockPasswordService(),
		mocks.NewMockTokenService(),
		mocks.NewMockTwoFactorService(),
	)
	h := NewAuthHandlers(authSvc)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/refresh-token", h.Refresh)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint(t *testing.T) {
	r := authTestRouter(t)

	w := postJSON(r, "/api/auth/register", `{"name":"Alice","email":"alice@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "userId")

	// same email again conflicts
	w = postJSON(r, "/api/auth/register", `{"name":"Clone","email":"alice@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterEndpointValidation(t *testing.T) {
	r := authTestRouter(t)

	// too-short password fails binding before the service runs
	w := postJSON(r, "/api/auth/register", `{"name":"Alice","email":"alice@example.com","password":"abc"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = postJSON(r, "/api/auth/register", `{"name":"Alice","email":"not-an-email","password":"secret123"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	r := authTestRouter(t)
	postJSON(r, "/api/auth/register", `{"name":"Alice","email":"alice@example.com","password":"secret123"}`)

	w := postJSON(r, "/api/auth/login", `{"email":"alice@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["accessToken"])
	assert.NotEmpty(t, body["refreshToken"])
	assert.Equal(t, "alice@example.com", body["email"])

	w = postJSON(r, "/api/auth/login", `{"email":"alice@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "email or password is invalid")
}

func TestRefreshEndpoint(t *testing.T) {
	r := authTestRouter(t)
	postJSON(r, "/api/auth/register", `{"name":"Alice","email":"alice@example.com","password":"secret123"}`)

	w := postJSON(r, "/api/auth/login", `{"email":"alice@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var login map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	refreshToken := login["refreshToken"].(string)

	w = postJSON(r, "/api/auth/refresh-token", `{"refreshToken":"`+refreshToken+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var rotated map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rotated))
	assert.NotEqual(t, refreshToken, rotated["refreshToken"])

	// the consumed token cannot be presented again
	w = postJSON(r, "/api/auth/refresh-token", `{"refreshToken":"`+refreshToken+`"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshEndpointMissingBody(t *testing.T) {
	r := authTestRouter(t)

	w := postJSON(r, "/api/auth/refresh-token", `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "refresh token not found")
}
