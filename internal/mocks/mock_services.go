package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// MockPasswordService implements domain.PasswordService for testing. The
// default hash is reversible on purpose so assertions stay readable.
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash returns a deterministic fake hash
func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

// Verify checks against the deterministic fake hash
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed_"+password
}

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(userID uint, role string) (string, error)
	GenerateRefreshTokenFunc func(userID uint, role string) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)

	mu      sync.Mutex
	counter int
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) next(kind string, userID uint) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("%s_%d_%d", kind, userID, m.counter)
}

// GenerateAccessToken returns a unique fake access token
func (m *MockTokenService) GenerateAccessToken(userID uint, role string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, role)
	}
	return m.next("access", userID), nil
}

// GenerateRefreshToken returns a unique fake refresh token
func (m *MockTokenService) GenerateRefreshToken(userID uint, role string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, role)
	}
	return m.next("refresh", userID), nil
}

// ValidateAccessToken accepts tokens minted by the default generator
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return claimsFromFake(token, "access_")
}

// ValidateRefreshToken accepts tokens minted by the default generator
func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return claimsFromFake(token, "refresh_")
}

func claimsFromFake(token, prefix string) (*domain.TokenClaims, error) {
	if !strings.HasPrefix(token, prefix) {
		return nil, domain.ErrTokenInvalid
	}
	parts := strings.Split(token, "_")
	if len(parts) != 3 {
		return nil, domain.ErrTokenMalformed
	}
	var userID uint
	if _, err := fmt.Sscanf(parts[1], "%d", &userID); err != nil {
		return nil, domain.ErrTokenMalformed
	}
	return &domain.TokenClaims{UserID: userID, Role: domain.RoleUser}, nil
}

// MockTwoFactorService implements domain.TwoFactorService for testing
type MockTwoFactorService struct {
	GenerateSecretFunc func(account string) (string, []byte, error)
	VerifyFunc         func(code, secret string) bool
}

// NewMockTwoFactorService creates a new MockTwoFactorService with default behaviors
func NewMockTwoFactorService() *MockTwoFactorService {
	return &MockTwoFactorService{}
}

// GenerateSecret returns a fixed secret and a placeholder PNG payload
func (m *MockTwoFactorService) GenerateSecret(account string) (string, []byte, error) {
	if m.GenerateSecretFunc != nil {
		return m.GenerateSecretFunc(account)
	}
	return "MOCKSECRET", []byte("png-bytes"), nil
}

// Verify accepts the fixed code 123456
func (m *MockTwoFactorService) Verify(code, secret string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(code, secret)
	}
	return code == "123456"
}

// MockPendingLoginStore implements domain.PendingLoginStore for testing
type MockPendingLoginStore struct {
	PutFunc func(ctx context.Context, token string, userID uint) error
	GetFunc func(ctx context.Context, token string) (uint, error)
	TTL     int

	mu      sync.Mutex
	pending map[string]uint
}

// NewMockPendingLoginStore creates a new MockPendingLoginStore with default behaviors
func NewMockPendingLoginStore() *MockPendingLoginStore {
	return &MockPendingLoginStore{
		TTL:     300,
		pending: make(map[string]uint),
	}
}

// Put stores a pending-login handle
func (m *MockPendingLoginStore) Put(ctx context.Context, token string, userID uint) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, token, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[token] = userID
	return nil
}

// Get resolves a pending-login handle
func (m *MockPendingLoginStore) Get(ctx context.Context, token string) (uint, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if userID, ok := m.pending[token]; ok {
		return userID, nil
	}
	return 0, domain.ErrTempTokenInvalid
}

// TTLSeconds returns the configured lifetime
func (m *MockPendingLoginStore) TTLSeconds() int {
	return m.TTL
}
