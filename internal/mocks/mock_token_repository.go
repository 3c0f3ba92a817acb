package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// MockTokenRepository implements domain.TokenRepository for testing. Without
// overrides it keeps refresh tokens and denylist entries in memory, including
// the rotation semantics of the real repository.
type MockTokenRepository struct {
	CreateRefreshTokenFunc       func(ctx context.Context, token *domain.RefreshToken) error
	FindRefreshTokenFunc         func(ctx context.Context, token string, userID uint) (*domain.RefreshToken, error)
	RotateFunc                   func(ctx context.Context, consumedID uint, replacement *domain.RefreshToken) error
	DeleteAllRefreshTokensFunc   func(ctx context.Context, userID uint) error
	InsertInvalidatedTokenFunc   func(ctx context.Context, token *domain.InvalidatedToken) error
	IsTokenInvalidatedFunc       func(ctx context.Context, token string) (bool, error)
	DeleteExpiredInvalidatedFunc func(ctx context.Context, now time.Time) error

	mu          sync.Mutex
	nextID      uint
	refresh     map[uint]*domain.RefreshToken
	invalidated map[string]time.Time
}

// NewMockTokenRepository creates a new MockTokenRepository with default behaviors
func NewMockTokenRepository() *MockTokenRepository {
	return &MockTokenRepository{
		nextID:      1,
		refresh:     make(map[uint]*domain.RefreshToken),
		invalidated: make(map[string]time.Time),
	}
}

// CreateRefreshToken stores a refresh token
func (m *MockTokenRepository) CreateRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	if m.CreateRefreshTokenFunc != nil {
		return m.CreateRefreshTokenFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	token.ID = m.nextID
	m.nextID++
	copied := *token
	m.refresh[token.ID] = &copied
	return nil
}

// FindRefreshToken looks up a stored refresh token by value and owner
func (m *MockTokenRepository) FindRefreshToken(ctx context.Context, token string, userID uint) (*domain.RefreshToken, error) {
	if m.FindRefreshTokenFunc != nil {
		return m.FindRefreshTokenFunc(ctx, token, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rt := range m.refresh {
		if rt.Token == token && rt.UserID == userID {
			copied := *rt
			return &copied, nil
		}
	}
	return nil, domain.ErrRefreshTokenNotFound
}

// Rotate consumes one token and stores its replacement atomically
func (m *MockTokenRepository) Rotate(ctx context.Context, consumedID uint, replacement *domain.RefreshToken) error {
	if m.RotateFunc != nil {
		return m.RotateFunc(ctx, consumedID, replacement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.refresh[consumedID]; !ok {
		return domain.ErrRefreshTokenNotFound
	}
	delete(m.refresh, consumedID)
	replacement.ID = m.nextID
	m.nextID++
	copied := *replacement
	m.refresh[replacement.ID] = &copied
	return nil
}

// DeleteAllRefreshTokens removes every refresh token of a user
func (m *MockTokenRepository) DeleteAllRefreshTokens(ctx context.Context, userID uint) error {
	if m.DeleteAllRefreshTokensFunc != nil {
		return m.DeleteAllRefreshTokensFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, rt := range m.refresh {
		if rt.UserID == userID {
			delete(m.refresh, id)
		}
	}
	return nil
}

// InsertInvalidatedToken denylists an access token
func (m *MockTokenRepository) InsertInvalidatedToken(ctx context.Context, token *domain.InvalidatedToken) error {
	if m.InsertInvalidatedTokenFunc != nil {
		return m.InsertInvalidatedTokenFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated[token.Token] = token.ExpiresAt
	return nil
}

// IsTokenInvalidated reports whether a token is denylisted
func (m *MockTokenRepository) IsTokenInvalidated(ctx context.Context, token string) (bool, error) {
	if m.IsTokenInvalidatedFunc != nil {
		return m.IsTokenInvalidatedFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.invalidated[token]
	return ok, nil
}

// DeleteExpiredInvalidated prunes denylist entries past their expiry
func (m *MockTokenRepository) DeleteExpiredInvalidated(ctx context.Context, now time.Time) error {
	if m.DeleteExpiredInvalidatedFunc != nil {
		return m.DeleteExpiredInvalidatedFunc(ctx, now)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, expiresAt := range m.invalidated {
		if expiresAt.Before(now) {
			delete(m.invalidated, token)
		}
	}
	return nil
}

// RefreshTokenCount reports how many refresh tokens are stored
func (m *MockTokenRepository) RefreshTokenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.refresh)
}
