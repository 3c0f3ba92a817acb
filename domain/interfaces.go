package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
}

// TokenRepository persists refresh tokens and the access-token denylist
type TokenRepository interface {
	CreateRefreshToken(ctx context.Context, token *RefreshToken) error
	FindRefreshToken(ctx context.Context, token string, userID uint) (*RefreshToken, error)
	// Rotate deletes the consumed record and inserts the replacement in a
	// single transaction. It fails with ErrRefreshTokenNotFound when the
	// consumed record is already gone (token reuse).
	Rotate(ctx context.Context, consumedID uint, replacement *RefreshToken) error
	DeleteAllRefreshTokens(ctx context.Context, userID uint) error
	InsertInvalidatedToken(ctx context.Context, token *InvalidatedToken) error
	IsTokenInvalidated(ctx context.Context, token string) (bool, error)
	DeleteExpiredInvalidated(ctx context.Context, now time.Time) error
}

// SessionRepository defines tracked-session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, id uint) (*Session, error)
	// Mutate loads the session under a per-row lock, applies fn and saves
	// the result. Two concurrent mutations of the same session cannot
	// interleave.
	Mutate(ctx context.Context, id uint, fn func(*Session) error) (*Session, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter SessionFilter) ([]SessionSummary, error)
}

// CategoryRepository defines category data access operations
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	ListByUser(ctx context.Context, userID uint) ([]Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uint) error
}

// PendingLoginStore holds short-lived pending-2FA handles between password
// verification and TOTP verification. Entries expire unilaterally.
type PendingLoginStore interface {
	Put(ctx context.Context, token string, userID uint) error
	Get(ctx context.Context, token string) (uint, error)
	TTLSeconds() int
}

// PasswordService defines one-way password hash operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines signed-token operations
type TokenService interface {
	GenerateAccessToken(userID uint, role string) (string, error)
	GenerateRefreshToken(userID uint, role string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// TwoFactorService defines TOTP enrollment and verification
type TwoFactorService interface {
	// GenerateSecret returns a fresh secret and a QR-encoded PNG of the
	// otpauth URI binding account to the configured issuer.
	GenerateSecret(account string) (secret string, qrPNG []byte, err error)
	Verify(code, secret string) bool
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (uint, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	TwoFALogin(ctx context.Context, tempToken, totp string) (*LoginResult, error)
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword, totp string) error
	GenerateTwoFA(ctx context.Context, userID uint) ([]byte, error)
	ValidateTwoFA(ctx context.Context, userID uint, totp string) error
	DisableTwoFA(ctx context.Context, userID uint, currentPassword, totp string) error
	Logout(ctx context.Context, userID uint, accessToken string, expiresAt time.Time) error
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	CurrentUser(ctx context.Context, userID uint) (*User, error)
}

// SessionService defines the session timer state machine
type SessionService interface {
	Start(ctx context.Context, userID, categoryID uint, sessionType string, durationSeconds *int) (*Session, error)
	Pause(ctx context.Context, id uint) (*Session, error)
	Resume(ctx context.Context, id uint) (*Session, error)
	Complete(ctx context.Context, id uint) (*Session, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter SessionFilter) ([]SessionSummary, error)
}

// CategoryService defines category business logic
type CategoryService interface {
	Create(ctx context.Context, userID uint, name, color string) (*Category, error)
	Get(ctx context.Context, id uint) (*Category, error)
	ListByUser(ctx context.Context, userID uint) ([]Category, error)
	Update(ctx context.Context, id uint, name, color string) (*Category, error)
	Delete(ctx context.Context, id uint) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	GetPolicies() ([][]string, error)
}

// CasbinEnforcer is the subset of the Casbin enforcer the service uses
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
