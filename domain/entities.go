package domain

import "time"

// Roles assignable to a user.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Session types.
const (
	SessionStopwatch = "stopwatch"
	SessionTimer     = "timer"
)

// User represents an account in the system
type User struct {
	ID                uint
	Name              string
	Email             string
	PasswordHash      string
	Role              string
	TwoFASecret       string
	TwoFAEnabled      bool
	PasswordChangedAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RefreshToken is one issued refresh credential. A user may hold several
// at once (one per device).
type RefreshToken struct {
	ID        uint
	Token     string
	UserID    uint
	CreatedAt time.Time
}

// InvalidatedToken denylists a still-unexpired access token after logout.
// Rows become collectable once ExpiresAt passes.
type InvalidatedToken struct {
	ID        uint
	Token     string
	UserID    uint
	ExpiresAt time.Time
}

// Session is a tracked work session
type Session struct {
	ID                 uint
	UserID             uint
	CategoryID         uint
	Type               string
	DurationSeconds    *int
	StartedAt          time.Time
	PausedAt           *time.Time
	TotalPausedSeconds int
	ElapsedSeconds     int
	EndedAt            *time.Time
	IsCompleted        bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsPaused reports whether the session is currently paused. PausedAt is set
// if and only if the session is paused.
func (s *Session) IsPaused() bool { return s.PausedAt != nil }

// Category groups sessions; it must exist before a session can start
type Category struct {
	ID        uint
	Name      string
	Color     string
	UserID    uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TokenPair is an access/refresh token pair issued on login or rotation
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult is either an issued token pair with public profile fields,
// or a pending two-factor challenge when TwoFARequired is set.
type LoginResult struct {
	TwoFARequired    bool
	TempToken        string
	ExpiresInSeconds int

	UserID       uint
	Name         string
	Email        string
	TwoFAEnabled bool
	AccessToken  string
	RefreshToken string
}

// TokenClaims represents verified JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	Subject   string `json:"sub"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// SessionFilter selects completed sessions. When both From and To are set
// the owner is ignored and the range wins; otherwise UserID applies.
type SessionFilter struct {
	UserID uint
	From   *time.Time
	To     *time.Time
}

// SessionSummary projects a completed session together with its category.
type SessionSummary struct {
	ID             uint       `json:"id"`
	Type           string     `json:"type"`
	StartedAt      time.Time  `json:"startedAt"`
	EndedAt        *time.Time `json:"endedAt"`
	ElapsedSeconds int        `json:"elapsedSeconds"`
	IsCompleted    bool       `json:"isCompleted"`
	CategoryID     uint       `json:"categoryId"`
	CategoryName   string     `json:"categoryName"`
	CategoryColor  string     `json:"categoryColor"`
}
