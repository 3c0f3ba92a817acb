package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo     domain.UserRepository
	tokenRepo    domain.TokenRepository
	pendingStore domain.PendingLoginStore
	passwordSvc  domain.PasswordService
	tokenSvc     domain.TokenService
	twoFactorSvc domain.TwoFactorService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	tokenRepo domain.TokenRepository,
	pendingStore domain.PendingLoginStore,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	twoFactorSvc domain.TwoFactorService,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		pendingStore: pendingStore,
		passwordSvc:  passwordSvc,
		tokenSvc:     tokenSvc,
		twoFactorSvc: twoFactorSvc,
	}
}

// Register implements domain.AuthService. No tokens are issued; the new
// account starts with two-factor disabled and no secret.
func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password, role string) (uint, error) {
	if name == "" || email == "" || password == "" {
		return 0, domain.ErrFieldsRequired
	}
	if role == "" {
		role = domain.RoleUser
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return 0, domain.ErrEmailExists
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		TwoFAEnabled: false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return user.ID, nil
}

// Login implements domain.AuthService. The same error covers an unknown
// email and a wrong password so callers learn nothing about which failed.
// For 2FA-enabled accounts no tokens are issued; the caller gets a
// short-lived handle to present together with a TOTP code.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if user.TwoFAEnabled {
		tempToken := uuid.NewString()
		if err := s.pendingStore.Put(ctx, tempToken, user.ID); err != nil {
			return nil, fmt.Errorf("failed to store pending login: %w", err)
		}

		return &domain.LoginResult{
			TwoFARequired:    true,
			TempToken:        tempToken,
			ExpiresInSeconds: s.pendingStore.TTLSeconds(),
		}, nil
	}

	return s.issueTokens(ctx, user)
}

// TwoFALogin implements domain.AuthService. Every failure surfaces as the
// same error: a wrong handle and a wrong code are indistinguishable.
func (s *AuthServiceImpl) TwoFALogin(ctx context.Context, tempToken, totp string) (*domain.LoginResult, error) {
	userID, err := s.pendingStore.Get(ctx, tempToken)
	if err != nil {
		if errors.Is(err, domain.ErrTempTokenInvalid) {
			return nil, domain.ErrTempTokenInvalid
		}
		return nil, fmt.Errorf("failed to resolve pending login: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTempTokenInvalid
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.TwoFASecret == "" {
		return nil, domain.ErrTempTokenInvalid
	}

	if !s.twoFactorSvc.Verify(totp, user.TwoFASecret) {
		return nil, domain.ErrTempTokenInvalid
	}

	return s.issueTokens(ctx, user)
}

// ChangePassword implements domain.AuthService. Accounts with 2FA enabled
// must also present a valid TOTP code.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword, totp string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, currentPassword) {
		return domain.ErrPasswordMismatch
	}

	if user.TwoFAEnabled && user.TwoFASecret != "" {
		if totp == "" || !s.twoFactorSvc.Verify(totp, user.TwoFASecret) {
			return domain.ErrTOTPIncorrect
		}
	}

	if s.passwordSvc.Verify(user.PasswordHash, newPassword) {
		return domain.ErrPasswordUnchanged
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user.PasswordHash = hashedPassword
	user.PasswordChangedAt = &now

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// GenerateTwoFA implements domain.AuthService. It persists a fresh secret
// and returns the enrollment QR as PNG bytes. Two-factor stays disabled
// until the secret is validated.
func (s *AuthServiceImpl) GenerateTwoFA(ctx context.Context, userID uint) ([]byte, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	secret, qrPNG, err := s.twoFactorSvc.GenerateSecret(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate two-factor secret: %w", err)
	}

	user.TwoFASecret = secret
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist two-factor secret: %w", err)
	}

	return qrPNG, nil
}

// ValidateTwoFA implements domain.AuthService. A correct code against the
// pending secret flips two-factor on.
func (s *AuthServiceImpl) ValidateTwoFA(ctx context.Context, userID uint, totp string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if user.TwoFASecret == "" {
		return domain.ErrTwoFASecretMissing
	}

	if !s.twoFactorSvc.Verify(totp, user.TwoFASecret) {
		return domain.ErrTOTPInvalid
	}

	user.TwoFAEnabled = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to enable two-factor: %w", err)
	}
	return nil
}

// DisableTwoFA implements domain.AuthService
func (s *AuthServiceImpl) DisableTwoFA(ctx context.Context, userID uint, currentPassword, totp string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, currentPassword) {
		return domain.ErrPasswordIncorrect
	}

	if user.TwoFASecret != "" {
		if !s.twoFactorSvc.Verify(totp, user.TwoFASecret) {
			return domain.ErrTOTPInvalid
		}
	}

	user.TwoFAEnabled = false
	user.TwoFASecret = ""
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to disable two-factor: %w", err)
	}
	return nil
}

// Logout implements domain.AuthService. Every device's refresh token is
// removed, and the presented access token is denylisted until its own
// expiry so it cannot be replayed.
func (s *AuthServiceImpl) Logout(ctx context.Context, userID uint, accessToken string, expiresAt time.Time) error {
	if err := s.tokenRepo.DeleteAllRefreshTokens(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete refresh tokens: %w", err)
	}

	invalidated := &domain.InvalidatedToken{
		Token:     accessToken,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	if err := s.tokenRepo.InsertInvalidatedToken(ctx, invalidated); err != nil {
		return fmt.Errorf("failed to denylist access token: %w", err)
	}
	return nil
}

// Refresh implements domain.AuthService. The presented token is consumed
// and replaced atomically; presenting it a second time fails.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	record, err := s.tokenRepo.FindRefreshToken(ctx, refreshToken, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshTokenNotFound) {
			return nil, domain.ErrRefreshTokenNotFound
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	newRefreshToken, err := s.tokenSvc.GenerateRefreshToken(claims.UserID, claims.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	replacement := &domain.RefreshToken{Token: newRefreshToken, UserID: claims.UserID}
	if err := s.tokenRepo.Rotate(ctx, record.ID, replacement); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// CurrentUser implements domain.AuthService
func (s *AuthServiceImpl) CurrentUser(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

// issueTokens mints an access/refresh pair for user and persists the
// refresh record.
func (s *AuthServiceImpl) issueTokens(ctx context.Context, user *domain.User) (*domain.LoginResult, error) {
	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	record := &domain.RefreshToken{Token: refreshToken, UserID: user.ID}
	if err := s.tokenRepo.CreateRefreshToken(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &domain.LoginResult{
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		TwoFAEnabled: user.TwoFAEnabled,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
