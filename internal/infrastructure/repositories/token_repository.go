package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// TokenRepositoryImpl implements domain.TokenRepository using GORM
type TokenRepositoryImpl struct {
	db *gorm.DB
}

// DBRefreshToken represents the database model for RefreshToken
type DBRefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"uniqueIndex;size:512"`
	UserID    uint   `gorm:"index"`
	CreatedAt time.Time
}

func (DBRefreshToken) TableName() string {
	return "refresh_tokens"
}

// DBInvalidatedToken represents the database model for the access-token denylist
type DBInvalidatedToken struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"index;size:512"`
	UserID    uint      `gorm:"index"`
	ExpiresAt time.Time `gorm:"index"`
}

func (DBInvalidatedToken) TableName() string {
	return "user_invalid_tokens"
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *gorm.DB) domain.TokenRepository {
	return &TokenRepositoryImpl{db: db}
}

// CreateRefreshToken implements domain.TokenRepository
func (r *TokenRepositoryImpl) CreateRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	row := &DBRefreshToken{Token: token.Token, UserID: token.UserID}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	token.ID = row.ID
	token.CreatedAt = row.CreatedAt
	return nil
}

// FindRefreshToken implements domain.TokenRepository. The token string and
// owner must both match.
func (r *TokenRepositoryImpl) FindRefreshToken(ctx context.Context, token string, userID uint) (*domain.RefreshToken, error) {
	var row DBRefreshToken
	err := r.db.WithContext(ctx).Where("token = ? AND user_id = ?", token, userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &domain.RefreshToken{ID: row.ID, Token: row.Token, UserID: row.UserID, CreatedAt: row.CreatedAt}, nil
}

// Rotate implements domain.TokenRepository. Delete and insert share one
// transaction; the delete must consume exactly one row, so a token that was
// already rotated (or never existed) fails the whole rotation and nothing
// half-applies.
func (r *TokenRepositoryImpl) Rotate(ctx context.Context, consumedID uint, replacement *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&DBRefreshToken{}, consumedID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrRefreshTokenNotFound
		}

		row := &DBRefreshToken{Token: replacement.Token, UserID: replacement.UserID}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		replacement.ID = row.ID
		replacement.CreatedAt = row.CreatedAt
		return nil
	})
}

// DeleteAllRefreshTokens implements domain.TokenRepository (all-device logout)
func (r *TokenRepositoryImpl) DeleteAllRefreshTokens(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&DBRefreshToken{}).Error
}

// InsertInvalidatedToken implements domain.TokenRepository
func (r *TokenRepositoryImpl) InsertInvalidatedToken(ctx context.Context, token *domain.InvalidatedToken) error {
	row := &DBInvalidatedToken{Token: token.Token, UserID: token.UserID, ExpiresAt: token.ExpiresAt}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	token.ID = row.ID
	return nil
}

// IsTokenInvalidated implements domain.TokenRepository
func (r *TokenRepositoryImpl) IsTokenInvalidated(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBInvalidatedToken{}).Where("token = ?", token).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteExpiredInvalidated implements domain.TokenRepository. Denylist rows
// whose token has expired on its own can be garbage-collected.
func (r *TokenRepositoryImpl) DeleteExpiredInvalidated(ctx context.Context, now time.Time) error {
	return r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&DBInvalidatedToken{}).Error
}
