package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID                uint       `gorm:"primaryKey"`
	Name              string     `gorm:"size:255"`
	Email             string     `gorm:"uniqueIndex;size:255"`
	PasswordHash      string     `gorm:"column:password"`
	Role              string     `gorm:"index;size:16"`
	TwoFASecret       string     `gorm:"column:two_fa_secret;size:64"`
	TwoFAEnabled      bool       `gorm:"column:two_fa_enabled"`
	PasswordChangedAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailExists
		}
		return err
	}
	user.ID = dbUser.ID
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	// Save skips zero values with Updates, so use Select to persist cleared
	// 2FA fields on disable.
	return r.db.WithContext(ctx).Model(&DBUser{ID: user.ID}).
		Select("Name", "Email", "PasswordHash", "Role", "TwoFASecret", "TwoFAEnabled", "PasswordChangedAt").
		Updates(dbUser).Error
}

func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		PasswordHash:      user.PasswordHash,
		Role:              user.Role,
		TwoFASecret:       user.TwoFASecret,
		TwoFAEnabled:      user.TwoFAEnabled,
		PasswordChangedAt: user.PasswordChangedAt,
	}
}

func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:                dbUser.ID,
		Name:              dbUser.Name,
		Email:             dbUser.Email,
		PasswordHash:      dbUser.PasswordHash,
		Role:              dbUser.Role,
		TwoFASecret:       dbUser.TwoFASecret,
		TwoFAEnabled:      dbUser.TwoFAEnabled,
		PasswordChangedAt: dbUser.PasswordChangedAt,
		CreatedAt:         dbUser.CreatedAt,
		UpdatedAt:         dbUser.UpdatedAt,
	}
}
