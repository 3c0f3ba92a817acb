package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// CategoryRepositoryImpl implements domain.CategoryRepository using GORM
type CategoryRepositoryImpl struct {
	db *gorm.DB
}

// DBCategory represents the database model for Category
type DBCategory struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255"`
	Color     string `gorm:"size:32"`
	UserID    uint   `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DBCategory) TableName() string {
	return "categories"
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

// Create implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *domain.Category) error {
	row := r.domainToDB(category)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	category.ID = row.ID
	category.CreatedAt = row.CreatedAt
	return nil
}

// FindByID implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	var row DBCategory
	err := r.db.WithContext(ctx).First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&row), nil
}

// ListByUser implements domain.CategoryRepository, newest first
func (r *CategoryRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]domain.Category, error) {
	var rows []DBCategory
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, len(rows))
	for i := range rows {
		categories = append(categories, *r.dbToDomain(&rows[i]))
	}
	return categories, nil
}

// Update implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) Update(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Model(&DBCategory{ID: category.ID}).
		Select("Name", "Color").
		Updates(r.domainToDB(category)).Error
}

// Delete implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBCategory{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepositoryImpl) domainToDB(c *domain.Category) *DBCategory {
	return &DBCategory{
		ID:     c.ID,
		Name:   c.Name,
		Color:  c.Color,
		UserID: c.UserID,
	}
}

func (r *CategoryRepositoryImpl) dbToDomain(row *DBCategory) *domain.Category {
	return &domain.Category{
		ID:        row.ID,
		Name:      row.Name,
		Color:     row.Color,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
