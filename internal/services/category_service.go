package services

import (
	"context"
	"fmt"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// CategoryServiceImpl implements domain.CategoryService
type CategoryServiceImpl struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo domain.CategoryRepository) domain.CategoryService {
	return &CategoryServiceImpl{categoryRepo: categoryRepo}
}

// Create implements domain.CategoryService
func (s *CategoryServiceImpl) Create(ctx context.Context, userID uint, name, color string) (*domain.Category, error) {
	if name == "" || color == "" {
		return nil, domain.ErrFieldsRequired
	}

	category := &domain.Category{Name: name, Color: color, UserID: userID}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// Get implements domain.CategoryService
func (s *CategoryServiceImpl) Get(ctx context.Context, id uint) (*domain.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

// ListByUser implements domain.CategoryService
func (s *CategoryServiceImpl) ListByUser(ctx context.Context, userID uint) ([]domain.Category, error) {
	return s.categoryRepo.ListByUser(ctx, userID)
}

// Update implements domain.CategoryService
func (s *CategoryServiceImpl) Update(ctx context.Context, id uint, name, color string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		category.Name = name
	}
	if color != "" {
		category.Color = color
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// Delete implements domain.CategoryService
func (s *CategoryServiceImpl) Delete(ctx context.Context, id uint) error {
	return s.categoryRepo.Delete(ctx, id)
}
