package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// MockCategoryRepository implements domain.CategoryRepository for testing
type MockCategoryRepository struct {
	CreateFunc     func(ctx context.Context, category *domain.Category) error
	FindByIDFunc   func(ctx context.Context, id uint) (*domain.Category, error)
	ListByUserFunc func(ctx context.Context, userID uint) ([]domain.Category, error)
	UpdateFunc     func(ctx context.Context, category *domain.Category) error
	DeleteFunc     func(ctx context.Context, id uint) error

	mu         sync.Mutex
	nextID     uint
	categories map[uint]*domain.Category
}

// NewMockCategoryRepository creates a new MockCategoryRepository with default behaviors
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		nextID:     1,
		categories: make(map[uint]*domain.Category),
	}
}

// Create stores a category
func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	category.ID = m.nextID
	m.nextID++
	copied := *category
	m.categories[category.ID] = &copied
	return nil
}

// FindByID returns the category with the given ID
func (m *MockCategoryRepository) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.categories[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// ListByUser returns the user's categories
func (m *MockCategoryRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Category, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Category
	for _, c := range m.categories {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update replaces the stored category
func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	copied := *category
	m.categories[category.ID] = &copied
	return nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}
