package mocks

import (
	"context"
	"sync"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// MockSessionRepository implements domain.SessionRepository for testing.
// Without overrides it behaves like an in-memory table, and Mutate applies
// the callback under the repository lock like the real implementation.
type MockSessionRepository struct {
	CreateFunc   func(ctx context.Context, session *domain.Session) error
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Session, error)
	MutateFunc   func(ctx context.Context, id uint, fn func(*domain.Session) error) (*domain.Session, error)
	DeleteFunc   func(ctx context.Context, id uint) error
	ListFunc     func(ctx context.Context, filter domain.SessionFilter) ([]domain.SessionSummary, error)

	mu       sync.Mutex
	nextID   uint
	sessions map[uint]*domain.Session
}

// NewMockSessionRepository creates a new MockSessionRepository with default behaviors
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		nextID:   1,
		sessions: make(map[uint]*domain.Session),
	}
}

// Create stores a session
func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	session.ID = m.nextID
	m.nextID++
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

// FindByID returns the session with the given ID
func (m *MockSessionRepository) FindByID(ctx context.Context, id uint) (*domain.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, domain.ErrSessionNotFound
}

// Mutate loads the session, applies fn and stores the result
func (m *MockSessionRepository) Mutate(ctx context.Context, id uint, fn func(*domain.Session) error) (*domain.Session, error) {
	if m.MutateFunc != nil {
		return m.MutateFunc(ctx, id, fn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *s
	if err := fn(&copied); err != nil {
		return nil, err
	}
	m.sessions[id] = &copied
	result := copied
	return &result, nil
}

// Delete removes a session
func (m *MockSessionRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// List returns completed-session summaries matching the filter
func (m *MockSessionRepository) List(ctx context.Context, filter domain.SessionFilter) ([]domain.SessionSummary, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.SessionSummary
	for _, s := range m.sessions {
		if !s.IsCompleted {
			continue
		}
		if filter.From != nil && filter.To != nil {
			if s.StartedAt.Before(*filter.From) || s.StartedAt.After(*filter.To) {
				continue
			}
		} else if s.UserID != filter.UserID {
			continue
		}
		out = append(out, domain.SessionSummary{
			ID:             s.ID,
			Type:           s.Type,
			StartedAt:      s.StartedAt,
			EndedAt:        s.EndedAt,
			ElapsedSeconds: s.ElapsedSeconds,
			IsCompleted:    s.IsCompleted,
			CategoryID:     s.CategoryID,
		})
	}
	return out, nil
}
