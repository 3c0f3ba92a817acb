package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// SessionServiceImpl implements domain.SessionService
type SessionServiceImpl struct {
	sessionRepo  domain.SessionRepository
	categoryRepo domain.CategoryRepository
	now          func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(sessionRepo domain.SessionRepository, categoryRepo domain.CategoryRepository) domain.SessionService {
	return &SessionServiceImpl{
		sessionRepo:  sessionRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

// Start implements domain.SessionService. The category must exist. Timer
// sessions carry a plan duration; stopwatch sessions never do.
func (s *SessionServiceImpl) Start(ctx context.Context, userID, categoryID uint, sessionType string, durationSeconds *int) (*domain.Session, error) {
	if sessionType != domain.SessionStopwatch && sessionType != domain.SessionTimer {
		return nil, domain.ErrInvalidSessionType
	}
	if sessionType == domain.SessionTimer && durationSeconds == nil {
		return nil, domain.ErrDurationRequired
	}

	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}

	session := &domain.Session{
		UserID:     userID,
		CategoryID: categoryID,
		Type:       sessionType,
		StartedAt:  s.now(),
	}
	if sessionType == domain.SessionTimer {
		session.DurationSeconds = durationSeconds
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// Pause implements domain.SessionService. It snapshots the elapsed active
// seconds and records the pause start. Pausing twice is rejected so paused
// time is never double-counted.
func (s *SessionServiceImpl) Pause(ctx context.Context, id uint) (*domain.Session, error) {
	return s.sessionRepo.Mutate(ctx, id, func(session *domain.Session) error {
		if session.IsCompleted {
			return domain.ErrSessionCompleted
		}
		if session.IsPaused() {
			return domain.ErrSessionAlreadyPaused
		}

		now := s.now()
		session.ElapsedSeconds = int(now.Sub(session.StartedAt).Seconds()) - session.TotalPausedSeconds
		session.PausedAt = &now
		return nil
	})
}

// Resume implements domain.SessionService. The closed pause window is added
// to the running total; TotalPausedSeconds only ever grows.
func (s *SessionServiceImpl) Resume(ctx context.Context, id uint) (*domain.Session, error) {
	return s.sessionRepo.Mutate(ctx, id, func(session *domain.Session) error {
		if !session.IsPaused() {
			return domain.ErrSessionNotPaused
		}

		now := s.now()
		session.TotalPausedSeconds += int(now.Sub(*session.PausedAt).Seconds())
		session.PausedAt = nil
		return nil
	})
}

// Complete implements domain.SessionService. Completing while paused
// excludes the open pause window from the elapsed total. Completion is
// terminal: the session rejects any further mutation.
func (s *SessionServiceImpl) Complete(ctx context.Context, id uint) (*domain.Session, error) {
	return s.sessionRepo.Mutate(ctx, id, func(session *domain.Session) error {
		if session.IsCompleted {
			return domain.ErrSessionCompleted
		}

		now := s.now()
		elapsed := int(now.Sub(session.StartedAt).Seconds())
		if session.IsPaused() {
			elapsed -= int(now.Sub(*session.PausedAt).Seconds())
		}
		elapsed -= session.TotalPausedSeconds

		session.ElapsedSeconds = elapsed
		session.EndedAt = &now
		session.IsCompleted = true
		session.PausedAt = nil
		return nil
	})
}

// Delete implements domain.SessionService. No completion requirement.
func (s *SessionServiceImpl) Delete(ctx context.Context, id uint) error {
	return s.sessionRepo.Delete(ctx, id)
}

// List implements domain.SessionService
func (s *SessionServiceImpl) List(ctx context.Context, filter domain.SessionFilter) ([]domain.SessionSummary, error) {
	return s.sessionRepo.List(ctx, filter)
}
