package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using GORM
type SessionRepositoryImpl struct {
	db *gorm.DB
}

// DBSession represents the database model for a tracked session
type DBSession struct {
	ID                 uint   `gorm:"primaryKey"`
	UserID             uint   `gorm:"index"`
	CategoryID         uint   `gorm:"index"`
	Type               string `gorm:"size:16"`
	DurationSeconds    *int
	StartedAt          time.Time `gorm:"index"`
	PausedAt           *time.Time
	TotalPausedSeconds int
	ElapsedSeconds     int
	EndedAt            *time.Time
	IsCompleted        bool `gorm:"index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (DBSession) TableName() string {
	return "sessions"
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	row := r.domainToDB(session)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	session.ID = row.ID
	session.CreatedAt = row.CreatedAt
	session.UpdatedAt = row.UpdatedAt
	return nil
}

// FindByID implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Session, error) {
	var row DBSession
	err := r.db.WithContext(ctx).First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&row), nil
}

// Mutate implements domain.SessionRepository. The row is locked FOR UPDATE
// on Postgres so concurrent pause/resume/complete on the same session
// serialize. SQLite (tests) has no row locks; its transactions serialize
// writers anyway.
func (r *SessionRepositoryImpl) Mutate(ctx context.Context, id uint, fn func(*domain.Session) error) (*domain.Session, error) {
	var out *domain.Session
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var row DBSession
		if err := q.First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrSessionNotFound
			}
			return err
		}

		session := r.dbToDomain(&row)
		if err := fn(session); err != nil {
			return err
		}

		updated := r.domainToDB(session)
		updated.CreatedAt = row.CreatedAt
		if err := tx.Model(&DBSession{ID: id}).
			Select("PausedAt", "TotalPausedSeconds", "ElapsedSeconds", "EndedAt", "IsCompleted").
			Updates(updated).Error; err != nil {
			return err
		}
		out = session
		return nil
	})
	return out, err
}

// Delete implements domain.SessionRepository
func (r *SessionRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBSession{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// List implements domain.SessionRepository. Completed sessions only, with
// the category projected alongside. A full date range wins over the owner
// filter.
func (r *SessionRepositoryImpl) List(ctx context.Context, filter domain.SessionFilter) ([]domain.SessionSummary, error) {
	q := r.db.WithContext(ctx).Table("sessions").
		Select("sessions.id, sessions.type, sessions.started_at, sessions.ended_at, " +
			"sessions.elapsed_seconds, sessions.is_completed, " +
			"categories.id AS category_id, categories.name AS category_name, categories.color AS category_color").
		Joins("JOIN categories ON categories.id = sessions.category_id").
		Where("sessions.is_completed = ?", true)

	if filter.From != nil && filter.To != nil {
		q = q.Where("sessions.started_at BETWEEN ? AND ?", *filter.From, *filter.To)
	} else {
		q = q.Where("sessions.user_id = ?", filter.UserID)
	}

	var rows []domain.SessionSummary
	if err := q.Order("sessions.started_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SessionRepositoryImpl) domainToDB(s *domain.Session) *DBSession {
	return &DBSession{
		ID:                 s.ID,
		UserID:             s.UserID,
		CategoryID:         s.CategoryID,
		Type:               s.Type,
		DurationSeconds:    s.DurationSeconds,
		StartedAt:          s.StartedAt,
		PausedAt:           s.PausedAt,
		TotalPausedSeconds: s.TotalPausedSeconds,
		ElapsedSeconds:     s.ElapsedSeconds,
		EndedAt:            s.EndedAt,
		IsCompleted:        s.IsCompleted,
	}
}

func (r *SessionRepositoryImpl) dbToDomain(row *DBSession) *domain.Session {
	return &domain.Session{
		ID:                 row.ID,
		UserID:             row.UserID,
		CategoryID:         row.CategoryID,
		Type:               row.Type,
		DurationSeconds:    row.DurationSeconds,
		StartedAt:          row.StartedAt,
		PausedAt:           row.PausedAt,
		TotalPausedSeconds: row.TotalPausedSeconds,
		ElapsedSeconds:     row.ElapsedSeconds,
		EndedAt:            row.EndedAt,
		IsCompleted:        row.IsCompleted,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}
