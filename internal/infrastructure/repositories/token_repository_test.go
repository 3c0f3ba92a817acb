package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// testDB opens a private in-memory database with all tables migrated.
// Capped at one connection so every query sees the same memory store.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&DBUser{}, &DBRefreshToken{}, &DBInvalidatedToken{}, &DBCategory{}, &DBSession{}))
	return db
}

func TestRefreshTokenLifecycle(t *testing.T) {
	repo := NewTokenRepository(testDB(t))
	ctx := context.Background()

	token := &domain.RefreshToken{Token: "rt-1", UserID: 1}
	require.NoError(t, repo.CreateRefreshToken(ctx, token))
	assert.NotZero(t, token.ID)

	found, err := repo.FindRefreshToken(ctx, "rt-1", 1)
	require.NoError(t, err)
	assert.Equal(t, token.ID, found.ID)

	// wrong owner does not match
	_, err = repo.FindRefreshToken(ctx, "rt-1", 2)
	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)
}

func TestRotateConsumesExactlyOnce(t *testing.T) {
	repo := NewTokenRepository(testDB(t))
	ctx := context.Background()

	token := &domain.RefreshToken{Token: "rt-1", UserID: 1}
	require.NoError(t, repo.CreateRefreshToken(ctx, token))

	replacement := &domain.RefreshToken{Token: "rt-2", UserID: 1}
	require.NoError(t, repo.Rotate(ctx, token.ID, replacement))
	assert.NotZero(t, replacement.ID)

	_, err := repo.FindRefreshToken(ctx, "rt-1", 1)
	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)
	_, err = repo.FindRefreshToken(ctx, "rt-2", 1)
	assert.NoError(t, err)

	// rotating the consumed record again must fail and leave nothing behind
	err = repo.Rotate(ctx, token.ID, &domain.RefreshToken{Token: "rt-3", UserID: 1})
	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)
	_, err = repo.FindRefreshToken(ctx, "rt-3", 1)
	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)
}

func TestDeleteAllRefreshTokens(t *testing.T) {
	repo := NewTokenRepository(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateRefreshToken(ctx, &domain.RefreshToken{Token: "rt-1", UserID: 1}))
	require.NoError(t, repo.CreateRefreshToken(ctx, &domain.RefreshToken{Token: "rt-2", UserID: 1}))
	require.NoError(t, repo.CreateRefreshToken(ctx, &domain.RefreshToken{Token: "rt-3", UserID: 2}))

	require.NoError(t, repo.DeleteAllRefreshTokens(ctx, 1))

	_, err := repo.FindRefreshToken(ctx, "rt-1", 1)
	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)
	_, err = repo.FindRefreshToken(ctx, "rt-2", 1)
	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)

	// other users keep theirs
	_, err = repo.FindRefreshToken(ctx, "rt-3", 2)
	assert.NoError(t, err)
}

func TestDenylist(t *testing.T) {
	repo := NewTokenRepository(testDB(t))
	ctx := context.Background()
	now := time.Now()

	revoked, err := repo.IsTokenInvalidated(ctx, "at-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.InsertInvalidatedToken(ctx, &domain.InvalidatedToken{
		Token:     "at-1",
		UserID:    1,
		ExpiresAt: now.Add(15 * time.Minute),
	}))

	revoked, err = repo.IsTokenInvalidated(ctx, "at-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestDeleteExpiredInvalidated(t *testing.T) {
	repo := NewTokenRepository(testDB(t))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.InsertInvalidatedToken(ctx, &domain.InvalidatedToken{
		Token: "stale", UserID: 1, ExpiresAt: now.Add(-time.Hour),
	}))
	require.NoError(t, repo.InsertInvalidatedToken(ctx, &domain.InvalidatedToken{
		Token: "live", UserID: 1, ExpiresAt: now.Add(time.Hour),
	}))

	require.NoError(t, repo.DeleteExpiredInvalidated(ctx, now))

	revoked, err := repo.IsTokenInvalidated(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = repo.IsTokenInvalidated(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)
}
