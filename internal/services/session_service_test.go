package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaungsithu202/Tide-Focus/domain"
	"github.com/kaungsithu202/Tide-Focus/internal/mocks"
)

type sessionFixture struct {
	repo  *mocks.MockSessionRepository
	cats  *mocks.MockCategoryRepository
	clock *fakeClock
	svc   *SessionServiceImpl
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	f := &sessionFixture{
		repo:  mocks.NewMockSessionRepository(),
		cats:  mocks.NewMockCategoryRepository(),
		clock: clock,
	}
	f.svc = &SessionServiceImpl{
		sessionRepo:  f.repo,
		categoryRepo: f.cats,
		now:          clock.Now,
	}
	require.NoError(t, f.cats.Create(context.Background(), &domain.Category{UserID: 1, Name: "Deep Work", Color: "#336699"}))
	return f
}

func (f *sessionFixture) start(t *testing.T, sessionType string, duration *int) *domain.Session {
	t.Helper()
	s, err := f.svc.Start(context.Background(), 1, 1, sessionType, duration)
	require.NoError(t, err)
	return s
}

func TestStartStopwatch(t *testing.T) {
	f := newSessionFixture(t)

	s := f.start(t, domain.SessionStopwatch, nil)
	assert.Equal(t, f.clock.Now(), s.StartedAt)
	assert.Nil(t, s.DurationSeconds)
	assert.False(t, s.IsCompleted)
	assert.False(t, s.IsPaused())
}

func TestStartTimerRequiresDuration(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.svc.Start(context.Background(), 1, 1, domain.SessionTimer, nil)
	assert.ErrorIs(t, err, domain.ErrDurationRequired)

	duration := 1500
	s := f.start(t, domain.SessionTimer, &duration)
	require.NotNil(t, s.DurationSeconds)
	assert.Equal(t, 1500, *s.DurationSeconds)
}

func TestStartRejectsUnknownType(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.svc.Start(context.Background(), 1, 1, "countdown", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidSessionType)
}

func TestStartRejectsMissingCategory(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.svc.Start(context.Background(), 1, 42, domain.SessionStopwatch, nil)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestStopwatchIgnoresDuration(t *testing.T) {
	f := newSessionFixture(t)

	duration := 600
	s := f.start(t, domain.SessionStopwatch, &duration)
	assert.Nil(t, s.DurationSeconds)
}

func TestPauseResumeCompleteAccounting(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	s := f.start(t, domain.SessionStopwatch, nil)

	// pause at T+100: 100 active seconds so far
	f.clock.Advance(100 * time.Second)
	paused, err := f.svc.Pause(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, paused.ElapsedSeconds)
	assert.True(t, paused.IsPaused())

	// resume at T+130: the 30s pause window is banked
	f.clock.Advance(30 * time.Second)
	resumed, err := f.svc.Resume(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, resumed.TotalPausedSeconds)
	assert.False(t, resumed.IsPaused())

	// complete at T+200: 200 wall seconds minus 30 paused
	f.clock.Advance(70 * time.Second)
	done, err := f.svc.Complete(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 170, done.ElapsedSeconds)
	assert.True(t, done.IsCompleted)
	require.NotNil(t, done.EndedAt)
	assert.Equal(t, f.clock.Now(), *done.EndedAt)
}

func TestCompleteWhilePausedExcludesOpenWindow(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	s := f.start(t, domain.SessionStopwatch, nil)

	f.clock.Advance(60 * time.Second)
	_, err := f.svc.Pause(ctx, s.ID)
	require.NoError(t, err)

	// still paused 40 seconds later; only the first 60s count
	f.clock.Advance(40 * time.Second)
	done, err := f.svc.Complete(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, done.ElapsedSeconds)
	assert.False(t, done.IsPaused())
	assert.True(t, done.IsCompleted)
}

func TestPauseTwiceRejected(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	s := f.start(t, domain.SessionStopwatch, nil)
	f.clock.Advance(10 * time.Second)
	_, err := f.svc.Pause(ctx, s.ID)
	require.NoError(t, err)

	_, err = f.svc.Pause(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyPaused)
}

func TestResumeWhileRunningRejected(t *testing.T) {
	f := newSessionFixture(t)

	s := f.start(t, domain.SessionStopwatch, nil)
	_, err := f.svc.Resume(context.Background(), s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotPaused)
}

func TestCompletedSessionIsTerminal(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	s := f.start(t, domain.SessionStopwatch, nil)
	f.clock.Advance(time.Minute)
	_, err := f.svc.Complete(ctx, s.ID)
	require.NoError(t, err)

	_, err = f.svc.Pause(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionCompleted)
	_, err = f.svc.Complete(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionCompleted)
}

func TestMultiplePauseCycles(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	s := f.start(t, domain.SessionStopwatch, nil)

	for i := 0; i < 3; i++ {
		f.clock.Advance(20 * time.Second)
		_, err := f.svc.Pause(ctx, s.ID)
		require.NoError(t, err)
		f.clock.Advance(10 * time.Second)
		_, err = f.svc.Resume(ctx, s.ID)
		require.NoError(t, err)
	}

	f.clock.Advance(20 * time.Second)
	done, err := f.svc.Complete(ctx, s.ID)
	require.NoError(t, err)
	// 110 wall seconds, 30 of them paused
	assert.Equal(t, 30, done.TotalPausedSeconds)
	assert.Equal(t, 80, done.ElapsedSeconds)
}

func TestDeleteWorksRegardlessOfState(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	s := f.start(t, domain.SessionStopwatch, nil)
	require.NoError(t, f.svc.Delete(ctx, s.ID))

	err := f.svc.Delete(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
