package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"validation", ErrFieldsRequired, KindValidation},
		{"conflict", ErrEmailExists, KindConflict},
		{"not found", ErrSessionNotFound, KindNotFound},
		{"unauthorized", ErrInvalidCredentials, KindUnauthorized},
		{"bad request", ErrSessionCompleted, KindBadRequest},
		{"wrapped keeps kind", fmt.Errorf("pause session: %w", ErrSessionAlreadyPaused), KindBadRequest},
		{"unknown maps to internal", errors.New("driver: bad connection"), KindInternal},
		{"nil maps to internal", nil, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.expected {
				t.Errorf("KindOf(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestSentinelIdentity(t *testing.T) {
	// Handlers match on sentinel identity; wrapping must preserve it.
	wrapped := fmt.Errorf("refresh: %w", ErrRefreshTokenNotFound)
	if !errors.Is(wrapped, ErrRefreshTokenNotFound) {
		t.Error("wrapped sentinel not matched by errors.Is")
	}
	if errors.Is(wrapped, ErrTokenInvalid) {
		t.Error("distinct sentinels must not match")
	}
}

func TestSessionIsPaused(t *testing.T) {
	s := &Session{}
	if s.IsPaused() {
		t.Error("new session must not be paused")
	}
	now := s.StartedAt
	s.PausedAt = &now
	if !s.IsPaused() {
		t.Error("session with PausedAt set must be paused")
	}
}
