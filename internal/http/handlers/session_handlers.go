package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// SessionHandlers handles tracked-session HTTP requests
type SessionHandlers struct {
	sessionSvc domain.SessionService
}

// NewSessionHandlers creates new session handlers
func NewSessionHandlers(sessionSvc domain.SessionService) *SessionHandlers {
	return &SessionHandlers{sessionSvc: sessionSvc}
}

// StartSessionRequest represents a session start request
type StartSessionRequest struct {
	CategoryID      uint   `json:"categoryId" binding:"required"`
	Type            string `json:"type" binding:"required,oneof=stopwatch timer"`
	DurationSeconds *int   `json:"durationSeconds,omitempty"`
}

// Start handles session creation
func (h *SessionHandlers) Start(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "access token not found"}})
		return
	}

	session, err := h.sessionSvc.Start(c.Request.Context(), userID, req.CategoryID, req.Type, req.DurationSeconds)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sessionBody(session))
}

// List returns completed sessions with their categories. With both `from`
// and `to` query params (RFC 3339) the date range wins and the owner filter
// is ignored; otherwise only the caller's sessions are returned.
func (h *SessionHandlers) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "access token not found"}})
		return
	}

	filter := domain.SessionFilter{UserID: userID}

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" && toStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{"message": "invalid from timestamp"}})
			return
		}
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{"message": "invalid to timestamp"}})
			return
		}
		filter.From, filter.To = &from, &to
	}

	summaries, err := h.sessionSvc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// Pause handles pausing a running session
func (h *SessionHandlers) Pause(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Pause(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session paused", "result": sessionBody(session)})
}

// Resume handles resuming a paused session
func (h *SessionHandlers) Resume(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Resume(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session resumed", "result": sessionBody(session)})
}

// Complete handles completing a session
func (h *SessionHandlers) Complete(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Complete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session completed", "result": sessionBody(session)})
}

// Delete handles session deletion
func (h *SessionHandlers) Delete(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func sessionID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{"message": "invalid session id"}})
		return 0, false
	}
	return uint(id), true
}

func sessionBody(s *domain.Session) gin.H {
	return gin.H{
		"id":                 s.ID,
		"userId":             s.UserID,
		"categoryId":         s.CategoryID,
		"type":               s.Type,
		"durationSeconds":    s.DurationSeconds,
		"startedAt":          s.StartedAt,
		"pausedAt":           s.PausedAt,
		"totalPausedSeconds": s.TotalPausedSeconds,
		"elapsedSeconds":     s.ElapsedSeconds,
		"endedAt":            s.EndedAt,
		"isCompleted":        s.IsCompleted,
	}
}
