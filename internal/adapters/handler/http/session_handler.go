package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avelkov/focusboard/internal/adapters/handler/http/middleware"
	"github.com/avelkov/focusboard/internal/core/domain"
	"github.com/avelkov/focusboard/internal/core/services"
)

type SessionHandler struct {
	svc          *services.SessionService
	statsSvc     *services.StatsService
	achievements *services.AchievementService
}

func NewSessionHandler(svc *services.SessionService, statsSvc *services.StatsService, achievements *services.AchievementService) *SessionHandler {
	return &SessionHandler{
		svc:          svc,
		statsSvc:     statsSvc,
		achievements: achievements,
	}
}

type createSessionRequest struct {
	TaskKind string `json:"task_kind" binding:"required"`
	TaskID   string `json:"task_id" binding:"required"`
	Duration int    `json:"duration" binding:"required"`
}

type createCustomSessionRequest struct {
	TaskKind    string    `json:"task_kind" binding:"required"`
	TaskID      string    `json:"task_id" binding:"required"`
	Duration    int       `json:"duration" binding:"required"`
	SessionDate time.Time `json:"session_date" binding:"required"`
	Notes       string    `json:"notes"`
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	focus := router.Group("/focus")
	{
		focus.POST("", h.Create)
		focus.POST("/custom", h.CreateCustom)
		focus.GET("", h.ListRecent)
		focus.GET("/stats", h.Stats)
		focus.GET("/achievements", h.ListAchievements)
		focus.GET("/achievements/catalog", h.Catalog)
	}
}

func sessionErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "task not found"
	case errors.Is(err, domain.ErrInvalidTaskKind),
		errors.Is(err, domain.ErrNegativeDuration),
		errors.Is(err, domain.ErrSessionTooLong),
		errors.Is(err, domain.ErrSessionInFuture),
		errors.Is(err, domain.ErrSessionNotesTooLong):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (h *SessionHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Create(c.Request.Context(), services.CreateSessionInput{
		UserID:   userID,
		TaskKind: req.TaskKind,
		TaskID:   req.TaskID,
		Duration: req.Duration,
	})
	if err != nil {
		status, msg := sessionErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *SessionHandler) CreateCustom(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createCustomSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.CreateCustom(c.Request.Context(), services.CreateCustomSessionInput{
		UserID:      userID,
		TaskKind:    req.TaskKind,
		TaskID:      req.TaskID,
		Duration:    req.Duration,
		SessionDate: req.SessionDate,
		Notes:       req.Notes,
	})
	if err != nil {
		status, msg := sessionErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *SessionHandler) ListRecent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	sessions, err := h.svc.ListRecent(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

func (h *SessionHandler) Stats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	period := domain.StatsPeriod(c.DefaultQuery("period", string(domain.PeriodAll)))
	if !period.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period (must be daily, weekly, monthly, yearly, or all)"})
		return
	}

	stats, err := h.statsSvc.GetStats(c.Request.Context(), userID, period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *SessionHandler) ListAchievements(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	earned, err := h.achievements.ListEarned(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, earned)
}

func (h *SessionHandler) Catalog(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	catalog, err := h.achievements.Catalog(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, catalog)
}
