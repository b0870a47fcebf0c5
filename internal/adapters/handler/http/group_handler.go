package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelkov/focusboard/internal/adapters/handler/http/middleware"
	"github.com/avelkov/focusboard/internal/core/domain"
	"github.com/avelkov/focusboard/internal/core/services"
)

type GroupHandler struct {
	svc      *services.GroupService
	statsSvc *services.StatsService
}

func NewGroupHandler(svc *services.GroupService, statsSvc *services.StatsService) *GroupHandler {
	return &GroupHandler{
		svc:      svc,
		statsSvc: statsSvc,
	}
}

type createGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

type joinGroupRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

type switchGroupRequest struct {
	GroupID string `json:"group_id" binding:"required"`
}

func (h *GroupHandler) RegisterRoutes(router *gin.RouterGroup) {
	groups := router.Group("/groups")
	{
		groups.POST("", h.Create)
		groups.GET("", h.ListMine)
		groups.POST("/join", h.Join)
		groups.POST("/switch", h.Switch)
		groups.GET("/:id/leaderboard", h.Leaderboard)
	}
}

func (h *GroupHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.svc.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrGroupNameEmpty) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, group)
}

func (h *GroupHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	groups, err := h.svc.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, groups)
}

func (h *GroupHandler) Join(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req joinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.svc.Join(c.Request.Context(), userID, req.InviteCode)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGroupNotFound), errors.Is(err, domain.ErrInviteCodeInvalid):
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid invite code"})
		case errors.Is(err, domain.ErrAlreadyMember):
			c.JSON(http.StatusConflict, gin.H{"error": "already a member of this group"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, group)
}

func (h *GroupHandler) Switch(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req switchGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.SwitchContext(c.Request.Context(), userID, req.GroupID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGroupNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		case errors.Is(err, domain.ErrNotGroupMember):
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied to group"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *GroupHandler) Leaderboard(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	period := domain.StatsPeriod(c.DefaultQuery("period", string(domain.PeriodWeekly)))
	if !period.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period (must be daily, weekly, monthly, yearly, or all)"})
		return
	}

	entries, err := h.statsSvc.Leaderboard(c.Request.Context(), userID, c.Param("id"), period)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGroupNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		case errors.Is(err, domain.ErrNotGroupMember):
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied to group"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, entries)
}
