package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gardenhub-dev/gardenhub/internal/middleware"
	"github.com/gardenhub-dev/gardenhub/internal/models"
)

type CreateNotificationRequest struct {
	Title             string                      `json:"title" binding:"required"`
	Message           string                      `json:"message" binding:"required"`
	Type              models.NotificationType     `json:"type" binding:"required"`
	Priority          models.NotificationPriority `json:"priority"`
	UserID            *uint                       `json:"userId"`
	IsGlobal          bool                        `json:"isGlobal"`
	RelatedEntityType string                      `json:"relatedEntityType"`
	RelatedEntityID   *uint                       `json:"relatedEntityId"`
	ActionLink        string                      `json:"actionLink"`
}

// ListNotifications returns the current user's inbox: notifications
// addressed to them plus global ones, newest first.
func (h *Handler) ListNotifications(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	notifications, err := h.Store.UserNotifications(current.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

func (h *Handler) UnreadNotificationCount(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	count, err := h.Store.UnreadNotificationCount(current.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

// CreateNotification publishes a manual notification. Global broadcasts
// are committee and manager only; high and urgent priorities also go out
// by email.
func (h *Handler) CreateNotification(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req CreateNotificationRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	if req.IsGlobal && current.Role == models.RoleGardener {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "Only committee members can send global notifications"})
		return
	}

	if !req.IsGlobal && req.UserID == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "A non-global notification needs a userId"})
		return
	}

	notification, err := h.Notifier.Notify(&models.Notification{
		Title:             req.Title,
		Message:           req.Message,
		Type:              req.Type,
		Priority:          req.Priority,
		UserID:            req.UserID,
		IsGlobal:          req.IsGlobal,
		RelatedEntityType: req.RelatedEntityType,
		RelatedEntityID:   req.RelatedEntityID,
		ActionLink:        req.ActionLink,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, notification)
}

func (h *Handler) MarkNotificationRead(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	notification, err := h.Store.NotificationByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if !notification.IsGlobal && (notification.UserID == nil || *notification.UserID != current.ID) {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	updated, err := h.Notifier.MarkRead(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *Handler) MarkAllNotificationsRead(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	if err := h.Notifier.MarkAllRead(current.ID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

func (h *Handler) DeleteNotification(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	notification, err := h.Store.NotificationByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if !notification.IsGlobal && (notification.UserID == nil || *notification.UserID != current.ID) {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	if err := h.Notifier.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
