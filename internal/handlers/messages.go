package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gardenhub-dev/gardenhub/internal/middleware"
	"github.com/gardenhub-dev/gardenhub/internal/models"
)

type CreateMessageRequest struct {
	RecipientID *uint  `json:"recipientId"`
	Subject     string `json:"subject" binding:"required"`
	Content     string `json:"content" binding:"required"`
	IsGlobal    bool   `json:"isGlobal"`
}

// ListMessages returns everything visible to the current user: messages
// they sent, messages addressed to them, and global announcements.
func (h *Handler) ListMessages(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	messages, err := h.Store.UserMessages(current.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, messages)
}

// CreateMessage sends a direct message or, for committee and manager, a
// global announcement. Exactly one of recipientId and isGlobal is
// required.
func (h *Handler) CreateMessage(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req CreateMessageRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	if req.IsGlobal == (req.RecipientID != nil) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Provide either a recipient or isGlobal, not both"})
		return
	}

	if req.IsGlobal && current.Role == models.RoleGardener {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "Only committee members can send global messages"})
		return
	}

	if req.RecipientID != nil {
		if _, err := h.Store.UserByID(*req.RecipientID); err != nil {
			respondError(ctx, err)
			return
		}
	}

	message := models.Message{
		SenderID:    current.ID,
		RecipientID: req.RecipientID,
		Subject:     req.Subject,
		Content:     req.Content,
		IsGlobal:    req.IsGlobal,
	}

	if err := h.Store.CreateMessage(&message); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, message)
}

// MarkMessageRead stamps a direct message as read. Only the recipient
// may do this.
func (h *Handler) MarkMessageRead(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	message, err := h.Store.MessageByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if message.RecipientID == nil || *message.RecipientID != current.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	updated, err := h.Store.UpdateMessage(id, map[string]interface{}{
		"read_at": time.Now(),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}
