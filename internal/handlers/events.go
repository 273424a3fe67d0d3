package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gardenhub-dev/gardenhub/internal/middleware"
	"github.com/gardenhub-dev/gardenhub/internal/models"
)

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
	StartTime   string    `json:"startTime" binding:"required"`
	EndTime     string    `json:"endTime" binding:"required"`
	Location    string    `json:"location"`
}

func (h *Handler) ListEvents(ctx *gin.Context) {
	events, err := h.Store.Events()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, events)
}

func (h *Handler) CreateEvent(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req CreateEventRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		CreatedBy:   current.ID,
	}

	if err := h.Store.CreateEvent(&event); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, event)
}
