package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gardenhub-dev/gardenhub/internal/middleware"
	"github.com/gardenhub-dev/gardenhub/internal/models"
)

type CreateWorkDayRequest struct {
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date" binding:"required"`
	StartTime    string    `json:"startTime" binding:"required"`
	EndTime      string    `json:"endTime" binding:"required"`
	MaxAttendees int       `json:"maxAttendees"`
}

type UpdateAttendanceRequest struct {
	Status models.AttendanceStatus `json:"status" binding:"required"`
}

func (h *Handler) ListWorkDays(ctx *gin.Context) {
	workDays, err := h.Store.WorkDays()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, workDays)
}

func (h *Handler) GetWorkDay(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	workDay, err := h.Store.WorkDayByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, workDay)
}

// CreateWorkDay schedules a work day and announces it to every member.
func (h *Handler) CreateWorkDay(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req CreateWorkDayRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	workDay := models.WorkDay{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		MaxAttendees: req.MaxAttendees,
		CreatedBy:    current.ID,
	}

	if err := h.Store.CreateWorkDay(&workDay); err != nil {
		respondError(ctx, err)
		return
	}

	if _, err := h.Notifier.NotifyWorkDayScheduled(&workDay); err != nil {
		log.Printf("Failed to announce work day %d: %v", workDay.ID, err)
	}

	ctx.JSON(http.StatusCreated, workDay)
}

// AttendWorkDay signs the current user up. One signup per user per work
// day, and a full work day rejects further signups.
func (h *Handler) AttendWorkDay(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	workDay, err := h.Store.WorkDayByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	attendances, err := h.Store.WorkDayAttendances(workDay.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	for i := range attendances {
		if attendances[i].UserID == current.ID {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Already signed up for this work day"})
			return
		}
	}

	if workDay.MaxAttendees > 0 && len(attendances) >= workDay.MaxAttendees {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Work day is full"})
		return
	}

	attendance := models.WorkDayAttendance{
		WorkDayID: workDay.ID,
		UserID:    current.ID,
		Status:    models.AttendanceSignedUp,
	}

	if err := h.Store.CreateAttendance(&attendance); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, attendance)
}

func (h *Handler) ListWorkDayAttendances(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := h.Store.WorkDayByID(id); err != nil {
		respondError(ctx, err)
		return
	}

	attendances, err := h.Store.WorkDayAttendances(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, attendances)
}

// UpdateAttendance lets committee members record who actually showed up.
func (h *Handler) UpdateAttendance(ctx *gin.Context) {
	attendanceID, ok := parseIDParam(ctx, "attendance_id")
	if !ok {
		return
	}

	var req UpdateAttendanceRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	switch req.Status {
	case models.AttendanceSignedUp, models.AttendanceAttended, models.AttendanceMissed:
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid attendance status"})
		return
	}

	attendance, err := h.Store.UpdateAttendance(attendanceID, map[string]interface{}{
		"status": req.Status,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, attendance)
}
