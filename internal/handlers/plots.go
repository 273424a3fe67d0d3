package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gardenhub-dev/gardenhub/internal/models"
	"github.com/gardenhub-dev/gardenhub/internal/store"
)

type CreatePlotRequest struct {
	PlotNumber string            `json:"plotNumber" binding:"required"`
	Area       string            `json:"area" binding:"required"`
	Size       string            `json:"size" binding:"required"`
	YearlyFee  int               `json:"yearlyFee" binding:"required,min=0"`
	Status     models.PlotStatus `json:"status"`
	Notes      string            `json:"notes"`
}

type UpdatePlotRequest struct {
	Status     *models.PlotStatus `json:"status"`
	AssignedTo *uint              `json:"assignedTo"`
	YearlyFee  *int               `json:"yearlyFee"`
	Notes      *string            `json:"notes"`
}

func (h *Handler) ListPlots(ctx *gin.Context) {
	plots, err := h.Store.Plots()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, plots)
}

func (h *Handler) GetPlot(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	plot, err := h.Store.PlotByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, plot)
}

func (h *Handler) CreatePlot(ctx *gin.Context) {
	var req CreatePlotRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	if _, err := h.Store.PlotByNumber(req.PlotNumber); err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"message": "Plot number already exists"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		respondError(ctx, err)
		return
	}

	status := req.Status
	if status == "" {
		status = models.PlotAvailable
	}

	plot := models.Plot{
		PlotNumber: req.PlotNumber,
		Area:       req.Area,
		Size:       req.Size,
		YearlyFee:  req.YearlyFee,
		Status:     status,
		Notes:      req.Notes,
	}

	if err := h.Store.CreatePlot(&plot); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, plot)
}

// UpdatePlot applies a partial update. A plot may only carry an assignee
// while its status is assigned or paid: assigning without a status moves
// the plot to assigned, moving it to available or unavailable clears the
// assignee, and a request combining both is rejected.
func (h *Handler) UpdatePlot(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req UpdatePlotRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	if req.AssignedTo != nil && req.Status != nil &&
		*req.Status != models.PlotAssigned && *req.Status != models.PlotPaid {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "A plot with an assignee must be assigned or paid"})
		return
	}

	updates := map[string]interface{}{}

	if req.Status != nil {
		updates["status"] = *req.Status
		if *req.Status == models.PlotAvailable || *req.Status == models.PlotUnavailable {
			updates["assigned_to"] = nil
		}
	}
	if req.AssignedTo != nil {
		if _, err := h.Store.UserByID(*req.AssignedTo); err != nil {
			respondError(ctx, err)
			return
		}
		updates["assigned_to"] = *req.AssignedTo
		if req.Status == nil {
			updates["status"] = models.PlotAssigned
		}
	}
	if req.YearlyFee != nil {
		updates["yearly_fee"] = *req.YearlyFee
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "No fields to update"})
		return
	}

	plot, err := h.Store.UpdatePlot(id, updates)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, plot)
}
