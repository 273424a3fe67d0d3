package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gardenhub-dev/gardenhub/internal/middleware"
	"github.com/gardenhub-dev/gardenhub/internal/models"
	"github.com/gardenhub-dev/gardenhub/internal/workflow"
)

type CreateApplicationRequest struct {
	GardenerType        models.GardenerType `json:"gardenerType" binding:"required"`
	PreferredArea       string              `json:"preferredArea"`
	RequestedPlotID     *uint               `json:"requestedPlotId"`
	SpecialRequests     string              `json:"specialRequests"`
	GardeningExperience string              `json:"gardeningExperience"`
}

type DecideApplicationRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required"`
	Notes  string                   `json:"notes"`
}

func (h *Handler) CreateApplication(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req CreateApplicationRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	application, err := h.Workflow.Submit(current.ID, workflow.SubmitInput{
		GardenerType:        req.GardenerType,
		PreferredArea:       req.PreferredArea,
		RequestedPlotID:     req.RequestedPlotID,
		SpecialRequests:     req.SpecialRequests,
		GardeningExperience: req.GardeningExperience,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, application)
}

// ListApplications shows gardeners their own applications and committee
// members and managers everyone's.
func (h *Handler) ListApplications(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var applications []models.Application
	var err error

	if current.Role == models.RoleGardener {
		applications, err = h.Store.UserApplications(current.ID)
	} else {
		applications, err = h.Store.Applications()
	}

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, applications)
}

func (h *Handler) GetApplication(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	application, err := h.Store.ApplicationByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if current.Role == models.RoleGardener && application.UserID != current.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	ctx.JSON(http.StatusOK, application)
}

// DecideApplication approves, rejects or revokes an application. The
// workflow service owns the transition rules; this handler only maps
// the actor and the outcome.
func (h *Handler) DecideApplication(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req DecideApplicationRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	actor := workflow.Actor{ID: current.ID, Role: current.Role}

	application, err := h.Workflow.Decide(actor, id, req.Status, req.Notes)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, application)
}
