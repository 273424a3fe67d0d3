package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gardenhub-dev/gardenhub/internal/notify"
	"github.com/gardenhub-dev/gardenhub/internal/store"
	"github.com/gardenhub-dev/gardenhub/internal/workflow"
)

// Handler bundles the dependencies every route needs. One instance is
// built in main and shared across the router.
type Handler struct {
	Store    store.Store
	Workflow *workflow.Service
	Notifier *notify.Notifier
}

func New(s store.Store, w *workflow.Service, n *notify.Notifier) *Handler {
	return &Handler{Store: s, Workflow: w, Notifier: n}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

// respondError maps domain errors onto HTTP statuses. Unknown errors
// become a 500 with a generic message.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	case errors.Is(err, workflow.ErrValidation):
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, workflow.ErrInvalidTransition):
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, workflow.ErrNoPlotAvailable):
		ctx.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, workflow.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
