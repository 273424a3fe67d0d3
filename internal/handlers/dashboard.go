package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gardenhub-dev/gardenhub/internal/dashboard"
)

func (h *Handler) Dashboard(ctx *gin.Context) {
	stats, err := dashboard.Compute(h.Store, time.Now())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
