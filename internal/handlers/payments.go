package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gardenhub-dev/gardenhub/internal/middleware"
	"github.com/gardenhub-dev/gardenhub/internal/models"
)

type CreatePaymentRequest struct {
	UserID  *uint     `json:"userId"`
	PlotID  uint      `json:"plotId" binding:"required"`
	Amount  int       `json:"amount" binding:"required,min=0"`
	DueDate time.Time `json:"dueDate" binding:"required"`
	Notes   string    `json:"notes"`
}

type UpdatePaymentRequest struct {
	Status models.PaymentStatus `json:"status" binding:"required"`
	Notes  *string              `json:"notes"`
}

// ListPayments returns the current user's payments, or everyone's for a
// manager.
func (h *Handler) ListPayments(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var payments []models.Payment
	var err error

	if current.Role == models.RoleManager {
		payments, err = h.Store.Payments()
	} else {
		payments, err = h.Store.UserPayments(current.ID)
	}

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payments)
}

// CreatePayment records a fee. Gardeners may only create payments against
// themselves; a manager can record one for any member.
func (h *Handler) CreatePayment(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req CreatePaymentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	userID := current.ID
	if req.UserID != nil && *req.UserID != current.ID {
		if current.Role != models.RoleManager {
			ctx.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		userID = *req.UserID
	}

	if _, err := h.Store.PlotByID(req.PlotID); err != nil {
		respondError(ctx, err)
		return
	}

	payment := models.Payment{
		UserID:  userID,
		PlotID:  req.PlotID,
		Amount:  req.Amount,
		Status:  models.PaymentPending,
		DueDate: req.DueDate,
		Notes:   req.Notes,
	}

	if err := h.Store.CreatePayment(&payment); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, payment)
}

// UpdatePayment changes a payment's status. The payer can mark their own
// payment paid; only a manager may touch other members' payments. Moving
// to paid stamps the paid date.
func (h *Handler) UpdatePayment(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req UpdatePaymentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	switch req.Status {
	case models.PaymentPending, models.PaymentPaid, models.PaymentOverdue:
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payment status"})
		return
	}

	payment, err := h.Store.PaymentByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if payment.UserID != current.ID && current.Role != models.RoleManager {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	updates := map[string]interface{}{"status": req.Status}

	if req.Status == models.PaymentPaid {
		updates["paid_date"] = time.Now()
	} else {
		updates["paid_date"] = nil
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	updated, err := h.Store.UpdatePayment(id, updates)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}
