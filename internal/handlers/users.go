package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gardenhub-dev/gardenhub/internal/types"
)

// ListUsers returns every member. Committee and manager only, gated by
// the router.
func (h *Handler) ListUsers(ctx *gin.Context) {
	users, err := h.Store.Users()
	if err != nil {
		respondError(ctx, err)
		return
	}

	responses := make([]types.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, types.NewUserResponse(&users[i]))
	}

	ctx.JSON(http.StatusOK, responses)
}
