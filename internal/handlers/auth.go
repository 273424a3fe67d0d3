package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/gardenhub-dev/gardenhub/internal/auth"
	"github.com/gardenhub-dev/gardenhub/internal/middleware"
	"github.com/gardenhub-dev/gardenhub/internal/models"
	"github.com/gardenhub-dev/gardenhub/internal/store"
	"github.com/gardenhub-dev/gardenhub/internal/types"
)

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Password  string `json:"password" binding:"required,min=8"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a gardener account. Role is always gardener here;
// promoting members is a manager action done directly in the database.
func (h *Handler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	if _, err := h.Store.UserByUsername(req.Username); err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"message": "Username already taken"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		respondError(ctx, err)
		return
	}

	if _, err := h.Store.UserByEmail(req.Email); err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		respondError(ctx, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hashed),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         models.RoleGardener,
	}

	if err := h.Store.CreateUser(&user); err != nil {
		log.Printf("Error creating user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	ctx.JSON(http.StatusCreated, types.NewUserResponse(&user))
}

func (h *Handler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.Store.UserByUsername(req.Username)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Username, string(user.Role))
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to log in"})
		return
	}

	ctx.SetSameSite(http.SameSiteNoneMode)
	ctx.SetCookie("token", token, 3600*24*7, "/", os.Getenv("COOKIE_DOMAIN"), true, true)
	ctx.JSON(http.StatusOK, types.NewUserResponse(user))
}

func (h *Handler) Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteNoneMode)
	ctx.SetCookie("token", "", -1, "/", os.Getenv("COOKIE_DOMAIN"), true, true)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	user, err := h.Store.UserByID(current.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(user))
}
