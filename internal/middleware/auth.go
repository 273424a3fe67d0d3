package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/gardenhub-dev/gardenhub/internal/auth"
	"github.com/gardenhub-dev/gardenhub/internal/models"
	"github.com/gardenhub-dev/gardenhub/internal/store"
)

const contextUserKey = "currentUser"

type AuthenticatedUser struct {
	ID        uint            `json:"id"`
	Username  string          `json:"username"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
}

// CurrentUser returns the user AuthMiddleware stored on the request
// context. The second return is false on routes that skipped the
// middleware.
func CurrentUser(ctx *gin.Context) (AuthenticatedUser, bool) {
	value, exists := ctx.Get(contextUserKey)
	if !exists {
		return AuthenticatedUser{}, false
	}

	user, ok := value.(AuthenticatedUser)
	return user, ok
}

// tokenFromRequest accepts the session cookie set on login, or a bearer
// header for non-browser clients.
func tokenFromRequest(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

func AuthMiddleware(s store.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := tokenFromRequest(ctx)

		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		token, err := auth.VerifyJWT(tokenString)

		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token claims"})
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid user ID in token claims"})
			return
		}

		user, err := s.UserByID(uint(userIDFloat))

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			return
		}

		ctx.Set(contextUserKey, AuthenticatedUser{
			ID:        user.ID,
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Role:      user.Role,
		})
		ctx.Next()
	}
}

// CommitteeOrManager gates routes reserved for committee members and the
// garden manager. Must run after AuthMiddleware.
func CommitteeOrManager() gin.HandlerFunc {
	return requireRole(models.RoleCommittee, models.RoleManager)
}

// ManagerOnly gates destructive and user-management routes.
func ManagerOnly() gin.HandlerFunc {
	return requireRole(models.RoleManager)
}

func requireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := CurrentUser(ctx)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		for _, role := range roles {
			if user.Role == role {
				ctx.Next()
				return
			}
		}

		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
	}
}
