package middleware

import (
	"net/http"

	"github.com/edipub/backend/internal/domain/identity"
	"github.com/edipub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CurrentUserKey is the context key holding the loaded user entity
const CurrentUserKey = "current_user"

// LoadUser resolves the authenticated user from the database and stores it
// in the context. It must run after JWT authentication. Deactivated
// accounts are rejected even when their token is still valid.
func LoadUser(users identity.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := GetJWTUserID(c)
		if userIDStr == "" {
			c.Next()
			return
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			abortWith(c, http.StatusUnauthorized, dto.ErrCodeTokenInvalid, "Invalid user id in token")
			return
		}
		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			abortWith(c, http.StatusInternalServerError, dto.ErrCodeInternal, "Failed to load user")
			return
		}
		if user == nil || !user.Active {
			abortWith(c, http.StatusUnauthorized, dto.ErrCodeAccountDisabled, "Ce compte a été désactivé")
			return
		}
		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// GetCurrentUser retrieves the loaded user entity from the context
func GetCurrentUser(c *gin.Context) *identity.User {
	if v, exists := c.Get(CurrentUserKey); exists {
		if user, ok := v.(*identity.User); ok {
			return user
		}
	}
	return nil
}

// RequireRole allows only the given roles through
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := identity.Role(GetJWTRole(c))
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		abortWith(c, http.StatusForbidden, dto.ErrCodeForbidden, "Accès réservé")
	}
}

// RequireStaff allows only back-office roles through
func RequireStaff() gin.HandlerFunc {
	return RequireRole(identity.StaffRoles...)
}

func abortWith(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status,
		dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}
