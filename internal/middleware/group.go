package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pantryloop/backend/internal/models"
)

// TenantResolver resolves a user's shopping group.
type TenantResolver interface {
	ResolveTenant(ctx context.Context, userID uuid.UUID) (*models.Group, error)
}

// GroupMiddleware resolves the acting user's group and stores it in the
// request context. Requests from users without a group are rejected; they
// must create or join one first.
func GroupMiddleware(resolver TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		group, err := resolver.ResolveTenant(c.Request.Context(), userID.(uuid.UUID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve group"})
			c.Abort()
			return
		}
		if group == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "you must create or join a group first"})
			c.Abort()
			return
		}

		c.Set("group", group)
		c.Next()
	}
}

// GroupFromContext returns the group placed by GroupMiddleware.
func GroupFromContext(c *gin.Context) *models.Group {
	return c.MustGet("group").(*models.Group)
}

// UserIDFromContext returns the user id placed by AuthMiddleware.
func UserIDFromContext(c *gin.Context) uuid.UUID {
	return c.MustGet("user_id").(uuid.UUID)
}
