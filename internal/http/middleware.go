package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campus-server/internal/domain"
	"campus-server/internal/repository"
)

const ctxUserKey = "currentUser"

// authRequired resolves the bearer token to a live account and attaches
// the sanitized identity to the request context. The token itself carries
// no role; the role comes from the store on every request.
func (h *Handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token required."})
			return
		}

		claims, err := h.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token."})
			return
		}

		user, err := h.accounts.UserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Account no longer exists."})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// requireRole rejects callers whose resolved role does not match. It must
// be composed after authRequired.
func (h *Handler) requireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token required."})
			return
		}
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied."})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	value, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, ok := value.(*domain.User)
	if !ok {
		return nil
	}
	return user
}
