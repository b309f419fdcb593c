package middleware

import (
	"net/http"
	"strings"

	"cmsadmin/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
	tokenKey    = "token"
)

// TokenParser verifies a bearer token. services.AuthService satisfies it.
type TokenParser interface {
	Parse(token string) (services.Claims, error)
}

// Auth requires a valid bearer token and stores the operator id and role on
// the context.
func Auth(p TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "missing bearer token",
				"request_id": GetRequestID(c),
			})
			return
		}
		claims, err := p.Parse(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "invalid or expired token",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Set(userIDKey, claims.UserID)
		c.Set(userRoleKey, claims.Role)
		c.Set(tokenKey, strings.TrimSpace(token))
		c.Next()
	}
}

// UserID returns the authenticated operator id, or 0.
func UserID(c *gin.Context) int64 { return c.GetInt64(userIDKey) }

// UserRole returns the authenticated operator role.
func UserRole(c *gin.Context) string { return c.GetString(userRoleKey) }
