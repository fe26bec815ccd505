package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"equipment-reservation/internal/domain/admin"
	"equipment-reservation/internal/handler/httperr"
	"equipment-reservation/internal/pkg/cookie"
	"equipment-reservation/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxAdminIDKey   = "admin_id"
	ctxAdminRoleKey = "admin_role"
)

var errUnauthorized = httpError("unauthorized")

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Access token required", nil)
			return
		}

		adminID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxAdminIDKey, adminID)
		c.Set(ctxAdminRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"admin_id": adminID.String(),
			"role":     string(role),
		})
		c.Next()
	}
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole admin.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetAdminRole(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errUnauthorized, "Internal server error", nil)
			return
		}

		if !role.AtLeast(minRole) {
			httperr.AbortWithError(c, http.StatusForbidden, httpError("forbidden"), "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetAdminID(c *gin.Context) (uuid.UUID, bool) {
	adminID, exists := c.Get(ctxAdminIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := adminID.(uuid.UUID)
	return id, ok
}

func GetAdminRole(c *gin.Context) (admin.Role, bool) {
	adminRole, exists := c.Get(ctxAdminRoleKey)
	if !exists {
		return "", false
	}

	role, ok := adminRole.(admin.Role)
	return role, ok
}

type httpError string

func (e httpError) Error() string { return string(e) }
