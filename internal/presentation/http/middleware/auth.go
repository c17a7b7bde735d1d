package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/servicecenter-api/internal/domain/enum"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/response"
	"github.com/sangkips/servicecenter-api/pkg/utils"
)

// Context keys set by AuthMiddleware
const (
	ContextStaffID    = "staff_id"
	ContextStaffEmail = "staff_email"
	ContextStaffRole  = "staff_role"
)

// TokenCookie is the cookie the dashboard stores the access token in
const TokenCookie = "token"

// AuthMiddleware creates a JWT authentication middleware. The token is read
// from the Authorization header, falling back to the token cookie.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		role, err := enum.ParseStaffRole(claims.Role)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextStaffID, claims.StaffID)
		c.Set(ContextStaffEmail, claims.Email)
		c.Set(ContextStaffRole, role)

		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// RequireRole creates a middleware that admits only the listed roles
func RequireRole(roles ...enum.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextStaffRole)
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}
		staffRole, ok := value.(enum.StaffRole)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		for _, role := range roles {
			if staffRole == role {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}
