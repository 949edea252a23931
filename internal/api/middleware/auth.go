package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/api/authz"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// RequireAuth validates the bearer token in the Authorization header and
// stores the resulting principal in the request context. Requests without a
// valid token are rejected.
func RequireAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principalFromHeader(c, authService)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing authorization header"})
			c.Abort()
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// OptionalAuth resolves the principal when a token is present and falls back
// to the anonymous reader otherwise, so public-read endpoints can share one
// handler path.
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := principalFromHeader(c, authService); ok {
			c.Set(principalKey, p)
		} else {
			c.Set(principalKey, authz.Anonymous())
		}
		c.Next()
	}
}

func principalFromHeader(c *gin.Context, authService service.AuthService) (authz.Principal, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return authz.Anonymous(), false
	}

	// format: "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return authz.Anonymous(), false
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		return authz.Anonymous(), false
	}
	return authz.Principal{
		ID:        claims.UserID,
		Username:  claims.Username,
		Role:      claims.Role,
		Superuser: claims.Superuser,
	}, true
}

// Principal extracts the acting principal set by RequireAuth/OptionalAuth.
// Routes without either middleware read as anonymous.
func Principal(c *gin.Context) authz.Principal {
	if v, exists := c.Get(principalKey); exists {
		if p, ok := v.(authz.Principal); ok {
			return p
		}
	}
	return authz.Anonymous()
}
