package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	jwtpkg "pickupgames/signup/pkg/jwt"
	"pickupgames/signup/pkg/response"
)

const (
	ContextKeySessionClaims = "session_claims"
	ContextKeySessionToken  = "session_token"
)

// SessionValidator checks a bearer token, including revocation.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*jwtpkg.Claims, error)
}

func SessionAuth(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization format")
			c.Abort()
			return
		}

		claims, err := sessions.Validate(c.Request.Context(), parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired session")
			c.Abort()
			return
		}

		c.Set(ContextKeySessionClaims, claims)
		c.Set(ContextKeySessionToken, parts[1])
		c.Next()
	}
}

// Claims returns the session claims stored by SessionAuth.
func Claims(c *gin.Context) (*jwtpkg.Claims, bool) {
	v, exists := c.Get(ContextKeySessionClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwtpkg.Claims)
	return claims, ok
}
