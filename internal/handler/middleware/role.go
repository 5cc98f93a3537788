package middleware

import (
	"github.com/gin-gonic/gin"

	jwtpkg "pickupgames/signup/pkg/jwt"
	"pickupgames/signup/pkg/response"
)

// RequireOrganizer admits organizer sessions only. Must be used after SessionAuth.
func RequireOrganizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			response.Unauthorized(c, "missing authentication")
			c.Abort()
			return
		}
		if claims.Role != jwtpkg.RoleOrganizer {
			response.Forbidden(c, "organizer access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePlayer admits player sessions bound to the game named by the codeParam path parameter.
// Must be used after SessionAuth.
func RequirePlayer(codeParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			response.Unauthorized(c, "missing authentication")
			c.Abort()
			return
		}
		if claims.Role != jwtpkg.RolePlayer {
			response.Forbidden(c, "player session required")
			c.Abort()
			return
		}
		if claims.GameCode != c.Param(codeParam) {
			response.Forbidden(c, "session belongs to another game")
			c.Abort()
			return
		}
		c.Next()
	}
}
