package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jayelcee/internhq/model"
	"github.com/jayelcee/internhq/security"
	"github.com/jayelcee/internhq/web/common"
)

// SessionCookie is accepted as a fallback when no Authorization header is
// present, so browser sessions and API clients share the same middleware.
const SessionCookie = "internhq.SessionCookie"

const identityKey = "identity"

// Authentication checks for a valid Bearer token (header or cookie) and
// stores the identity claims in the request context.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// Try to get from cookie
			cookie, err := c.Cookie(SessionCookie)
			if err != nil {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}

			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}

			tokenStr = parts[1]
		}

		claims, err := security.ParseIdentityToken(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		c.Set(identityKey, claims)
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. Must run after Authentication.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentIdentity(c)
		if claims == nil || claims.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse("admin access required"))
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the claims Authentication stored, or nil on an
// unauthenticated request.
func CurrentIdentity(c *gin.Context) *security.IdentityClaims {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*security.IdentityClaims)
	if !ok {
		return nil
	}
	return claims
}
