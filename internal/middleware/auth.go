package middleware

import (
	"errors"
	"net/http"
	"strings"

	"eatwise/internal/auth"

	"github.com/gin-gonic/gin"
)

// EmailKey is the gin context key holding the authenticated user's email.
const EmailKey = "email"

// Auth requires a valid JWT, read from "Authorization: Bearer" or, for
// websocket upgrades that cannot set headers, the "token" query parameter.
func Auth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, msg := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
			return
		}

		claims, err := issuer.Validate(tokenString)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
			return
		}
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// OptionalAuth sets EmailKey when a valid token is present and never aborts.
func OptionalAuth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, _ := bearerToken(c); tokenString != "" {
			if claims, err := issuer.Validate(tokenString); err == nil {
				c.Set(EmailKey, claims.Email)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if q := c.Query("token"); q != "" {
			return q, ""
		}
		return "", "Authorization header required"
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", "Invalid authorization header format"
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")), "Invalid token"
}
