package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/auth"
	"storefront-backend/internal/config"
)

// CtxUsernameKey is the gin context key holding the authenticated operator
// username set by RequireAuth.
const CtxUsernameKey = "auth_username"

// Recovery is a middleware that recovers from panics and returns a 500 Internal Server Error
// instead of crashing the server.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("Panic recovered",
					slog.Any("error", err),
					slog.String("path", c.Request.URL.Path),
					slog.String("method", c.Request.Method),
				)
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal Server Error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RequireAuth guards admin-only routes. A request without a valid session
// cookie is redirected to the login form; the handler is never invoked.
// On success the authenticated username is stored in the request context.
func RequireAuth(conf *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookieName)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		claims, err := auth.ParseSessionToken(conf.Session.Secret, token)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(CtxUsernameKey, claims.Username)
		c.Next()
	}
}

// MaxBodySize caps the request body before any handler reads it, so an
// oversized upload is rejected before processing.
func MaxBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
