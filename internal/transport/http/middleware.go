package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminKeyMiddleware guards destructive endpoints with a shared key supplied
// in the X-Admin-Key header. An empty configured key disables the check,
// preserving the historical open behavior.
func AdminKeyMiddleware(key string, logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}

		provided := c.GetHeader("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			logger.Warn().Str("path", c.Request.URL.Path).Msg("rejected admin request")
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid admin key"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// LoggerMiddleware creates a middleware that logs HTTP requests.
func LoggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("http request")
	}
}
