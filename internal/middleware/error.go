package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/agendly/booking-api/pkg/httputil"
)

// ErrorHandler logs errors attached to the gin context and renders the last
// one. Handlers that respond through httputil never reach this path; it
// backstops middleware-level failures.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("request error")
		}

		lastErr := c.Errors.Last()
		status := httputil.StatusForError(lastErr.Err)
		if status == 0 {
			status = http.StatusInternalServerError
		}

		abort(c, status, lastErr.Error())
	}
}
