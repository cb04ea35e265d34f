package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/agendly/booking-api/pkg/httputil"
)

// abort stops the chain with the same response envelope handlers use, so
// middleware failures and handler failures look identical on the wire.
func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, httputil.Response{
		Status:  "error",
		Message: message,
	})
}
