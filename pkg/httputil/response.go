package httputil

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agendly/booking-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Fields  interface{} `json:"fields,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithError translates a core error kind into an HTTP status. The
// core itself knows nothing about HTTP; this is the only place the mapping
// lives.
func RespondWithError(c *gin.Context, err error) {
	status := StatusForError(err)
	if status == 0 {
		status = http.StatusInternalServerError
	}

	message := "internal server error"
	var fields interface{}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		message = appErr.Message
		if len(appErr.Fields) > 0 {
			fields = appErr.Fields
		}
	}

	c.JSON(status, Response{
		Status:  "error",
		Message: message,
		Fields:  fields,
	})
}

// StatusForError maps an error kind to an HTTP status code, or 0 when the
// error carries no kind.
func StatusForError(err error) int {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		return 0
	}

	switch appErr.Code {
	case errors.ErrValidation:
		return http.StatusBadRequest
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrConflict:
		return http.StatusConflict
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
