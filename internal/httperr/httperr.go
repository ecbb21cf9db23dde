package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Map writes a BusinessError with the status its kind implies, falling back
// to 500 for anything unclassified.
func Map(c *gin.Context, err error, message string) {
	kind, ok := KindOf(err)
	if !ok {
		Internal(c, "internal_error", message)
		return
	}

	switch kind {
	case KindValidation:
		BadRequest(c, err.Error(), message)
	case KindNotFound:
		NotFound(c, err.Error(), message)
	case KindForbidden:
		Forbidden(c, err.Error(), message)
	case KindConflict:
		Conflict(c, err.Error(), message)
	case KindConfiguration:
		Internal(c, err.Error(), message)
	case KindUpstream:
		Write(c, http.StatusBadGateway, err.Error(), message)
	default:
		Internal(c, err.Error(), message)
	}
}
