// Package httperr defines the error envelope every handler returns:
// {"error":{"message":...},"detail":...}. Detail carries structured
// rejection info (entity, attempted transition, current status) when the
// usecase provides it.
package httperr

import (
	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Message string `json:"message"`
}

type Response struct {
	Status int       `json:"-"`
	Error  ErrorBody `json:"error"`
	Detail any       `json:"detail,omitempty"`
}

// AbortWithError writes the envelope and records the original error on the
// gin context so the logging middleware can report the cause chain.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{
		Status: status,
		Error:  ErrorBody{Message: msg},
		Detail: detail,
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
