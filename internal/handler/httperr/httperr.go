// Package httperr is the JSON error envelope shared by handlers and middleware.
package httperr

import (
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

// Response is written as {"error": {"message": ...}, "detail": ...}.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func New(status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	return resp
}

// AbortWithError records err on the context for the request logger and sends msg to the client.
// The client never sees err itself.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errors.New(msg)
	}
	resp := New(status, msg, detail)

	_ = c.Error(&gin.Error{Err: err, Type: gin.ErrorTypePublic, Meta: resp})
	c.AbortWithStatusJSON(status, resp)
}
