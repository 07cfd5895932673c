package httputil

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform body of every API response.
type Envelope struct {
	Succeeded bool   `json:"succeeded"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
}

// NewEnvelope returns the default envelope: not succeeded, code 404, empty message and data.
func NewEnvelope() *Envelope {
	return &Envelope{
		Succeeded: false,
		Code:      404,
		Message:   "",
		Data:      "",
	}
}

// Succeed marks the envelope as successful and sets all of its fields.
func (e *Envelope) Succeed(code int, message string, data any) *Envelope {
	e.Succeeded = true
	e.Code = code
	e.Message = message
	e.Data = data
	return e
}

// Fail marks the envelope as failed and sets all of its fields. Data is reset to "".
func (e *Envelope) Fail(code int, message string) *Envelope {
	e.Succeeded = false
	e.Code = code
	e.Message = message
	e.Data = ""
	return e
}

// Respond writes the envelope as JSON using its Code as the HTTP status.
func (e *Envelope) Respond(c *gin.Context) {
	c.JSON(e.Code, e)
}
