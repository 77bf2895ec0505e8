package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the one wire-level contract every mutation and query returns.
// Callers branch only on `success`; `code` is the stable machine-readable
// error kind and `details` carries structured extras (field errors, retry
// hints).
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{
		Success: true,
		Data:    data,
	})
}

func Error(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, Envelope{
		Success: false,
		Error:   message,
		Code:    code,
		Details: details,
	})
}
