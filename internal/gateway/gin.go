package gateway

import (
	"encoding/json"
	"io"

	"talenthub/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Run is the gin adapter around Execute: reads the raw body, takes the
// opaque user id the auth middleware extracted, and writes the envelope.
func Run[T any](c *gin.Context, g *Gateway, opts Options, dest any, handler Handler[T]) {
	var raw json.RawMessage
	if dest != nil && c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err == nil {
			raw = body
		}
	}

	userID := c.GetString("user_id")

	res := Execute(c.Request.Context(), g, opts, userID, raw, dest, handler)
	if res.Success {
		response.Success(c, res.HTTPStatus(), res.Data)
		return
	}
	response.Error(c, res.HTTPStatus(), res.Code, res.Error, res.Details)
}
