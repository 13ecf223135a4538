package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorEnvelope struct {
	Error string `json:"error"`
}

// RespondError writes the flat error shape the Advisorly frontend expects.
func RespondError(c *gin.Context, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: msg})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
