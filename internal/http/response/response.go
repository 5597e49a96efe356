package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/pathways-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError maps a service error onto the envelope, using the apierr
// status/code when the error carries one and 500 otherwise.
func RespondAPIError(c *gin.Context, err error, fallbackCode string) {
	RespondError(c, apierr.Status(err), apierr.Code(err, fallbackCode), err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
