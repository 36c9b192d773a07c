package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openjam/jam-backend/internal/services"
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

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// statusForCode maps workflow rejection codes onto HTTP statuses. Anything
// unmapped is a client-side precondition problem.
func statusForCode(code string) int {
	switch code {
	case services.CodeTaskProgressNotFound,
		services.CodeChallengeAnswerNotFound,
		services.CodeChallengeNotFound,
		services.CodeClueNotFound:
		return http.StatusNotFound
	case services.CodeLockUnavailable:
		return http.StatusServiceUnavailable
	case services.CodeClueAlreadyOpened,
		services.CodeChallengeNotInProgress,
		services.CodeTaskAlreadyCompleted,
		services.CodeChallengeAlreadyStarted:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
