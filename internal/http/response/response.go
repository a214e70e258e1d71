package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Reason  string `json:"reason,omitempty"`
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

// RespondDomainError maps an aggregate error code onto an HTTP status. Internal
// details are not echoed back.
func RespondDomainError(c *gin.Context, err error) {
	code := domainagg.CodeOf(err)
	status := StatusFor(code)
	msg := "internal error"
	var derr *domainagg.Error
	if errors.As(err, &derr) && status != http.StatusInternalServerError {
		msg = derr.Message
		if msg == "" {
			msg = string(code)
		}
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    string(code),
			Reason:  domainagg.ReasonOf(err),
		},
	})
}

func StatusFor(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeValidation:
		return http.StatusBadRequest
	case domainagg.CodeForbidden:
		return http.StatusForbidden
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeConflict, domainagg.CodePreconditionFailed:
		return http.StatusConflict
	case domainagg.CodeIneligible, domainagg.CodeInvariantViolation:
		return http.StatusUnprocessableEntity
	case domainagg.CodeUnavailable, domainagg.CodeRetryable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
