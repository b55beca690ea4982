package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

const (
	codeRateLimited = "rate_limited"
	codeTimeout     = "timeout"
)

type errorDTO struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorBody(code, message string) errorDTO {
	var e errorDTO
	e.Error.Code = code
	e.Error.Message = message

	return e
}

// StatusOf maps a classified failure to its HTTP status code.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrForbidden), errors.Is(err, core.ErrNotLoanOwner):
		return http.StatusForbidden
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrDuplicateActiveLoan), errors.Is(err, core.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, core.ErrNotOverdue), errors.Is(err, core.ErrExtensionLimitReached):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrStoreUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorFromErr(err error) errorDTO {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errorBody(codeTimeout, "The request took too long. Please try again.")
	}

	return errorBody(core.FailureCode(err), core.FailureMessage(err))
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(StatusOf(err), errorFromErr(err))
}
