package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"shirtshop/domain"
	"shirtshop/pkg/logger"

	jsonres "shirtshop/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo fallback for errors that escape the handlers. It
// translates service errors to their HTTP status so an unhandled error still
// produces a sensible response.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	message := "Internal server error"

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Code
		code = http.StatusText(status)
		message = fmt.Sprintf("%v", httpErr.Message)
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
		code = "BAD_REQUEST"
		message = err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		code = "NOT_FOUND"
		message = err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
		code = "FORBIDDEN"
		message = err.Error()
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
		code = "CONFLICT"
		message = err.Error()
	case errors.Is(err, domain.ErrUpstream):
		status = http.StatusBadGateway
		code = "UPSTREAM_ERROR"
		message = err.Error()
	default:
		logger.Error("Unhandled error", err, "path", c.Path())
	}

	if err := c.JSON(status, jsonres.Error(code, message, nil)); err != nil {
		logger.Error("Failed to write error response", err)
	}
}
