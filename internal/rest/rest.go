package rest

import (
	"errors"
	"net/http"
	"strings"

	"shirtshop/domain"

	"github.com/labstack/echo/v4"
)

type ResponseError struct {
	Message string `json:"message"`
}

// errStatus maps service errors onto HTTP status codes.
func errStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c echo.Context, err error) error {
	return c.JSON(errStatus(err), ResponseError{Message: err.Error()})
}

func callerID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}

func isAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return strings.EqualFold(role, "ADMIN")
}

// parseStatuses reads a comma-separated status filter from the query string.
func parseStatuses(raw string) []domain.OrderStatus {
	if raw == "" {
		return nil
	}

	var out []domain.OrderStatus
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, domain.OrderStatus(strings.ToUpper(part)))
	}
	return out
}
