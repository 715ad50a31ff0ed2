package http

import (
	"errors"
	"net/http"

	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
	// ClaimedBy names the courier holding the order on claim conflicts,
	// so the app can show who beat the caller to it.
	ClaimedBy string `json:"claimedBy,omitempty"`
}

// respondError translates application errors into HTTP responses.
// Upstream failures are deliberately absent: those never propagate out
// of the command handlers.
func respondError(c echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var conflictErr *errs.ConflictError
	if errors.As(err, &conflictErr) {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error:     err.Error(),
			ClaimedBy: conflictErr.OwnerName,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
