// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"farefloor/internal/http/middleware"
	"farefloor/internal/maps"
	"farefloor/internal/modules/pricing"
	"farefloor/internal/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

type invalidInputResponse struct {
	Error string  `json:"error"`
	Field string  `json:"field"`
	Value float64 `json:"value"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writePricingError(c *gin.Context, err error) {
	var invalid *pricing.InvalidInputError
	switch {
	case errors.Is(err, pricing.ErrInvalidSchedule):
		// A stored schedule failed validation; the request is not at fault.
		writeError(c, http.StatusInternalServerError, "internal error")
	case errors.As(err, &invalid):
		writeJSON(c, http.StatusBadRequest, invalidInputResponse{
			Error: err.Error(),
			Field: invalid.Field,
			Value: invalid.Value,
		})
	case errors.Is(err, pricing.ErrScheduleNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, maps.ErrNoRoute):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// tenantFor prefers the authenticated tenant claim over the one named in the body.
func tenantFor(c *gin.Context, requested string) types.ID {
	if t := middleware.CallerTenant(c); t != "" {
		return types.ID(t)
	}
	return types.ID(requested)
}
