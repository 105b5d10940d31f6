package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubworks/ledger_service/internal/apperrors"
	"github.com/clubworks/ledger_service/internal/core/services"
	"github.com/clubworks/ledger_service/internal/middleware"
)

// respondServiceError maps service errors onto HTTP statuses. Rule
// violations and bad input map to 400, missing resources to 404,
// conflicting state to 409, everything else to 500.
func respondServiceError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrJournalMinEntries),
		errors.Is(err, services.ErrUnknownAccount),
		errors.Is(err, services.ErrUnbalancedJournal),
		errors.Is(err, services.ErrGuardrailViolation),
		errors.Is(err, services.ErrMissingMemberContext):
		logger.Warn("Request rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

// bindJSONOrAbort binds the request body, writing the 400 response itself on failure.
func bindJSONOrAbort(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Warn("Failed to bind JSON request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return false
	}
	return true
}

// bindQueryOrAbort binds query parameters, writing the 400 response itself on failure.
func bindQueryOrAbort(c *gin.Context, params any) bool {
	if err := c.ShouldBindQuery(params); err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Warn("Failed to bind query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return false
	}
	return true
}
