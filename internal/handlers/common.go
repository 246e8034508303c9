package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/edvora/exam-service/internal/errors"
	"github.com/edvora/exam-service/internal/services"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// HealthCheck handles GET /health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "exam-service"})
}

// handleServiceError maps service-layer errors onto HTTP responses.
func handleServiceError(c *gin.Context, logger *slog.Logger, err error) {
	var permErr *services.PermissionError
	var ineligible *services.IneligibleError
	var validationErrs apperrors.ValidationErrors

	switch {
	case errors.Is(err, services.ErrExamNotFound),
		errors.Is(err, services.ErrAttemptNotFound),
		errors.Is(err, services.ErrQuestionNotInExam):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})

	case errors.As(err, &ineligible):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "not eligible for this exam",
			Code:    string(ineligible.Verdict.Reason),
			Details: ineligible.Verdict,
		})

	case errors.As(err, &permErr):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "access denied"})

	case errors.Is(err, services.ErrAttemptNotActive),
		errors.Is(err, services.ErrAttemptAlreadySubmitted):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})

	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "validation failed",
			Details: validationErrs,
		})

	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrInvalidAnswerPayload):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})

	default:
		logger.Error("Unhandled service error",
			"path", c.Request.URL.Path,
			"error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
	}
}
