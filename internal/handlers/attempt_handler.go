package handlers

import (
	"log/slog"
	"net/http"

	"github.com/edvora/exam-service/internal/models"
	"github.com/edvora/exam-service/internal/services"
	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	attemptService services.AttemptService
	resultService  services.ResultService
	logger         *slog.Logger
}

func NewAttemptHandler(attemptService services.AttemptService, resultService services.ResultService, logger *slog.Logger) *AttemptHandler {
	return &AttemptHandler{
		attemptService: attemptService,
		resultService:  resultService,
		logger:         logger,
	}
}

// StartAttempt handles POST /exams/:id/attempts. Starting is idempotent:
// an in_progress attempt for the pair is resumed, not duplicated.
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	examID, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	studentID, ok := StudentIDFromRequest(c)
	if !ok {
		return
	}

	view, err := h.attemptService.Start(c.Request.Context(), examID, studentID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "attempt started",
		Data:    view,
	})
}

// GetAttempt handles GET /attempts/:id, the resume path. Remaining time
// is reconstructed from the wall clock; an attempt that ran out while
// the client was away comes back already submitted.
func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	attemptID, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	studentID, ok := StudentIDFromRequest(c)
	if !ok {
		return
	}

	view, err := h.attemptService.Resume(c.Request.Context(), attemptID, studentID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: view})
}

// SaveResponse handles PUT /attempts/:id/responses.
func (h *AttemptHandler) SaveResponse(c *gin.Context) {
	attemptID, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	studentID, ok := StudentIDFromRequest(c)
	if !ok {
		return
	}

	var req services.SaveResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	if err := h.attemptService.SaveResponse(c.Request.Context(), attemptID, studentID, &req); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "response saved"})
}

// SubmitAttempt handles POST /attempts/:id/submit. A repeated submit is
// a no-op that returns the already-submitted attempt.
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	attemptID, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	studentID, ok := StudentIDFromRequest(c)
	if !ok {
		return
	}

	view, err := h.attemptService.Submit(c.Request.Context(), attemptID, studentID, models.SubmitReasonManual)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "attempt submitted",
		Data:    view,
	})
}

// GetResult handles GET /attempts/:id/result. A still-processing result
// answers 202 so clients can poll; a withheld one answers 403 with the
// release time when scheduled.
func (h *AttemptHandler) GetResult(c *gin.Context) {
	attemptID, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	studentID, ok := StudentIDFromRequest(c)
	if !ok {
		return
	}

	view, err := h.resultService.Fetch(c.Request.Context(), attemptID, studentID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	switch view.Status {
	case services.ResultProcessing:
		c.JSON(http.StatusAccepted, SuccessResponse{
			Message: "result pending",
			Data:    view,
		})
	case services.ResultWithheld:
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "result not visible yet",
			Details: view,
		})
	default:
		c.JSON(http.StatusOK, SuccessResponse{Data: view})
	}
}
