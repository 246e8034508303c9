package handlers

import (
	"log/slog"
	"net/http"

	"github.com/edvora/exam-service/internal/services"
	"github.com/gin-gonic/gin"
)

type ExamHandler struct {
	eligibilityService services.EligibilityService
	logger             *slog.Logger
}

func NewExamHandler(eligibilityService services.EligibilityService, logger *slog.Logger) *ExamHandler {
	return &ExamHandler{
		eligibilityService: eligibilityService,
		logger:             logger,
	}
}

// CheckEligibility handles GET /exams/:id/eligibility. The verdict is
// advisory; StartAttempt re-evaluates before creating anything.
func (h *ExamHandler) CheckEligibility(c *gin.Context) {
	examID, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	studentID, ok := StudentIDFromRequest(c)
	if !ok {
		return
	}

	verdict, err := h.eligibilityService.Evaluate(c.Request.Context(), studentID, examID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: verdict})
}
