package handlers

import (
	"log/slog"

	"github.com/edvora/exam-service/internal/services"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	examHandler    *ExamHandler
	attemptHandler *AttemptHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger *slog.Logger) *HandlerManager {
	return &HandlerManager{
		examHandler:    NewExamHandler(serviceManager.Eligibility(), logger),
		attemptHandler: NewAttemptHandler(serviceManager.Attempt(), serviceManager.Result(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		exams := v1.Group("/exams")
		{
			exams.GET("/:id/eligibility", hm.examHandler.CheckEligibility)
			exams.POST("/:id/attempts", hm.attemptHandler.StartAttempt)
		}

		attempts := v1.Group("/attempts")
		{
			attempts.GET("/:id", hm.attemptHandler.GetAttempt)
			attempts.PUT("/:id/responses", hm.attemptHandler.SaveResponse)
			attempts.POST("/:id/submit", hm.attemptHandler.SubmitAttempt)
			attempts.GET("/:id/result", hm.attemptHandler.GetResult)
		}
	}
}
