package services

import (
	"log/slog"

	"github.com/edvora/exam-service/internal/cache"
	"github.com/edvora/exam-service/internal/events"
	"github.com/edvora/exam-service/internal/repositories"
	"github.com/edvora/exam-service/internal/utils"
)

type serviceManager struct {
	eligibility EligibilityService
	attempt     AttemptService
	result      ResultService
}

func NewServiceManager(
	repo repositories.Repository,
	publisher events.EventPublisher,
	cacheService cache.CacheService,
	logger *slog.Logger,
	validator *utils.Validator,
) ServiceManager {
	eligibility := NewEligibilityService(repo, logger)
	attempt := NewAttemptService(repo, eligibility, publisher, cacheService, logger, validator)
	result := NewResultService(repo, attempt, logger)

	return &serviceManager{
		eligibility: eligibility,
		attempt:     attempt,
		result:      result,
	}
}

func (m *serviceManager) Eligibility() EligibilityService { return m.eligibility }
func (m *serviceManager) Attempt() AttemptService         { return m.attempt }
func (m *serviceManager) Result() ResultService           { return m.result }
