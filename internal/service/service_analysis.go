package service

import (
	"context"
	"fmt"

	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/internal/store"
	"github.com/aimplatform/reviewintel/models"
)

// analysisService is the concrete implementation of AnalysisService.
type analysisService struct {
	analysisRepository store.AnalysisRepository
	logger             *logger.Logger
}

// NewAnalysisService constructs an AnalysisService over the given
// repository.
func NewAnalysisService(analysisRepository store.AnalysisRepository, logger *logger.Logger) AnalysisService {
	return &analysisService{
		analysisRepository: analysisRepository,
		logger:             logger,
	}
}

func (a *analysisService) StartJob(ctx context.Context, userID int64, analysisType, parameters string) (models.Analysis, error) {
	log := logger.FromContext(ctx)

	if userID == 0 || analysisType == "" {
		log.Error().Int64("user_id", userID).Str("analysis_type", analysisType).Msg("invalid job data provided")
		return models.Analysis{}, ErrInvalidDataProvided
	}

	job, err := a.analysisRepository.StartJob(ctx, userID, analysisType, parameters)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("starting job ended with error")
		return models.Analysis{}, fmt.Errorf("starting job ended with error: %w", err)
	}

	return job, nil
}

func (a *analysisService) GetJob(ctx context.Context, id int64) (models.Analysis, error) {
	if id == 0 {
		return models.Analysis{}, ErrInvalidDataProvided
	}

	return a.analysisRepository.GetJob(ctx, id)
}

func (a *analysisService) ListJobs(ctx context.Context, filter store.AnalysisFilter) ([]models.Analysis, error) {
	return a.analysisRepository.ListJobs(ctx, filter)
}

// TransitionJob moves a job to its next lifecycle state. The repository
// enforces the transition table; this layer only screens obvious garbage.
func (a *analysisService) TransitionJob(ctx context.Context, id int64, next models.AnalysisStatus, result *string, executionTime *float64) (models.Analysis, error) {
	log := logger.FromContext(ctx)

	if id == 0 {
		return models.Analysis{}, ErrInvalidDataProvided
	}

	job, err := a.analysisRepository.TransitionJob(ctx, id, next, result, executionTime)
	if err != nil {
		log.Err(err).Int64("job_id", id).Str("next", string(next)).Msg("job transition ended with error")
		return models.Analysis{}, fmt.Errorf("job transition ended with error: %w", err)
	}

	return job, nil
}
