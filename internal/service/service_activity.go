package service

import (
	"context"
	"fmt"

	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/internal/store"
	"github.com/aimplatform/reviewintel/models"
)

// activityService is the concrete implementation of ActivityService.
type activityService struct {
	activityRepository store.ActivityRepository
	logger             *logger.Logger
}

// NewActivityService constructs an ActivityService over the given
// repository.
func NewActivityService(activityRepository store.ActivityRepository, logger *logger.Logger) ActivityService {
	return &activityService{
		activityRepository: activityRepository,
		logger:             logger,
	}
}

func (a *activityService) LogActivity(ctx context.Context, activity models.Activity) (models.Activity, error) {
	log := logger.FromContext(ctx)

	if activity.UserID == 0 || activity.ActivityType == "" {
		log.Error().Int64("user_id", activity.UserID).Msg("invalid activity data provided")
		return models.Activity{}, ErrInvalidDataProvided
	}

	logged, err := a.activityRepository.LogActivity(ctx, activity)
	if err != nil {
		log.Err(err).Int64("user_id", activity.UserID).Msg("activity logging ended with error")
		return models.Activity{}, fmt.Errorf("activity logging ended with error: %w", err)
	}

	return logged, nil
}

func (a *activityService) ListByUser(ctx context.Context, userID int64) ([]models.Activity, error) {
	if userID == 0 {
		return nil, ErrInvalidDataProvided
	}

	return a.activityRepository.ListByUser(ctx, userID)
}
