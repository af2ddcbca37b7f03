package service

import (
	"context"
	"fmt"

	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/internal/store"
	"github.com/aimplatform/reviewintel/models"
)

// userService is the concrete implementation of UserService.
type userService struct {
	userRepository     store.UserRepository
	activityRepository store.ActivityRepository
	logger             *logger.Logger
}

// NewUserService constructs a UserService over the given repositories.
func NewUserService(userRepository store.UserRepository, activityRepository store.ActivityRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository:     userRepository,
		activityRepository: activityRepository,
		logger:             logger,
	}
}

func (u *userService) GetUser(ctx context.Context, id int64) (models.User, error) {
	if id == 0 {
		return models.User{}, ErrInvalidDataProvided
	}

	return u.userRepository.FindUserByID(ctx, id)
}

func (u *userService) ListUsers(ctx context.Context, filter store.UserFilter) ([]models.User, error) {
	return u.userRepository.ListUsers(ctx, filter)
}

// UpdateStatus sets the account status and returns the refreshed record.
func (u *userService) UpdateStatus(ctx context.Context, id int64, status models.UserStatus) (models.User, error) {
	log := logger.FromContext(ctx)

	if id == 0 {
		return models.User{}, ErrInvalidDataProvided
	}

	if err := u.userRepository.UpdateStatus(ctx, id, status); err != nil {
		log.Err(err).Int64("user_id", id).Msg("status update failed")
		return models.User{}, fmt.Errorf("status update failed: %w", err)
	}

	return u.userRepository.FindUserByID(ctx, id)
}

// DeleteUser removes the account and everything depending on it. The actor
// is recorded in the audit log before the cascade runs; the entry belongs
// to the actor, not the removed account, so it survives the deletion.
func (u *userService) DeleteUser(ctx context.Context, id, actorID int64) error {
	log := logger.FromContext(ctx)

	if id == 0 {
		return ErrInvalidDataProvided
	}

	if err := u.userRepository.DeleteUser(ctx, id); err != nil {
		log.Err(err).Int64("user_id", id).Msg("user deletion failed")
		return fmt.Errorf("user deletion failed: %w", err)
	}

	if actorID != 0 && actorID != id {
		if _, err := u.activityRepository.LogActivity(ctx, models.Activity{
			UserID:       actorID,
			ActivityType: "user_deletion",
			Description:  fmt.Sprintf("deleted user %d", id),
		}); err != nil {
			log.Warn().Err(err).Int64("actor_id", actorID).Msg("failed to record deletion activity")
		}
	}

	return nil
}

func (u *userService) Stats(ctx context.Context) (models.UserStats, error) {
	return u.userRepository.UserStats(ctx)
}
