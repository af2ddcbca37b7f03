package service

import (
	"github.com/aimplatform/reviewintel/internal/config"
	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/internal/store"
)

type Services struct {
	AuthService     AuthService
	UserService     UserService
	ReviewService   ReviewService
	AnalysisService AnalysisService
	ActivityService ActivityService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, storages.ActivityRepository, cfg.App, logger),
		UserService:     NewUserService(storages.UserRepository, storages.ActivityRepository, logger),
		ReviewService:   NewReviewService(storages.ReviewRepository, logger),
		AnalysisService: NewAnalysisService(storages.AnalysisRepository, logger),
		ActivityService: NewActivityService(storages.ActivityRepository, logger),
	}
}
