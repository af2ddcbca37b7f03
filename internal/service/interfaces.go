package service

import (
	"context"

	"github.com/aimplatform/reviewintel/internal/store"
	"github.com/aimplatform/reviewintel/models"
)

// AuthService owns account registration, credential verification and the
// JWT token lifecycle.
type AuthService interface {
	// Register creates an account from a plain-text password. The stored
	// credential is a bcrypt hash.
	Register(ctx context.Context, user models.User, password string) (models.User, error)

	// Login verifies credentials against either credential format (bcrypt
	// or the legacy hex digest), refuses inactive accounts, touches
	// last_login and records a login activity.
	Login(ctx context.Context, username, password, ipAddress string) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService owns account administration.
type UserService interface {
	GetUser(ctx context.Context, id int64) (models.User, error)
	ListUsers(ctx context.Context, filter store.UserFilter) ([]models.User, error)
	UpdateStatus(ctx context.Context, id int64, status models.UserStatus) (models.User, error)

	// DeleteUser removes an account together with its dependent records.
	DeleteUser(ctx context.Context, id, actorID int64) error

	Stats(ctx context.Context) (models.UserStats, error)
}

// ReviewService owns review ingest and the application of detection
// engine verdicts.
type ReviewService interface {
	IngestReview(ctx context.Context, review models.Review) (models.Review, error)
	GetReview(ctx context.Context, id int64) (models.Review, error)
	ListReviews(ctx context.Context, filter store.ReviewFilter) ([]models.Review, error)
	RecordAnalysisResult(ctx context.Context, reviewID int64, result models.AnalysisResult) (models.Review, error)
}

// AnalysisService owns the analysis job lifecycle.
type AnalysisService interface {
	StartJob(ctx context.Context, userID int64, analysisType, parameters string) (models.Analysis, error)
	GetJob(ctx context.Context, id int64) (models.Analysis, error)
	ListJobs(ctx context.Context, filter store.AnalysisFilter) ([]models.Analysis, error)
	TransitionJob(ctx context.Context, id int64, next models.AnalysisStatus, result *string, executionTime *float64) (models.Analysis, error)
}

// ActivityService owns the audit log.
type ActivityService interface {
	LogActivity(ctx context.Context, activity models.Activity) (models.Activity, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Activity, error)
}
