package store

import (
	"context"

	"github.com/aimplatform/reviewintel/models"
)

// UserFilter narrows ListUsers. Zero values mean "any".
type UserFilter struct {
	Role   models.Role
	Status models.UserStatus
}

// ReviewFilter narrows ListReviews. Nil / zero values mean "any".
type ReviewFilter struct {
	Sentiment models.Sentiment
	IsFake    *bool
	UserID    *int64
}

// AnalysisFilter narrows ListAnalyses. Zero values mean "any".
type AnalysisFilter struct {
	UserID int64
	Status models.AnalysisStatus
}

// UserRepository owns the users table and the cross-table cascade that runs
// when an account is deleted.
type UserRepository interface {
	// CreateUser persists a new account and logs a user_creation activity
	// in the same transaction. Timestamps and default avatar colors are
	// assigned by the repository.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// Authenticate matches username and stored password hash, refuses
	// inactive accounts, and updates last_login on success.
	Authenticate(ctx context.Context, username, passwordHash string) (models.User, error)

	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]models.User, error)

	UpdateStatus(ctx context.Context, id int64, status models.UserStatus) error
	UpdateLastLogin(ctx context.Context, id int64) error
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error

	// DeleteUser removes the account atomically: its activities and
	// analyses are deleted, its reviews are detached (user_id set to
	// NULL), then the user row is removed.
	DeleteUser(ctx context.Context, id int64) error

	UserStats(ctx context.Context) (models.UserStats, error)
}

// ReviewRepository owns the reviews table.
type ReviewRepository interface {
	CreateReview(ctx context.Context, review models.Review) (models.Review, error)
	GetReview(ctx context.Context, id int64) (models.Review, error)
	ListReviews(ctx context.Context, filter ReviewFilter) ([]models.Review, error)

	// RecordAnalysisResult applies the external detection engine's output
	// to a review and stamps analyzed_at.
	RecordAnalysisResult(ctx context.Context, reviewID int64, result models.AnalysisResult) (models.Review, error)
}

// ActivityRepository owns the activities audit log.
type ActivityRepository interface {
	LogActivity(ctx context.Context, activity models.Activity) (models.Activity, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Activity, error)
}

// AnalysisRepository owns the analyses job-run ledger.
type AnalysisRepository interface {
	StartJob(ctx context.Context, userID int64, analysisType, parameters string) (models.Analysis, error)
	GetJob(ctx context.Context, id int64) (models.Analysis, error)
	ListJobs(ctx context.Context, filter AnalysisFilter) ([]models.Analysis, error)

	// TransitionJob moves a job forward through its lifecycle and stamps
	// completed_at (plus result and execution_time when supplied) on entry
	// into a terminal state.
	TransitionJob(ctx context.Context, id int64, next models.AnalysisStatus, result *string, executionTime *float64) (models.Analysis, error)
}
