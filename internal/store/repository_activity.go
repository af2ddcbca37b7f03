package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/models"
)

// activityRepository is the SQL-backed implementation of
// [ActivityRepository].
type activityRepository struct {
	*DB
	logger *logger.Logger
}

// NewActivityRepository constructs an [ActivityRepository] backed by the
// provided database connection and logger.
func NewActivityRepository(db *DB, logger *logger.Logger) ActivityRepository {
	logger.Debug().Msg("creating activity repository")
	return &activityRepository{
		DB:     db,
		logger: logger,
	}
}

// scanActivity reads one activities row in the [activityColumns] order.
func scanActivity(s rowScanner) (models.Activity, error) {
	var (
		act         models.Activity
		description sql.NullString
		ipAddress   sql.NullString
	)

	err := s.Scan(&act.ID, &act.UserID, &act.ActivityType, &description, &ipAddress, &act.CreatedAt)
	if err != nil {
		return models.Activity{}, err
	}

	act.Description = description.String
	act.IPAddress = ipAddress.String

	return act, nil
}

// LogActivity appends an audit-log entry and returns it with the
// server-assigned id and timestamp.
//
// The owner reference is strong here: an unknown UserID is rejected with a
// wrapped [ErrUserNotFound] rather than stored dangling.
func (r *activityRepository) LogActivity(ctx context.Context, activity models.Activity) (models.Activity, error) {
	log := logger.FromContext(ctx)

	if activity.UserID == 0 {
		return models.Activity{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if activity.ActivityType == "" {
		return models.Activity{}, fmt.Errorf("%w: activity type is required", ErrValidation)
	}
	activity.CreatedAt = time.Now().UTC()

	query, args, err := r.builder().
		Insert("activities").
		Columns("user_id", "activity_type", "description", "ip_address", "created_at").
		Values(activity.UserID, activity.ActivityType, activity.Description,
			nullIfEmpty(activity.IPAddress), activity.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "activityRepository.LogActivity").Msg("failed to build insert query")
		return models.Activity{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&activity.ID); err != nil {
		log.Err(err).
			Str("func", "activityRepository.LogActivity").
			Int64("user_id", activity.UserID).
			Str("activity_type", activity.ActivityType).
			Msg("failed to insert activity")

		if r.dialect.IsForeignKeyViolation(err) {
			return models.Activity{}, fmt.Errorf("%w: no such owner", ErrUserNotFound)
		}
		return models.Activity{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return activity, nil
}

// ListByUser returns the audit log for one account, newest first.
func (r *activityRepository) ListByUser(ctx context.Context, userID int64) ([]models.Activity, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Select(activityColumns...).
		From("activities").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "activityRepository.ListByUser").Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "activityRepository.ListByUser").Int64("user_id", userID).Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	activities := make([]models.Activity, 0, 16)
	for rows.Next() {
		activity, scanErr := scanActivity(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "activityRepository.ListByUser").Msg("failed to scan activity row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		activities = append(activities, activity)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "activityRepository.ListByUser").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return activities, nil
}
