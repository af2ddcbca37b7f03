// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The reviewintel Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/models"
)

// analysisRepository is the SQL-backed implementation of
// [AnalysisRepository]. Job rows move through the lifecycle
// pending -> processing -> completed|failed; the transition table lives on
// [models.AnalysisStatus] and this repository enforces it under concurrency
// with a compare-and-swap update.
type analysisRepository struct {
	*DB
	logger *logger.Logger
}

// NewAnalysisRepository constructs an [AnalysisRepository] backed by the
// provided database connection and logger.
func NewAnalysisRepository(db *DB, logger *logger.Logger) AnalysisRepository {
	logger.Debug().Msg("creating analysis repository")
	return &analysisRepository{
		DB:     db,
		logger: logger,
	}
}

// scanAnalysis reads one analyses row in the [analysisColumns] order.
func scanAnalysis(s rowScanner) (models.Analysis, error) {
	var (
		job           models.Analysis
		parameters    sql.NullString
		result        sql.NullString
		completedAt   sql.NullTime
		executionTime sql.NullFloat64
	)

	err := s.Scan(
		&job.ID, &job.UserID, &job.AnalysisType, &parameters, &result,
		&job.Status, &job.StartedAt, &completedAt, &executionTime,
	)
	if err != nil {
		return models.Analysis{}, err
	}

	job.Parameters = parameters.String
	job.Result = result.String
	if completedAt.Valid {
		t := completedAt.Time
		job.CompletedAt = &t
	}
	if executionTime.Valid {
		v := executionTime.Float64
		job.ExecutionTime = &v
	}

	return job, nil
}

// StartJob records a new analysis run in the pending state with started_at
// set to the current time.
//
// Error handling:
//   - missing user id or analysis type → wrapped [ErrValidation]
//   - unknown owner → wrapped [ErrUserNotFound]
func (r *analysisRepository) StartJob(ctx context.Context, userID int64, analysisType, parameters string) (models.Analysis, error) {
	log := logger.FromContext(ctx)

	if userID == 0 {
		return models.Analysis{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if analysisType == "" {
		return models.Analysis{}, fmt.Errorf("%w: analysis type is required", ErrValidation)
	}

	job := models.Analysis{
		UserID:       userID,
		AnalysisType: analysisType,
		Parameters:   parameters,
		Status:       models.AnalysisPending,
		StartedAt:    time.Now().UTC(),
	}

	query, args, err := r.builder().
		Insert("analyses").
		Columns("user_id", "analysis_type", "parameters", "status", "started_at").
		Values(job.UserID, job.AnalysisType, nullIfEmpty(job.Parameters), job.Status, job.StartedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "analysisRepository.StartJob").Msg("failed to build insert query")
		return models.Analysis{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&job.ID); err != nil {
		log.Err(err).
			Str("func", "analysisRepository.StartJob").
			Int64("user_id", userID).
			Str("analysis_type", analysisType).
			Msg("failed to insert job")

		if r.dialect.IsForeignKeyViolation(err) {
			return models.Analysis{}, fmt.Errorf("%w: no such owner", ErrUserNotFound)
		}
		return models.Analysis{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	log.Info().
		Str("func", "analysisRepository.StartJob").
		Int64("job_id", job.ID).
		Str("analysis_type", analysisType).
		Msg("analysis job started")

	return job, nil
}

// GetJob retrieves a single job by id. Returns [ErrAnalysisNotFound] when
// no row matches.
func (r *analysisRepository) GetJob(ctx context.Context, id int64) (models.Analysis, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Select(analysisColumns...).
		From("analyses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "analysisRepository.GetJob").Msg("failed to build select query")
		return models.Analysis{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	job, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Analysis{}, ErrAnalysisNotFound
		}
		log.Err(err).Str("func", "analysisRepository.GetJob").Int64("job_id", id).Msg("failed to scan job row")
		return models.Analysis{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return job, nil
}

// ListJobs returns jobs matching the filter, newest first.
func (r *analysisRepository) ListJobs(ctx context.Context, filter AnalysisFilter) ([]models.Analysis, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListJobsQuery(r.builder(), filter)
	if err != nil {
		log.Err(err).Str("func", "analysisRepository.ListJobs").Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "analysisRepository.ListJobs").Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	jobs := make([]models.Analysis, 0, 16)
	for rows.Next() {
		job, scanErr := scanAnalysis(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "analysisRepository.ListJobs").Msg("failed to scan job row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		jobs = append(jobs, job)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "analysisRepository.ListJobs").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return jobs, nil
}

// TransitionJob moves a job to its next lifecycle state and returns the
// updated row. On entry into a terminal state completed_at is stamped with
// the current time and result / execution_time are written when supplied.
//
// The update is a compare-and-swap on the current status, so two racing
// callers cannot both move the same job: the loser's WHERE clause no
// longer matches and it receives [ErrInvalidTransition]. A transition to
// the current state is also refused; every permitted edge changes state.
//
// Error handling:
//   - unknown target status → [ErrInvalidAnalysisStatus]
//   - edge absent from the transition table (including self-transitions
//     and moves out of a terminal state) → [ErrInvalidTransition]
//   - no such job → [ErrAnalysisNotFound]
func (r *analysisRepository) TransitionJob(ctx context.Context, id int64, next models.AnalysisStatus, result *string, executionTime *float64) (models.Analysis, error) {
	log := logger.FromContext(ctx)

	if !next.Valid() {
		return models.Analysis{}, ErrInvalidAnalysisStatus
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "analysisRepository.TransitionJob").Msg("failed to begin transaction")
		return models.Analysis{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := r.builder().
		Select("status").
		From("analyses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "analysisRepository.TransitionJob").Msg("failed to build select query")
		return models.Analysis{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var current models.AnalysisStatus
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Analysis{}, ErrAnalysisNotFound
		}
		log.Err(err).Str("func", "analysisRepository.TransitionJob").Int64("job_id", id).Msg("failed to read current status")
		return models.Analysis{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if !current.CanTransitionTo(next) {
		log.Warn().
			Str("func", "analysisRepository.TransitionJob").
			Int64("job_id", id).
			Str("from", string(current)).
			Str("to", string(next)).
			Msg("transition refused")
		return models.Analysis{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
	}

	update := r.builder().
		Update("analyses").
		Set("status", next).
		Where(sq.Eq{"id": id, "status": current})

	if next.Terminal() {
		update = update.Set("completed_at", time.Now().UTC())
		if result != nil {
			update = update.Set("result", *result)
		}
		if executionTime != nil {
			update = update.Set("execution_time", *executionTime)
		}
	}

	query, args, err = update.ToSql()
	if err != nil {
		log.Err(err).Str("func", "analysisRepository.TransitionJob").Msg("failed to build update query")
		return models.Analysis{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "analysisRepository.TransitionJob").
			Int64("job_id", id).
			Msg("failed to execute update query")
		return models.Analysis{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Analysis{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		// Lost the race: another caller moved the job first.
		return models.Analysis{}, fmt.Errorf("%w: concurrent update on job %d", ErrInvalidTransition, id)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "analysisRepository.TransitionJob").Msg("failed to commit transaction")
		return models.Analysis{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "analysisRepository.TransitionJob").
		Int64("job_id", id).
		Str("from", string(current)).
		Str("to", string(next)).
		Msg("job transitioned")

	return r.GetJob(ctx, id)
}
