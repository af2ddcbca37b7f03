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

// reviewRepository is the SQL-backed implementation of [ReviewRepository].
type reviewRepository struct {
	*DB
	logger *logger.Logger
}

// NewReviewRepository constructs a [ReviewRepository] backed by the provided
// database connection and logger.
func NewReviewRepository(db *DB, logger *logger.Logger) ReviewRepository {
	logger.Debug().Msg("creating review repository")
	return &reviewRepository{
		DB:     db,
		logger: logger,
	}
}

// scanReview reads one reviews row in the [reviewColumns] order.
func scanReview(s rowScanner) (models.Review, error) {
	var (
		rev        models.Review
		userID     sql.NullInt64
		product    sql.NullString
		rating     sql.NullInt64
		sentiment  sql.NullString
		category   sql.NullString
		confidence sql.NullFloat64
		source     sql.NullString
		analyzedAt sql.NullTime
		reason     sql.NullString
	)

	err := s.Scan(
		&rev.ID, &userID, &product, &rev.ReviewText, &rating, &sentiment,
		&category, &rev.IsFake, &confidence, &source, &rev.CreatedAt,
		&analyzedAt, &reason,
	)
	if err != nil {
		return models.Review{}, err
	}

	if userID.Valid {
		v := userID.Int64
		rev.UserID = &v
	}
	rev.ProductName = product.String
	if rating.Valid {
		v := rating.Int64
		rev.Rating = &v
	}
	rev.Sentiment = models.Sentiment(sentiment.String)
	rev.Category = category.String
	if confidence.Valid {
		v := confidence.Float64
		rev.DetectionConfidence = &v
	}
	rev.Source = source.String
	if analyzedAt.Valid {
		t := analyzedAt.Time
		rev.AnalyzedAt = &t
	}
	rev.ConfidenceReason = reason.String

	return rev, nil
}

// CreateReview ingests a review and returns it with server-assigned fields.
//
// The owner reference is tolerated loose: when the given UserID points at a
// missing account the review is kept and stored detached (user_id NULL)
// instead of failing the ingest. Batch uploads routinely outlive the
// accounts that produced them.
//
// Error handling:
//   - empty review text → wrapped [ErrValidation]
//   - rating outside 1..5 → [ErrInvalidRating]
//   - preset sentiment outside the closed set → [ErrInvalidSentiment]
func (r *reviewRepository) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	log := logger.FromContext(ctx)

	if review.ReviewText == "" {
		return models.Review{}, fmt.Errorf("%w: review text is required", ErrValidation)
	}
	if review.Rating != nil && (*review.Rating < 1 || *review.Rating > 5) {
		return models.Review{}, ErrInvalidRating
	}
	if review.Sentiment != "" && !review.Sentiment.Valid() {
		return models.Review{}, ErrInvalidSentiment
	}
	review.CreatedAt = time.Now().UTC()

	id, err := r.insertReview(ctx, review)
	if err != nil && r.dialect.IsForeignKeyViolation(err) && review.UserID != nil {
		log.Warn().
			Str("func", "reviewRepository.CreateReview").
			Int64("user_id", *review.UserID).
			Msg("owner does not exist, storing review detached")

		review.UserID = nil
		id, err = r.insertReview(ctx, review)
	}
	if err != nil {
		log.Err(err).Str("func", "reviewRepository.CreateReview").Msg("failed to insert review")

		if r.dialect.IsCheckViolation(err) {
			return models.Review{}, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return models.Review{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	review.ID = id

	log.Info().
		Str("func", "reviewRepository.CreateReview").
		Int64("review_id", review.ID).
		Msg("review ingested")

	return review, nil
}

func (r *reviewRepository) insertReview(ctx context.Context, review models.Review) (int64, error) {
	query, args, err := r.builder().
		Insert("reviews").
		Columns("user_id", "product_name", "review_text", "rating", "sentiment",
			"category", "is_fake", "detection_confidence", "source", "created_at",
			"analyzed_at", "confidence_reason").
		Values(review.UserID, review.ProductName, review.ReviewText, review.Rating,
			nullIfEmpty(string(review.Sentiment)), review.Category, review.IsFake,
			review.DetectionConfidence, review.Source, review.CreatedAt,
			review.AnalyzedAt, review.ConfidenceReason).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

// nullIfEmpty maps the empty string to SQL NULL, for columns whose CHECK
// constraint admits NULL but not ''.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// GetReview retrieves a single review by id. Returns [ErrReviewNotFound]
// when no row matches.
func (r *reviewRepository) GetReview(ctx context.Context, id int64) (models.Review, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Select(reviewColumns...).
		From("reviews").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "reviewRepository.GetReview").Msg("failed to build select query")
		return models.Review{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	review, err := scanReview(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Review{}, ErrReviewNotFound
		}
		log.Err(err).Str("func", "reviewRepository.GetReview").Int64("review_id", id).Msg("failed to scan review row")
		return models.Review{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return review, nil
}

// ListReviews returns reviews matching the filter, newest first.
func (r *reviewRepository) ListReviews(ctx context.Context, filter ReviewFilter) ([]models.Review, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListReviewsQuery(r.builder(), filter)
	if err != nil {
		log.Err(err).Str("func", "reviewRepository.ListReviews").Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "reviewRepository.ListReviews").Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0, 32)
	for rows.Next() {
		review, scanErr := scanReview(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "reviewRepository.ListReviews").Msg("failed to scan review row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		reviews = append(reviews, review)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "reviewRepository.ListReviews").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return reviews, nil
}

// RecordAnalysisResult applies the detection engine's verdict to a review
// and stamps analyzed_at with the current time. The updated review is
// returned.
//
// Error handling:
//   - sentiment outside the closed set → [ErrInvalidSentiment]
//   - no such review → [ErrReviewNotFound]
func (r *reviewRepository) RecordAnalysisResult(ctx context.Context, reviewID int64, result models.AnalysisResult) (models.Review, error) {
	log := logger.FromContext(ctx)

	if !result.Sentiment.Valid() {
		return models.Review{}, ErrInvalidSentiment
	}

	analyzedAt := time.Now().UTC()

	query, args, err := r.builder().
		Update("reviews").
		Set("sentiment", result.Sentiment).
		Set("is_fake", result.IsFake).
		Set("detection_confidence", result.DetectionConfidence).
		Set("confidence_reason", result.ConfidenceReason).
		Set("analyzed_at", analyzedAt).
		Where(sq.Eq{"id": reviewID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "reviewRepository.RecordAnalysisResult").Msg("failed to build update query")
		return models.Review{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "reviewRepository.RecordAnalysisResult").
			Int64("review_id", reviewID).
			Msg("failed to execute update query")
		return models.Review{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Review{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return models.Review{}, ErrReviewNotFound
	}

	log.Info().
		Str("func", "reviewRepository.RecordAnalysisResult").
		Int64("review_id", reviewID).
		Str("sentiment", string(result.Sentiment)).
		Bool("is_fake", result.IsFake).
		Msg("analysis result recorded")

	return r.GetReview(ctx, reviewID)
}
