package service

import (
	"context"
	"fmt"

	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/internal/store"
	"github.com/aimplatform/reviewintel/models"
)

// reviewService is the concrete implementation of ReviewService. Input
// validation here is a first line only; the storage boundary enforces the
// same rules again.
type reviewService struct {
	reviewRepository store.ReviewRepository
	logger           *logger.Logger
}

// NewReviewService constructs a ReviewService over the given repository.
func NewReviewService(reviewRepository store.ReviewRepository, logger *logger.Logger) ReviewService {
	return &reviewService{
		reviewRepository: reviewRepository,
		logger:           logger,
	}
}

func (r *reviewService) IngestReview(ctx context.Context, review models.Review) (models.Review, error) {
	log := logger.FromContext(ctx)

	if review.ReviewText == "" {
		log.Error().Msg("review without text provided")
		return models.Review{}, ErrInvalidDataProvided
	}

	created, err := r.reviewRepository.CreateReview(ctx, review)
	if err != nil {
		log.Err(err).Msg("review ingest ended with error")
		return models.Review{}, fmt.Errorf("review ingest ended with error: %w", err)
	}

	return created, nil
}

func (r *reviewService) GetReview(ctx context.Context, id int64) (models.Review, error) {
	if id == 0 {
		return models.Review{}, ErrInvalidDataProvided
	}

	return r.reviewRepository.GetReview(ctx, id)
}

func (r *reviewService) ListReviews(ctx context.Context, filter store.ReviewFilter) ([]models.Review, error) {
	return r.reviewRepository.ListReviews(ctx, filter)
}

// RecordAnalysisResult applies the detection engine's verdict to a review.
func (r *reviewService) RecordAnalysisResult(ctx context.Context, reviewID int64, result models.AnalysisResult) (models.Review, error) {
	log := logger.FromContext(ctx)

	if reviewID == 0 {
		return models.Review{}, ErrInvalidDataProvided
	}

	updated, err := r.reviewRepository.RecordAnalysisResult(ctx, reviewID, result)
	if err != nil {
		log.Err(err).Int64("review_id", reviewID).Msg("recording analysis result failed")
		return models.Review{}, fmt.Errorf("recording analysis result failed: %w", err)
	}

	return updated, nil
}
