package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/internal/store"
	"github.com/aimplatform/reviewintel/models"
)

// ─────────────────────────────────────────────
// Mock: store.ReviewRepository
// ─────────────────────────────────────────────

type mockReviewRepository struct {
	createFn       func(ctx context.Context, review models.Review) (models.Review, error)
	getFn          func(ctx context.Context, id int64) (models.Review, error)
	listFn         func(ctx context.Context, filter store.ReviewFilter) ([]models.Review, error)
	recordResultFn func(ctx context.Context, reviewID int64, result models.AnalysisResult) (models.Review, error)
}

func (m *mockReviewRepository) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	if m.createFn != nil {
		return m.createFn(ctx, review)
	}
	return review, nil
}

func (m *mockReviewRepository) GetReview(ctx context.Context, id int64) (models.Review, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.Review{}, nil
}

func (m *mockReviewRepository) ListReviews(ctx context.Context, filter store.ReviewFilter) ([]models.Review, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockReviewRepository) RecordAnalysisResult(ctx context.Context, reviewID int64, result models.AnalysisResult) (models.Review, error) {
	if m.recordResultFn != nil {
		return m.recordResultFn(ctx, reviewID, result)
	}
	return models.Review{}, nil
}

func newTestReviewService(reviews *mockReviewRepository) *reviewService {
	return &reviewService{
		reviewRepository: reviews,
		logger:           logger.Nop(),
	}
}

func TestReviewService_IngestReview_Success(t *testing.T) {
	reviews := &mockReviewRepository{
		createFn: func(_ context.Context, review models.Review) (models.Review, error) {
			review.ID = 11
			return review, nil
		},
	}
	svc := newTestReviewService(reviews)

	created, err := svc.IngestReview(context.Background(), models.Review{ReviewText: "great"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
}

func TestReviewService_IngestReview_MissingText(t *testing.T) {
	svc := newTestReviewService(&mockReviewRepository{})

	_, err := svc.IngestReview(context.Background(), models.Review{})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestReviewService_IngestReview_RepositoryError(t *testing.T) {
	reviews := &mockReviewRepository{
		createFn: func(_ context.Context, _ models.Review) (models.Review, error) {
			return models.Review{}, store.ErrInvalidRating
		},
	}
	svc := newTestReviewService(reviews)

	_, err := svc.IngestReview(context.Background(), models.Review{ReviewText: "x"})
	require.ErrorIs(t, err, store.ErrInvalidRating)
}

func TestReviewService_GetReview_ZeroID(t *testing.T) {
	svc := newTestReviewService(&mockReviewRepository{})

	_, err := svc.GetReview(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestReviewService_ListReviews_PassesFilter(t *testing.T) {
	fake := true
	reviews := &mockReviewRepository{
		listFn: func(_ context.Context, filter store.ReviewFilter) ([]models.Review, error) {
			assert.Equal(t, models.SentimentNegative, filter.Sentiment)
			require.NotNil(t, filter.IsFake)
			assert.True(t, *filter.IsFake)
			return []models.Review{{ID: 11}}, nil
		},
	}
	svc := newTestReviewService(reviews)

	got, err := svc.ListReviews(context.Background(), store.ReviewFilter{
		Sentiment: models.SentimentNegative,
		IsFake:    &fake,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestReviewService_RecordAnalysisResult(t *testing.T) {
	reviews := &mockReviewRepository{
		recordResultFn: func(_ context.Context, reviewID int64, result models.AnalysisResult) (models.Review, error) {
			assert.Equal(t, int64(11), reviewID)
			assert.Equal(t, models.SentimentPositive, result.Sentiment)
			return models.Review{ID: reviewID, Sentiment: result.Sentiment}, nil
		},
	}
	svc := newTestReviewService(reviews)

	updated, err := svc.RecordAnalysisResult(context.Background(), 11, models.AnalysisResult{
		Sentiment: models.SentimentPositive,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SentimentPositive, updated.Sentiment)
}

func TestReviewService_RecordAnalysisResult_ZeroID(t *testing.T) {
	svc := newTestReviewService(&mockReviewRepository{})

	_, err := svc.RecordAnalysisResult(context.Background(), 0, models.AnalysisResult{})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}
