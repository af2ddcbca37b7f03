package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/internal/service"
	"github.com/aimplatform/reviewintel/internal/store"
	"github.com/aimplatform/reviewintel/internal/utils"
	"github.com/aimplatform/reviewintel/models"
)

// ─────────────────────────────────────────────
// Mock ReviewService
// ─────────────────────────────────────────────

type mockReviewService struct {
	ingestFn       func(ctx context.Context, review models.Review) (models.Review, error)
	getFn          func(ctx context.Context, id int64) (models.Review, error)
	listFn         func(ctx context.Context, filter store.ReviewFilter) ([]models.Review, error)
	recordResultFn func(ctx context.Context, reviewID int64, result models.AnalysisResult) (models.Review, error)
}

func (m *mockReviewService) IngestReview(ctx context.Context, review models.Review) (models.Review, error) {
	if m.ingestFn != nil {
		return m.ingestFn(ctx, review)
	}
	return review, nil
}

func (m *mockReviewService) GetReview(ctx context.Context, id int64) (models.Review, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.Review{}, nil
}

func (m *mockReviewService) ListReviews(ctx context.Context, filter store.ReviewFilter) ([]models.Review, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockReviewService) RecordAnalysisResult(ctx context.Context, reviewID int64, result models.AnalysisResult) (models.Review, error) {
	if m.recordResultFn != nil {
		return m.recordResultFn(ctx, reviewID, result)
	}
	return models.Review{}, nil
}

func newHandlerWithReviews(t *testing.T, reviews service.ReviewService) *Handler {
	t.Helper()
	svcs := &service.Services{
		ReviewService: reviews,
	}
	return NewHandler(svcs, logger.Nop())
}

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func TestCreateReview_DefaultsOwnerToCaller(t *testing.T) {
	reviews := &mockReviewService{
		ingestFn: func(_ context.Context, review models.Review) (models.Review, error) {
			require.NotNil(t, review.UserID)
			assert.Equal(t, int64(1), *review.UserID)
			review.ID = 11
			return review, nil
		},
	}
	h := newHandlerWithReviews(t, reviews)

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(`{"review_text":"great"}`))
	req = req.WithContext(context.WithValue(req.Context(), utils.UserIDCtxKey, int64(1)))
	rec := httptest.NewRecorder()

	h.createReview(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateReview_KeepsExplicitOwner(t *testing.T) {
	reviews := &mockReviewService{
		ingestFn: func(_ context.Context, review models.Review) (models.Review, error) {
			require.NotNil(t, review.UserID)
			assert.Equal(t, int64(3), *review.UserID)
			return review, nil
		},
	}
	h := newHandlerWithReviews(t, reviews)

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(`{"review_text":"great","user_id":3}`))
	req = req.WithContext(context.WithValue(req.Context(), utils.UserIDCtxKey, int64(1)))
	rec := httptest.NewRecorder()

	h.createReview(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateReview_ValidationError(t *testing.T) {
	reviews := &mockReviewService{
		ingestFn: func(_ context.Context, _ models.Review) (models.Review, error) {
			return models.Review{}, store.ErrInvalidRating
		},
	}
	h := newHandlerWithReviews(t, reviews)

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(`{"review_text":"x","rating":9}`))
	rec := httptest.NewRecorder()

	h.createReview(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListReviews_ParsesFilter(t *testing.T) {
	reviews := &mockReviewService{
		listFn: func(_ context.Context, filter store.ReviewFilter) ([]models.Review, error) {
			assert.Equal(t, models.SentimentNegative, filter.Sentiment)
			require.NotNil(t, filter.IsFake)
			assert.True(t, *filter.IsFake)
			require.NotNil(t, filter.UserID)
			assert.Equal(t, int64(3), *filter.UserID)
			return []models.Review{{ID: 11}}, nil
		},
	}
	h := newHandlerWithReviews(t, reviews)

	req := httptest.NewRequest(http.MethodGet, "/api/reviews?sentiment=negative&is_fake=true&user_id=3", nil)
	rec := httptest.NewRecorder()

	h.listReviews(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListReviews_BadIsFake(t *testing.T) {
	h := newHandlerWithReviews(t, &mockReviewService{})

	req := httptest.NewRequest(http.MethodGet, "/api/reviews?is_fake=maybe", nil)
	rec := httptest.NewRecorder()

	h.listReviews(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetReview_NotFound(t *testing.T) {
	reviews := &mockReviewService{
		getFn: func(_ context.Context, _ int64) (models.Review, error) {
			return models.Review{}, store.ErrReviewNotFound
		},
	}
	h := newHandlerWithReviews(t, reviews)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/reviews/42", nil), "id", "42")
	rec := httptest.NewRecorder()

	h.getReview(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecordAnalysisResult_Success(t *testing.T) {
	reviews := &mockReviewService{
		recordResultFn: func(_ context.Context, reviewID int64, result models.AnalysisResult) (models.Review, error) {
			assert.Equal(t, int64(11), reviewID)
			assert.Equal(t, models.SentimentPositive, result.Sentiment)
			assert.True(t, result.IsFake)
			return models.Review{ID: reviewID, Sentiment: result.Sentiment, IsFake: result.IsFake}, nil
		},
	}
	h := newHandlerWithReviews(t, reviews)

	body := `{"sentiment":"positive","is_fake":true,"detection_confidence":0.97}`
	req := withURLParam(
		httptest.NewRequest(http.MethodPost, "/api/reviews/11/analysis-result", strings.NewReader(body)),
		"id", "11",
	)
	rec := httptest.NewRecorder()

	h.recordAnalysisResult(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.IsFake)
}

func TestRecordAnalysisResult_InvalidSentiment(t *testing.T) {
	reviews := &mockReviewService{
		recordResultFn: func(_ context.Context, _ int64, _ models.AnalysisResult) (models.Review, error) {
			return models.Review{}, store.ErrInvalidSentiment
		},
	}
	h := newHandlerWithReviews(t, reviews)

	req := withURLParam(
		httptest.NewRequest(http.MethodPost, "/api/reviews/11/analysis-result", strings.NewReader(`{"sentiment":"mixed"}`)),
		"id", "11",
	)
	rec := httptest.NewRecorder()

	h.recordAnalysisResult(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
