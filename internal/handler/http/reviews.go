package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aimplatform/reviewintel/internal/app"
	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/internal/store"
	"github.com/aimplatform/reviewintel/internal/utils"
	"github.com/aimplatform/reviewintel/models"
)

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSONProvided)
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}

	// Reviews ingested over the API belong to the caller unless the
	// payload names an owner explicitly (batch imports on behalf of
	// other accounts).
	if review.UserID == nil {
		if callerID, ok := utils.GetUserIDFromContext(ctx); ok {
			review.UserID = &callerID
		}
	}

	created, err := h.services.ReviewService.IngestReview(ctx, review)
	if err != nil {
		log.Err(err).Msg("review ingest failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idFromURL(r)
	if err != nil {
		http.Error(w, app.MsgInvalidReviewID, http.StatusBadRequest)
		return
	}

	review, err := h.services.ReviewService.GetReview(ctx, id)
	if err != nil {
		log.Err(err).Int64("review_id", id).Msg("review lookup failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, review, http.StatusOK)
}

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	filter := store.ReviewFilter{
		Sentiment: models.Sentiment(r.URL.Query().Get("sentiment")),
	}
	if raw := r.URL.Query().Get("is_fake"); raw != "" {
		fake, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, app.MsgInvalidIsFakeFilter, http.StatusBadRequest)
			return
		}
		filter.IsFake = &fake
	}
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, app.MsgInvalidUserIDFilter, http.StatusBadRequest)
			return
		}
		filter.UserID = &userID
	}

	reviews, err := h.services.ReviewService.ListReviews(ctx, filter)
	if err != nil {
		log.Err(err).Msg("listing reviews failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, reviews, http.StatusOK)
}

func (h *Handler) recordAnalysisResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idFromURL(r)
	if err != nil {
		http.Error(w, app.MsgInvalidReviewID, http.StatusBadRequest)
		return
	}

	var result models.AnalysisResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSONProvided)
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}

	review, err := h.services.ReviewService.RecordAnalysisResult(ctx, id, result)
	if err != nil {
		log.Err(err).Int64("review_id", id).Msg("recording analysis result failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, review, http.StatusOK)
}
