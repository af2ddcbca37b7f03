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

type startJobRequest struct {
	UserID       int64  `json:"user_id"`
	AnalysisType string `json:"analysis_type"`
	Parameters   string `json:"parameters"`
}

type transitionJobRequest struct {
	Status        string   `json:"status"`
	Result        *string  `json:"result,omitempty"`
	ExecutionTime *float64 `json:"execution_time,omitempty"`
}

func (h *Handler) startJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req startJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSONProvided)
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}

	// Jobs started over the API run as the caller unless another owner is
	// named explicitly.
	if req.UserID == 0 {
		if callerID, ok := utils.GetUserIDFromContext(ctx); ok {
			req.UserID = callerID
		}
	}

	job, err := h.services.AnalysisService.StartJob(ctx, req.UserID, req.AnalysisType, req.Parameters)
	if err != nil {
		log.Err(err).Msg("starting job failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, job, http.StatusCreated)
}

func (h *Handler) getJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idFromURL(r)
	if err != nil {
		http.Error(w, app.MsgInvalidJobID, http.StatusBadRequest)
		return
	}

	job, err := h.services.AnalysisService.GetJob(ctx, id)
	if err != nil {
		log.Err(err).Int64("job_id", id).Msg("job lookup failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, job, http.StatusOK)
}

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	filter := store.AnalysisFilter{
		Status: models.AnalysisStatus(r.URL.Query().Get("status")),
	}
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, app.MsgInvalidUserIDFilter, http.StatusBadRequest)
			return
		}
		filter.UserID = userID
	}

	jobs, err := h.services.AnalysisService.ListJobs(ctx, filter)
	if err != nil {
		log.Err(err).Msg("listing jobs failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, jobs, http.StatusOK)
}

func (h *Handler) transitionJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idFromURL(r)
	if err != nil {
		http.Error(w, app.MsgInvalidJobID, http.StatusBadRequest)
		return
	}

	var req transitionJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSONProvided)
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}

	job, err := h.services.AnalysisService.TransitionJob(ctx, id, models.AnalysisStatus(req.Status), req.Result, req.ExecutionTime)
	if err != nil {
		log.Err(err).Int64("job_id", id).Str("status", req.Status).Msg("job transition failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, job, http.StatusOK)
}
