package http

import (
	"encoding/json"
	"net/http"

	"github.com/aimplatform/reviewintel/internal/app"
	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/internal/utils"
	"github.com/aimplatform/reviewintel/models"
)

func (h *Handler) logActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var activity models.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSONProvided)
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}

	if activity.UserID == 0 {
		if callerID, ok := utils.GetUserIDFromContext(ctx); ok {
			activity.UserID = callerID
		}
	}
	if activity.IPAddress == "" {
		activity.IPAddress = clientIP(r)
	}

	logged, err := h.services.ActivityService.LogActivity(ctx, activity)
	if err != nil {
		log.Err(err).Msg("activity logging failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, logged, http.StatusCreated)
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idFromURL(r)
	if err != nil {
		http.Error(w, app.MsgInvalidUserID, http.StatusBadRequest)
		return
	}

	activities, err := h.services.ActivityService.ListByUser(ctx, id)
	if err != nil {
		log.Err(err).Int64("user_id", id).Msg("listing activities failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, activities, http.StatusOK)
}
