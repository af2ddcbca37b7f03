package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aimplatform/reviewintel/internal/app"
	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/internal/store"
	"github.com/aimplatform/reviewintel/internal/utils"
	"github.com/aimplatform/reviewintel/models"
)

// idFromURL parses the {id} route parameter.
func idFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	filter := store.UserFilter{
		Role:   models.Role(r.URL.Query().Get("role")),
		Status: models.UserStatus(r.URL.Query().Get("status")),
	}

	users, err := h.services.UserService.ListUsers(ctx, filter)
	if err != nil {
		log.Err(err).Msg("listing users failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idFromURL(r)
	if err != nil {
		http.Error(w, app.MsgInvalidUserID, http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.GetUser(ctx, id)
	if err != nil {
		log.Err(err).Int64("user_id", id).Msg("user lookup failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) userStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	stats, err := h.services.UserService.Stats(ctx)
	if err != nil {
		log.Err(err).Msg("user stats failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateUserStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idFromURL(r)
	if err != nil {
		http.Error(w, app.MsgInvalidUserID, http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSONProvided)
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.UpdateStatus(ctx, id, models.UserStatus(req.Status))
	if err != nil {
		log.Err(err).Int64("user_id", id).Msg("status update failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idFromURL(r)
	if err != nil {
		http.Error(w, app.MsgInvalidUserID, http.StatusBadRequest)
		return
	}

	actorID, _ := utils.GetUserIDFromContext(ctx)

	if err := h.services.UserService.DeleteUser(ctx, id, actorID); err != nil {
		log.Err(err).Int64("user_id", id).Msg("user deletion failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
