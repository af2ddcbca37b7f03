package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/aimplatform/reviewintel/internal/app"
	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/internal/store"
	"github.com/aimplatform/reviewintel/internal/utils"
	"github.com/aimplatform/reviewintel/models"
)

type registerRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSONProvided)
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}

	registered, err := h.services.AuthService.Register(ctx, models.User{
		Username:   req.Username,
		Email:      req.Email,
		FullName:   req.FullName,
		Role:       models.Role(req.Role),
		Department: req.Department,
	}, req.Password)
	if err != nil {
		log.Err(err).Msg("user registration failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registered)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, registered, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSONProvided)
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.Login(ctx, req.Username, req.Password, clientIP(r))
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user login failed")

		// An unknown username reads as bad credentials here, not as a
		// missing resource.
		if errors.Is(err, store.ErrUserNotFound) {
			http.Error(w, app.MsgInvalidLoginPassword, http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	log.Debug().Int64("id", user.ID).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, user, http.StatusOK)
}

// clientIP strips the port from RemoteAddr; the raw address is kept when it
// does not parse as host:port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
