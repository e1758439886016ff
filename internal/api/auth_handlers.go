package api

import (
	"net/http"
	"time"

	"github.com/vlemaire/flashdeck/internal/logger"
	"github.com/vlemaire/flashdeck/internal/models"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type userResponse struct {
	ID        string `json:"user_id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.AuthService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, pair, err := s.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"user":          toUserResponse(user),
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	token, err := s.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"access_token": token})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	user, err := s.AuthService.CurrentUser(r.Context(), UserID(r.Context()))
	if err != nil {
		log.Warn("authenticated user no longer exists")
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toUserResponse(user))
}
