package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vlemaire/flashdeck/internal/logger"
	"github.com/vlemaire/flashdeck/internal/models"
)

type createCardRequest struct {
	Front      string `json:"front" validate:"required"`
	Back       string `json:"back" validate:"required"`
	Difficulty string `json:"difficulty" validate:"required"`
	Category   string `json:"category"`
}

type updateDifficultyRequest struct {
	Difficulty string `json:"difficulty" validate:"required"`
}

type reviewCardRequest struct {
	// Pointer so an absent field can be told apart from an explicit false.
	// A review without a success flag counts as a success.
	Success *bool `json:"success"`
}

type reviewCardResponse struct {
	Card          models.Card `json:"card"`
	SuccessStreak int         `json:"success_streak"`
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.CreateCard(r.Context(), UserID(r.Context()), req.Front, req.Back, req.Difficulty, req.Category)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	card, err := s.CardService.GetCard(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := s.CardService.DeleteCard(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusNoContent, nil)
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	category := r.URL.Query().Get("category")

	cards, err := s.CardService.ListCards(r.Context(), UserID(r.Context()), category)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("listing %d cards", len(cards))
	respondJSON(w, r, http.StatusOK, map[string]any{
		"cards": cards,
		"count": len(cards),
	})
}

func (s *Server) handleListDueCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	category := r.URL.Query().Get("category")
	shuffle := r.URL.Query().Get("shuffle") == "true"

	cards, err := s.CardService.ListDueCards(r.Context(), UserID(r.Context()), category, shuffle)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("found %d due cards", len(cards))
	respondJSON(w, r, http.StatusOK, map[string]any{
		"cards": cards,
		"count": len(cards),
	})
}

func (s *Server) handleUpdateDifficulty(w http.ResponseWriter, r *http.Request) {
	var req updateDifficultyRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.UpdateDifficulty(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), req.Difficulty)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	// The body is optional: a bare POST records a successful review.
	var req reviewCardRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}
	}

	success := true
	if req.Success != nil {
		success = *req.Success
	}

	card, streak, err := s.CardService.ReviewCard(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), success)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, reviewCardResponse{Card: card, SuccessStreak: streak})
}
