package api

import (
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.CardService.Stats(r.Context(), UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.CardService.Categories(r.Context(), UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"categories": categories})
}
