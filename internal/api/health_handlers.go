package api

import "net/http"

// handleHealth is the liveness probe. It answers 200 whenever the process
// is up.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady is the readiness probe. The card store lives in memory, so
// once the process is serving it is also ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
