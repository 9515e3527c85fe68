package api

import (
	"net/http"
	"time"
)

func (s *Server) handleGetSectorMomentum(w http.ResponseWriter, r *http.Request) {
	minLimit, maxLimit := 1, 100
	limit := getIntParam(r, "limit", 25, &minLimit, &maxLimit)

	rows, err := s.repo.GetSectorMomentum(limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "sector momentum lookup failed", err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// handleRefresh triggers a full synchronous recomputation. Repeated calls
// with unchanged facts produce identical aggregates.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.refresher == nil {
		respondWithError(w, http.StatusServiceUnavailable, "refresh pipeline not available", nil)
		return
	}

	started := time.Now()
	if err := s.refresher.RunOnce(time.Now()); err != nil {
		respondWithError(w, http.StatusInternalServerError, "refresh failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"duration_ms": time.Since(started).Milliseconds(),
	})
}
