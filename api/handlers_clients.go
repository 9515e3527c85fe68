package api

import (
	"net/http"
	"time"

	models "sales-intel/database/models_pkg"
)

// ProfilePayload is the composed per-client response: the integration-layer
// profile plus both composite risk rows.
type ProfilePayload struct {
	Profile        *models.ClientProfile  `json:"profile"`
	RiskComposites []models.RiskComposite `json:"risk_composites"`
}

func (s *Server) handleGetClientProfile(w http.ResponseWriter, r *http.Request) {
	clientID, err := clientIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid client id", nil)
		return
	}

	// Cache hit serves the composed payload directly
	if s.redis != nil {
		var cached ProfilePayload
		if err := s.redis.GetCachedProfile(clientID, &cached); err == nil {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	profile, err := s.repo.GetClientProfile(clientID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "profile lookup failed", err)
		return
	}
	if profile == nil {
		respondWithError(w, http.StatusNotFound, "no profile for client", nil)
		return
	}

	composites, err := s.repo.GetRiskComposites(clientID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "risk lookup failed", err)
		return
	}

	payload := ProfilePayload{Profile: profile, RiskComposites: composites}

	if s.redis != nil {
		ttl := time.Duration(s.cfg.Analytics.ProfileCacheTTLMinutes) * time.Minute
		_ = s.redis.CacheProfile(clientID, payload, ttl)
	}

	respondJSON(w, http.StatusOK, payload)
}

func (s *Server) handleGetTradeSummary(w http.ResponseWriter, r *http.Request) {
	clientID, err := clientIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid client id", nil)
		return
	}
	row, err := s.repo.GetTradeSummary(clientID)
	respondAggregate(w, row, row != nil, err)
}

func (s *Server) handleGetCallPattern(w http.ResponseWriter, r *http.Request) {
	clientID, err := clientIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid client id", nil)
		return
	}
	row, err := s.repo.GetCallPattern(clientID)
	respondAggregate(w, row, row != nil, err)
}

func (s *Server) handleGetTopicSignal(w http.ResponseWriter, r *http.Request) {
	clientID, err := clientIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid client id", nil)
		return
	}
	row, err := s.repo.GetTopicSignal(clientID)
	respondAggregate(w, row, row != nil, err)
}

func (s *Server) handleGetPositionHints(w http.ResponseWriter, r *http.Request) {
	clientID, err := clientIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid client id", nil)
		return
	}

	minLimit, maxLimit := 1, 100
	limit := getIntParam(r, "limit", 20, &minLimit, &maxLimit)

	rows, err := s.repo.GetPositionHints(clientID, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "position hints lookup failed", err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (s *Server) handleGetPortfolioRisk(w http.ResponseWriter, r *http.Request) {
	clientID, err := clientIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid client id", nil)
		return
	}
	row, err := s.repo.GetPortfolioRisk(clientID)
	respondAggregate(w, row, row != nil, err)
}

func (s *Server) handleGetEngagementMomentum(w http.ResponseWriter, r *http.Request) {
	clientID, err := clientIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid client id", nil)
		return
	}
	row, err := s.repo.GetEngagementMomentum(clientID)
	respondAggregate(w, row, row != nil, err)
}

func (s *Server) handleGetConviction(w http.ResponseWriter, r *http.Request) {
	clientID, err := clientIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid client id", nil)
		return
	}
	row, err := s.repo.GetConviction(clientID)
	respondAggregate(w, row, row != nil, err)
}

func (s *Server) handleGetReadershipIntel(w http.ResponseWriter, r *http.Request) {
	clientID, err := clientIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid client id", nil)
		return
	}
	row, err := s.repo.GetReadershipIntel(clientID)
	respondAggregate(w, row, row != nil, err)
}

func (s *Server) handleGetRiskComposite(w http.ResponseWriter, r *http.Request) {
	clientID, err := clientIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid client id", nil)
		return
	}

	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		rows, err := s.repo.GetRiskComposites(clientID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "risk lookup failed", err)
			return
		}
		if len(rows) == 0 {
			respondWithError(w, http.StatusNotFound, "no signal for client", nil)
			return
		}
		respondJSON(w, http.StatusOK, rows)
		return
	}

	row, err := s.repo.GetRiskComposite(clientID, strategy)
	respondAggregate(w, row, row != nil, err)
}
