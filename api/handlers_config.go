package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"sales-intel/database"
)

// handleHealth returns the health status of the API
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Configuration Handlers (Webhooks Only)

func (s *Server) handleGetWebhooks(w http.ResponseWriter, r *http.Request) {
	webhooks, err := s.repo.GetActiveWebhooks()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "webhook lookup failed", err)
		return
	}
	respondJSON(w, http.StatusOK, webhooks)
}

func (s *Server) handleCreateWebhook(w http.ResponseWriter, r *http.Request) {
	var webhook database.Webhook
	if err := json.NewDecoder(r.Body).Decode(&webhook); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if webhook.URL == "" {
		respondWithError(w, http.StatusBadRequest, "url is required", nil)
		return
	}

	// Reset ID to let DB assign it
	webhook.ID = 0
	webhook.IsActive = true

	if err := s.repo.SaveWebhook(&webhook); err != nil {
		respondWithError(w, http.StatusInternalServerError, "webhook save failed", err)
		return
	}

	respondJSON(w, http.StatusCreated, webhook)
}

func (s *Server) handleDeleteWebhook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid webhook id", nil)
		return
	}

	if err := s.repo.DeactivateWebhook(id); err != nil {
		var notFound *database.NotFoundError
		if errors.As(err, &notFound) {
			respondWithError(w, http.StatusNotFound, err.Error(), nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "webhook delete failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
