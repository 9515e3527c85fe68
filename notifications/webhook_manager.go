package notifications

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"sales-intel/cache"
	"sales-intel/database/aggregates"
	models "sales-intel/database/models_pkg"
	"sales-intel/helpers"

	"encoding/json"
)

const lastSignalKeyPrefix = "webhook:lastsignal:"

// WebhookManager delivers action-signal notifications after each refresh
// cycle. A registered webhook receives one payload per client whose action
// signal changed since the previous cycle (all non-normal signals when no
// previous state is available).
type WebhookManager struct {
	repo   *aggregates.Repository
	redis  *cache.RedisClient
	client *http.Client
}

// WebhookPayload represents the JSON payload sent to webhooks
type WebhookPayload struct {
	ClientID           int64     `json:"client_id"`
	Strategy           string    `json:"strategy"`
	ActionSignal       string    `json:"action_signal"`
	EngagementTrend    string    `json:"engagement_trend"`
	RiskCategory       string    `json:"risk_category"`
	CompositeRiskScore float64   `json:"composite_risk_score"`
	ProfileConfidence  string    `json:"profile_confidence"`
	DetectedAt         time.Time `json:"detected_at"`
	Message            string    `json:"message"`
}

// NewWebhookManager creates a new webhook manager
func NewWebhookManager(repo *aggregates.Repository, redis *cache.RedisClient) *WebhookManager {
	return &WebhookManager{
		repo:  repo,
		redis: redis,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NotifyActionSignals fans freshly computed composites out to the registered
// webhooks. Only multi_factor rows feed notifications; the enhanced strategy
// carries the same action signal on the same client.
func (wm *WebhookManager) NotifyActionSignals(composites []models.RiskComposite) {
	webhooks, err := wm.repo.GetActiveWebhooks()
	if err != nil {
		log.Printf("⚠️  Failed to load webhooks: %v", err)
		return
	}
	if len(webhooks) == 0 {
		return
	}

	for _, row := range composites {
		if row.Strategy != "multi_factor" {
			continue
		}
		if !wm.signalChanged(row) {
			continue
		}

		payload := wm.CreatePayload(&row)
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			log.Printf("⚠️  Failed to marshal webhook payload: %v", err)
			continue
		}

		for _, hook := range webhooks {
			if wm.shouldSend(hook, &row) {
				go wm.deliverWebhook(hook, row.ClientID, row.ActionSignal, payloadBytes)
			}
		}
	}
}

// signalChanged reports whether a client's action signal differs from the
// previous cycle. Without Redis there is no previous state, so every
// non-normal signal counts as changed.
func (wm *WebhookManager) signalChanged(row models.RiskComposite) bool {
	if wm.redis == nil {
		return row.ActionSignal != "Normal Engagement"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := fmt.Sprintf("%s%d", lastSignalKeyPrefix, row.ClientID)
	var previous string
	err := wm.redis.Get(ctx, key, &previous)
	_ = wm.redis.Set(ctx, key, row.ActionSignal, 0)

	if err != nil {
		return row.ActionSignal != "Normal Engagement"
	}
	return previous != row.ActionSignal
}

// CreatePayload generates the webhook payload from a composite row
func (wm *WebhookManager) CreatePayload(row *models.RiskComposite) WebhookPayload {
	message := fmt.Sprintf("📣 %s | Client %d | Trend: %s | Risk: %s (%s) | Confidence: %s",
		row.ActionSignal,
		row.ClientID,
		row.EngagementTrend,
		row.RiskCategory,
		helpers.FormatScore(row.CompositeRiskScore),
		row.ProfileConfidence,
	)
	if row.ConcentrationScore != nil {
		message += fmt.Sprintf(" | Concentration: %s", helpers.FormatPercent(*row.ConcentrationScore))
	}

	return WebhookPayload{
		ClientID:           row.ClientID,
		Strategy:           row.Strategy,
		ActionSignal:       row.ActionSignal,
		EngagementTrend:    row.EngagementTrend,
		RiskCategory:       row.RiskCategory,
		CompositeRiskScore: row.CompositeRiskScore,
		ProfileConfidence:  row.ProfileConfidence,
		DetectedAt:         row.UpdatedAt,
		Message:            message,
	}
}

func (wm *WebhookManager) shouldSend(hook models.Webhook, row *models.RiskComposite) bool {
	// Signal filter: CSV of action signals, empty matches all
	if hook.SignalFilter != "" {
		if !strings.Contains(hook.SignalFilter, row.ActionSignal) {
			return false
		}
	}

	if hook.MinCompositeScore != nil && row.CompositeRiskScore < *hook.MinCompositeScore {
		return false
	}

	return true
}

func (wm *WebhookManager) deliverWebhook(hook models.Webhook, clientID int64, signal string, payload []byte) {
	maxRetries := hook.RetryCount
	if maxRetries <= 0 {
		maxRetries = 1
	}
	method := hook.Method
	if method == "" {
		method = http.MethodPost
	}

	var resp *http.Response
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, _ := http.NewRequest(method, hook.URL, bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "Sales-Intel-Signals/1.0")

		log.Printf("🔹 Sending webhook to %s (Attempt %d/%d)", hook.URL, attempt, maxRetries)

		if hook.AuthType == "BEARER" {
			req.Header.Set("Authorization", "Bearer "+hook.AuthValue)
		} else if hook.AuthHeader != "" {
			req.Header.Set(hook.AuthHeader, hook.AuthValue)
		}

		resp, err = wm.client.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			wm.logDelivery(hook.ID, clientID, signal, "SUCCESS", resp.StatusCode, "", attempt)
			if resp.Body != nil {
				resp.Body.Close()
			}
			return
		}

		if attempt < maxRetries {
			time.Sleep(time.Duration(hook.RetryDelaySeconds) * time.Second)
		}
	}

	status := "FAILED"
	errMsg := ""
	statusCode := 0
	if err != nil {
		errMsg = err.Error()
	} else if resp != nil {
		statusCode = resp.StatusCode
		resp.Body.Close()
	}

	wm.logDelivery(hook.ID, clientID, signal, status, statusCode, errMsg, maxRetries)
}

func (wm *WebhookManager) logDelivery(webhookID int, clientID int64, signal, status string, code int, errMsg string, attempt int) {
	entry := &models.WebhookDelivery{
		WebhookID:    webhookID,
		ClientID:     clientID,
		ActionSignal: signal,
		TriggeredAt:  time.Now(),
		Status:       status,
		RetryAttempt: attempt,
	}
	if code != 0 {
		entry.HTTPStatusCode = &code
	}
	if errMsg != "" {
		entry.ErrorMessage = errMsg
	}

	if dbErr := wm.repo.SaveWebhookDelivery(entry); dbErr != nil {
		log.Printf("⚠️  Failed to save webhook delivery log: %v", dbErr)
	}
}
