package webhook

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"paybyrd-bridge/internal/logger"
	"paybyrd-bridge/internal/metrics"
	"paybyrd-bridge/internal/payment"
	"paybyrd-bridge/internal/settings"
	"paybyrd-bridge/internal/utils"

	"go.uber.org/zap"
)

const (
	APIKeyHeader = "x-api-key"

	maxBodyBytes = 1 << 20
)

// Payload is the part of a Paybyrd delivery the handler reads.
type Payload struct {
	Content struct {
		Status   string `json:"status"`
		OrderRef string `json:"orderRef"`
	} `json:"content"`
}

type Handler struct {
	settings   settings.Repository
	scope      int
	reconciler *payment.Reconciler
	audit      payment.WebhookRepository
	metrics    *metrics.Registry
}

// NewWebhookHandler wires the handler. audit may be nil, in which case
// deliveries are not recorded.
func NewWebhookHandler(
	store settings.Repository,
	scope int,
	reconciler *payment.Reconciler,
	audit payment.WebhookRepository,
	m *metrics.Registry,
) *Handler {
	if m == nil {
		m = metrics.NewRegistry()
	}
	return &Handler{
		settings:   store,
		scope:      scope,
		reconciler: reconciler,
		audit:      audit,
		metrics:    m,
	}
}

func (h *Handler) PaymentWebhookHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx)

	s, err := h.settings.Load(ctx, h.scope)
	if err != nil {
		log.Error("failed to load paybyrd settings", zap.Error(err))
		utils.WriteJSONMessage(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	if !authorized(r.Header.Get(APIKeyHeader), s.WebhookID) {
		h.metrics.Inc("webhook.unauthorized")
		log.Warn("rejected webhook with invalid api key", zap.String("remote_addr", r.RemoteAddr))
		utils.WriteJSONMessage(w, http.StatusUnauthorized, "Invalid or missing x-api-key")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.metrics.Inc("webhook.bad_payload")
		log.Warn("failed to read webhook body", zap.Error(err))
		utils.WriteJSONMessage(w, http.StatusBadRequest, "Invalid webhook payload")
		return
	}
	defer r.Body.Close()

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil ||
		payload.Content.Status == "" || payload.Content.OrderRef == "" {
		h.metrics.Inc("webhook.bad_payload")
		log.Warn("invalid webhook payload", zap.ByteString("payload", body))
		utils.WriteJSONMessage(w, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	status := payload.Content.Status
	orderRef := payload.Content.OrderRef
	log = log.With(zap.String("order_ref", orderRef), zap.String("status", status))
	log.Info("paybyrd webhook received")
	h.metrics.Inc("webhook.received")

	webhookID := h.record(r, status, orderRef, body)

	res, err := h.reconciler.Reconcile(ctx, orderRef, status, s)
	if err != nil {
		h.fail(r, webhookID, err.Error())

		switch {
		case errors.Is(err, payment.ErrInvalidReference):
			utils.WriteJSONMessage(w, http.StatusBadRequest, "Invalid orderRef format")
		case errors.Is(err, payment.ErrOrderNotFound):
			utils.WriteJSONMessage(w, http.StatusNotFound, "Order not found")
		default:
			log.Error("webhook processing failed", zap.Error(err))
			utils.WriteJSONMessage(w, http.StatusInternalServerError, fmt.Sprintf("Failed to process webhook: %v", err))
		}
		return
	}

	switch res.Outcome {
	case payment.OutcomeUnrecognized:
		h.fail(r, webhookID, payment.ErrUnrecognizedStatus.Error())
		utils.WriteJSONMessage(w, http.StatusBadRequest, "Unsupported payment status")
	case payment.OutcomeTestPaid:
		h.processed(r, webhookID, res.Outcome)
		utils.WriteJSONMessage(w, http.StatusOK, "Test webhook processed successfully")
	default:
		h.processed(r, webhookID, res.Outcome)
		utils.WriteJSONMessage(w, http.StatusOK, "Webhook processed successfully. Order status: "+string(res.Outcome))
	}
}

// authorized reports whether the presented key matches the stored
// subscription secret, byte for byte. An empty secret never matches.
func authorized(presented, expected string) bool {
	if presented == "" || expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
}

func (h *Handler) record(r *http.Request, status, orderRef string, body []byte) int64 {
	if h.audit == nil {
		return 0
	}
	id, dup, err := h.audit.SaveWebhook(r.Context(), payment.ProviderPaybyrd, status, orderRef, body)
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to save webhook", zap.Error(err))
		return 0
	}
	if dup {
		h.metrics.Inc("webhook.duplicate")
		logger.FromCtx(r.Context()).Info("webhook redelivered", zap.String("order_ref", orderRef))
	}
	return id
}

func (h *Handler) processed(r *http.Request, id int64, outcome payment.Outcome) {
	if h.audit == nil || id == 0 {
		return
	}
	if err := h.audit.MarkWebhookProcessed(r.Context(), id, string(outcome)); err != nil {
		logger.FromCtx(r.Context()).Error("failed to mark webhook processed", zap.Int64("webhook_id", id), zap.Error(err))
	}
}

func (h *Handler) fail(r *http.Request, id int64, reason string) {
	if h.audit == nil || id == 0 {
		return
	}
	if err := h.audit.MarkWebhookFailed(r.Context(), id, reason); err != nil {
		logger.FromCtx(r.Context()).Error("failed to mark webhook failed", zap.Int64("webhook_id", id), zap.Error(err))
	}
}
