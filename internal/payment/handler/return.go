package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"paybyrd-bridge/internal/locale"
	"paybyrd-bridge/internal/logger"
	"paybyrd-bridge/internal/notify"
	"paybyrd-bridge/internal/payment"

	"go.uber.org/zap"
)

var providerOrderIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// PaymentReturnHandler handles GET /payment/return?orderId=<provider order id>,
// where the hosted form sends the shopper after paying. It always redirects.
func (h *Handler) PaymentReturnHandler(w http.ResponseWriter, r *http.Request) {
	ctx := locale.WithCulture(r.Context(), requestCulture(r))

	providerOrderID := r.URL.Query().Get("orderId")
	if !providerOrderIDPattern.MatchString(providerOrderID) {
		logger.FromCtx(ctx).Warn("payment return without a usable order id", zap.String("order_id", providerOrderID))
		h.notice(ctx, notify.Error, locale.OrderNotFound)
		redirect(w, r, HomePath)
		return
	}

	ctx = logger.WithFields(ctx, zap.String("provider_order_id", providerOrderID))
	log := logger.FromCtx(ctx)

	s, err := h.loadSettings(ctx)
	if err != nil {
		h.notice(ctx, notify.Error, locale.OrderStatusError)
		redirect(w, r, HomePath)
		return
	}

	po, err := h.Client.GetOrder(ctx, s.APIKey(), providerOrderID)
	if err != nil {
		log.Error("failed to fetch Paybyrd order on return", zap.Error(err))
		h.notice(ctx, notify.Error, locale.OrderStatusError)
		redirect(w, r, HomePath)
		return
	}

	res, err := h.Reconciler.Reconcile(ctx, po.OrderRef, po.Status, s)
	if err != nil {
		key := locale.OrderStatusError
		if errors.Is(err, payment.ErrOrderNotFound) || errors.Is(err, payment.ErrInvalidReference) {
			key = locale.OrderNotFound
		}
		h.notice(ctx, notify.Error, key)
		redirect(w, r, HomePath)
		return
	}

	if res.Culture != "" {
		ctx = locale.WithCulture(ctx, res.Culture)
	}
	completed := CompletedPath + strconv.Itoa(res.OrderID)

	switch res.Outcome {
	case payment.OutcomePaid:
		redirect(w, r, completed)
	case payment.OutcomeTestPaid:
		h.notice(ctx, notify.Warning, res.MessageKey)
		redirect(w, r, completed)
	case payment.OutcomeRefunded:
		h.notice(ctx, notify.Success, res.MessageKey)
		redirect(w, r, CartPath)
	case payment.OutcomeUnrecognized:
		h.notice(ctx, notify.Warning, res.MessageKey)
		redirect(w, r, CartPath)
	default:
		h.notice(ctx, notify.Error, res.MessageKey)
		redirect(w, r, CartPath)
	}
}
