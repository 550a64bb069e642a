package handler

import (
	"net/http"

	"paybyrd-bridge/internal/locale"
	"paybyrd-bridge/internal/logger"
	"paybyrd-bridge/internal/notify"
	"paybyrd-bridge/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutHandler handles GET /checkout/{orderId}. The storefront sends the
// shopper here right after placing an order; the shopper leaves for the
// Paybyrd hosted form.
func (h *Handler) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx := locale.WithCulture(r.Context(), requestCulture(r))
	log := logger.FromCtx(ctx)

	orderID, ok := utils.ParsePositiveInt(chi.URLParam(r, "orderId"))
	if !ok {
		h.notice(ctx, notify.Error, locale.OrderNotFound)
		redirect(w, r, HomePath)
		return
	}

	o, err := h.Orders.GetOrderByID(ctx, orderID)
	if err != nil || o == nil {
		if err != nil {
			log.Error("failed to load order for checkout", zap.Int("order_id", orderID), zap.Error(err))
		}
		h.notice(ctx, notify.Error, locale.OrderNotFound)
		redirect(w, r, HomePath)
		return
	}
	if o.LanguageCulture != "" {
		ctx = locale.WithCulture(ctx, o.LanguageCulture)
	}

	s, err := h.loadSettings(ctx)
	if err != nil {
		h.notice(ctx, notify.Error, locale.OrderCreationError)
		redirect(w, r, HomePath)
		return
	}

	session, err := h.Checkout.CreateSession(ctx, o, o.Customer, s)
	if err != nil {
		log.Error("checkout session failed", zap.Int("order_id", orderID), zap.Error(err))
		h.notice(ctx, notify.Error, locale.OrderCreationError)
		redirect(w, r, HomePath)
		return
	}

	redirect(w, r, session.RedirectURL)
}
