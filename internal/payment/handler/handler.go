// Package handler serves the shopper-facing return path and checkout
// hand-off, plus the operator refund and settings endpoints.
package handler

import (
	"context"
	"net/http"
	"strings"

	"paybyrd-bridge/internal/locale"
	"paybyrd-bridge/internal/logger"
	"paybyrd-bridge/internal/notify"
	"paybyrd-bridge/internal/order"
	"paybyrd-bridge/internal/payment"
	"paybyrd-bridge/internal/settings"

	"go.uber.org/zap"
)

const (
	HomePath      = "/"
	CartPath      = "/cart"
	CompletedPath = "/checkout/completed/"
)

type Handler struct {
	Settings     settings.Repository
	Scope        int
	Orders       order.Repository
	Client       payment.ProviderClient
	Reconciler   *payment.Reconciler
	Checkout     *payment.CheckoutInitiator
	Refunder     *payment.Refunder
	Configurator *payment.Configurator
	Localizer    locale.Localizer
	Notifier     notify.Notifier
}

// notice localizes key for the culture on ctx and hands it to the notifier.
func (h *Handler) notice(ctx context.Context, kind notify.Kind, key string) string {
	msg := h.Localizer.Localize(ctx, key)
	h.Notifier.Notify(ctx, kind, msg)
	return msg
}

func (h *Handler) loadSettings(ctx context.Context) (*settings.Settings, error) {
	s, err := h.Settings.Load(ctx, h.Scope)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load paybyrd settings", zap.Int("scope", h.Scope), zap.Error(err))
	}
	return s, err
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusFound)
}

// requestCulture takes the first Accept-Language tag, if any.
func requestCulture(r *http.Request) string {
	v := r.Header.Get("Accept-Language")
	if v == "" {
		return locale.DefaultCulture
	}
	tag, _, _ := strings.Cut(v, ",")
	tag, _, _ = strings.Cut(tag, ";")
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == "*" {
		return locale.DefaultCulture
	}
	return tag
}
