package payment

import (
	"context"
	"fmt"

	"paybyrd-bridge/internal/logger"
	"paybyrd-bridge/internal/metrics"
	"paybyrd-bridge/internal/order"
	"paybyrd-bridge/internal/settings"

	"go.uber.org/zap"
)

type Result struct {
	Outcome    Outcome
	MessageKey string
	OrderID    int
	// Culture is the order's language culture, used to localize the
	// shopper-facing notice.
	Culture string
	Mutated bool
}

// Reconciler applies a provider status to the local order. It is shared by
// the return path and the webhook; neither holds a lock across the
// read-modify-write, so two concurrent deliveries for the same order may
// both write. Both write the same target for the same status.
type Reconciler struct {
	store   order.Repository
	metrics *metrics.Registry
}

func NewReconciler(store order.Repository, m *metrics.Registry) *Reconciler {
	if m == nil {
		m = metrics.NewRegistry()
	}
	return &Reconciler{store: store, metrics: m}
}

func (r *Reconciler) Reconcile(ctx context.Context, orderRef, providerStatus string, s *settings.Settings) (Result, error) {
	defer metrics.StartTimer().ObserveInto(r.metrics, "reconcile.duration")

	ctx = logger.WithFields(ctx, zap.String("order_ref", orderRef), zap.String("provider_status", providerStatus))
	log := logger.FromCtx(ctx)

	orderID, err := ParseOrderRef(orderRef)
	if err != nil {
		r.metrics.Inc("reconcile.invalid_reference")
		log.Warn("rejecting order reference")
		return Result{}, err
	}

	o, err := r.store.GetOrderByID(ctx, orderID)
	if err != nil {
		log.Error("failed to load order", zap.Error(err))
		return Result{}, fmt.Errorf("reconcile %s: %w", orderRef, err)
	}
	if o == nil {
		r.metrics.Inc("reconcile.order_not_found")
		log.Warn("order not found", zap.Int("order_id", orderID))
		return Result{}, fmt.Errorf("%w: %d", ErrOrderNotFound, orderID)
	}

	d := Translate(providerStatus, s.EnableTestMode, s.PostPaymentOrderStatus)
	res := Result{Outcome: d.Outcome, MessageKey: d.MessageKey, OrderID: o.ID, Culture: o.LanguageCulture}

	if d.NoOp {
		r.metrics.Inc("reconcile." + string(d.Outcome))
		log.Info("no order change for provider status", zap.String("outcome", string(d.Outcome)))
		return res, nil
	}
	if o.PaymentStatus == d.PaymentStatus && o.OrderStatus == d.OrderStatus {
		r.metrics.Inc("reconcile.unchanged")
		log.Info("order already reconciled", zap.String("outcome", string(d.Outcome)))
		return res, nil
	}

	updated := *o
	updated.PaymentStatus = d.PaymentStatus
	updated.OrderStatus = d.OrderStatus
	if err := r.store.UpdateOrder(ctx, &updated); err != nil {
		log.Error("failed to update order", zap.Error(err))
		return Result{}, fmt.Errorf("reconcile %s: %w", orderRef, err)
	}

	log.Info("order reconciled",
		zap.Int("order_id", o.ID),
		zap.String("payment_status", string(d.PaymentStatus)),
		zap.String("order_status", string(d.OrderStatus)),
		zap.String("previous_payment_status", string(o.PaymentStatus)),
		zap.String("previous_order_status", string(o.OrderStatus)),
	)
	r.metrics.Inc("reconcile." + string(d.Outcome))
	res.Mutated = true
	return res, nil
}
