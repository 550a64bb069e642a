package payment

import (
	"context"
	"fmt"

	"paybyrd-bridge/internal/logger"
	"paybyrd-bridge/internal/order"
	"paybyrd-bridge/internal/paybyrd"
	"paybyrd-bridge/internal/settings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type RefundResult struct {
	NewPaymentStatus order.PaymentStatus `json:"newPaymentStatus,omitempty"`
	Errors           []string            `json:"errors,omitempty"`
}

type Refunder struct {
	client ProviderClient
	store  order.Repository
}

func NewRefunder(client ProviderClient, store order.Repository) *Refunder {
	return &Refunder{client: client, store: store}
}

// Refund refunds amount against the first successful transaction of the
// order's Paybyrd order. The local payment status changes only after Paybyrd
// accepted the refund; the order status is left alone.
func (r *Refunder) Refund(ctx context.Context, o *order.Order, amount decimal.Decimal, isPartial bool, s *settings.Settings) (RefundResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int("order_id", o.ID),
		zap.String("order_guid", o.GUID.String()),
		zap.String("amount", amount.String()),
		zap.Bool("partial", isPartial),
	)

	if !amount.IsPositive() {
		return failed(ErrInvalidRefundAmount)
	}

	apiKey := s.APIKey()

	po, err := r.client.GetOrder(ctx, apiKey, o.GUID.String())
	if err != nil {
		log.Error("failed to fetch Paybyrd order for refund", zap.Error(err))
		return failed(providerErr("get order", err))
	}

	tx, ok := po.FirstSuccessfulTransaction()
	if !ok {
		log.Warn("no successful transaction to refund", zap.Int("transactions", len(po.Transactions)))
		return failed(ErrRefundNoEligibleTransaction)
	}

	isoAmount := paybyrd.MinorUnits(amount)
	if err := r.client.CreateRefund(ctx, apiKey, tx.TransactionID, isoAmount); err != nil {
		log.Error("Paybyrd rejected refund",
			zap.String("transaction_id", tx.TransactionID),
			zap.Int64("iso_amount", isoAmount),
			zap.Error(err),
		)
		return failed(fmt.Errorf("%w: %w", ErrRefundProviderRejected, providerErr("refund", err)))
	}

	status := order.PaymentRefunded
	if isPartial {
		status = order.PaymentPartiallyRefunded
	}

	updated := *o
	updated.PaymentStatus = status
	if err := r.store.UpdateOrder(ctx, &updated); err != nil {
		log.Error("refund accepted but order update failed", zap.Error(err))
		return failed(fmt.Errorf("update order after refund: %w", err))
	}

	log.Info("order refunded",
		zap.String("transaction_id", tx.TransactionID),
		zap.Int64("iso_amount", isoAmount),
		zap.String("payment_status", string(status)),
	)
	return RefundResult{NewPaymentStatus: status}, nil
}

func failed(err error) (RefundResult, error) {
	return RefundResult{Errors: []string{err.Error()}}, err
}
