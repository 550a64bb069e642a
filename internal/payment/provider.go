package payment

import (
	"context"

	"paybyrd-bridge/internal/paybyrd"
)

// ProviderClient is the subset of the Paybyrd API the payment flows use.
// *paybyrd.Client implements it.
type ProviderClient interface {
	CreateOrder(ctx context.Context, apiKey string, req paybyrd.CreateOrderRequest) (*paybyrd.CreateOrderResponse, error)
	GetOrder(ctx context.Context, apiKey, orderID string) (*paybyrd.Order, error)
	CreateRefund(ctx context.Context, apiKey, transactionID string, isoAmount int64) error
	CreateWebhookSubscription(ctx context.Context, apiKey string, req paybyrd.WebhookSubscriptionRequest) (*paybyrd.WebhookSubscription, error)
}

var _ ProviderClient = (*paybyrd.Client)(nil)
