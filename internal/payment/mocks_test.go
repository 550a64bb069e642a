package payment

import (
	"context"

	"paybyrd-bridge/internal/order"
	"paybyrd-bridge/internal/paybyrd"
	"paybyrd-bridge/internal/settings"

	"github.com/stretchr/testify/mock"
)

type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) GetOrderByID(ctx context.Context, id int) (*order.Order, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(context.Context, int) *order.Order); ok {
		return fn(ctx, id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderStore) UpdateOrder(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockProviderClient struct {
	mock.Mock
}

func (m *MockProviderClient) CreateOrder(ctx context.Context, apiKey string, req paybyrd.CreateOrderRequest) (*paybyrd.CreateOrderResponse, error) {
	args := m.Called(ctx, apiKey, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paybyrd.CreateOrderResponse), args.Error(1)
}

func (m *MockProviderClient) GetOrder(ctx context.Context, apiKey, orderID string) (*paybyrd.Order, error) {
	args := m.Called(ctx, apiKey, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paybyrd.Order), args.Error(1)
}

func (m *MockProviderClient) CreateRefund(ctx context.Context, apiKey, transactionID string, isoAmount int64) error {
	args := m.Called(ctx, apiKey, transactionID, isoAmount)
	return args.Error(0)
}

func (m *MockProviderClient) CreateWebhookSubscription(ctx context.Context, apiKey string, req paybyrd.WebhookSubscriptionRequest) (*paybyrd.WebhookSubscription, error) {
	args := m.Called(ctx, apiKey, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paybyrd.WebhookSubscription), args.Error(1)
}

type MockSettingsStore struct {
	mock.Mock
}

func (m *MockSettingsStore) Load(ctx context.Context, scope int) (*settings.Settings, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.Settings), args.Error(1)
}

func (m *MockSettingsStore) LoadOverrides(ctx context.Context, scope int) (settings.Overrides, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(settings.Overrides), args.Error(1)
}

func (m *MockSettingsStore) Save(ctx context.Context, s *settings.Settings, overrides settings.Overrides, scope int) error {
	args := m.Called(ctx, s, overrides, scope)
	return args.Error(0)
}

func subscription(apiKey string) *paybyrd.WebhookSubscription {
	sub := &paybyrd.WebhookSubscription{}
	sub.Data.Credential.APIKey = apiKey
	return sub
}
