package webhook

import (
	"context"
	"encoding/json"

	"paybyrd-bridge/internal/order"
	"paybyrd-bridge/internal/settings"

	"github.com/stretchr/testify/mock"
)

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

type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) GetOrderByID(ctx context.Context, id int) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderStore) UpdateOrder(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockWebhookRepository struct {
	mock.Mock
}

func (m *MockWebhookRepository) SaveWebhook(ctx context.Context, provider, status, orderRef string, payload json.RawMessage) (int64, bool, error) {
	args := m.Called(ctx, provider, status, orderRef, payload)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockWebhookRepository) MarkWebhookProcessed(ctx context.Context, webhookID int64, outcome string) error {
	args := m.Called(ctx, webhookID, outcome)
	return args.Error(0)
}

func (m *MockWebhookRepository) MarkWebhookFailed(ctx context.Context, webhookID int64, reason string) error {
	args := m.Called(ctx, webhookID, reason)
	return args.Error(0)
}
