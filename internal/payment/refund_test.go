package payment

import (
	"context"
	"errors"
	"testing"

	"paybyrd-bridge/internal/order"
	"paybyrd-bridge/internal/paybyrd"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func paidOrder() *order.Order {
	o := checkoutOrder()
	o.PaymentStatus = order.PaymentPaid
	o.OrderStatus = order.StatusProcessing
	return o
}

func TestRefunder_Refund(t *testing.T) {
	ctx := context.Background()

	t.Run("Full_FirstSuccessTransaction", func(t *testing.T) {
		client := new(MockProviderClient)
		store := new(MockOrderStore)
		r := NewRefunder(client, store)
		o := paidOrder()

		client.On("GetOrder", mock.Anything, "live-key", o.GUID.String()).Return(&paybyrd.Order{
			OrderRef: "npc_10",
			Status:   "paid",
			Transactions: []paybyrd.Transaction{
				{TransactionID: "T0", Status: "Failed"},
				{TransactionID: "T1", Status: "Success"},
				{TransactionID: "T2", Status: "Success"},
			},
		}, nil)
		client.On("CreateRefund", mock.Anything, "live-key", "T1", int64(1999)).Return(nil)
		store.On("UpdateOrder", mock.Anything, mock.MatchedBy(func(u *order.Order) bool {
			return u.ID == 10 && u.PaymentStatus == order.PaymentRefunded && u.OrderStatus == order.StatusProcessing
		})).Return(nil)

		res, err := r.Refund(ctx, o, decimal.RequireFromString("19.999"), false, liveSettings())
		require.NoError(t, err)
		assert.Equal(t, order.PaymentRefunded, res.NewPaymentStatus)
		assert.Empty(t, res.Errors)
		client.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("Partial", func(t *testing.T) {
		client := new(MockProviderClient)
		store := new(MockOrderStore)
		r := NewRefunder(client, store)
		o := paidOrder()
		s := liveSettings()
		s.EnableTestMode = true

		client.On("GetOrder", mock.Anything, "test-key", o.GUID.String()).Return(&paybyrd.Order{
			OrderRef:     "npc_10",
			Status:       "paid",
			Transactions: []paybyrd.Transaction{{TransactionID: "T1", Status: "Success"}},
		}, nil)
		client.On("CreateRefund", mock.Anything, "test-key", "T1", int64(500)).Return(nil)
		store.On("UpdateOrder", mock.Anything, mock.MatchedBy(func(u *order.Order) bool {
			return u.PaymentStatus == order.PaymentPartiallyRefunded
		})).Return(nil)

		res, err := r.Refund(ctx, o, decimal.NewFromInt(5), true, s)
		require.NoError(t, err)
		assert.Equal(t, order.PaymentPartiallyRefunded, res.NewPaymentStatus)
	})

	t.Run("NoEligibleTransaction_NoRefundCall", func(t *testing.T) {
		client := new(MockProviderClient)
		store := new(MockOrderStore)
		r := NewRefunder(client, store)
		o := paidOrder()

		client.On("GetOrder", mock.Anything, "live-key", o.GUID.String()).Return(&paybyrd.Order{
			OrderRef:     "npc_10",
			Status:       "paid",
			Transactions: []paybyrd.Transaction{{TransactionID: "T0", Status: "Pending"}},
		}, nil)

		res, err := r.Refund(ctx, o, decimal.NewFromInt(10), false, liveSettings())
		assert.ErrorIs(t, err, ErrRefundNoEligibleTransaction)
		assert.NotEmpty(t, res.Errors)
		assert.Empty(t, res.NewPaymentStatus)
		client.AssertNotCalled(t, "CreateRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything)
	})

	t.Run("ProviderRejected_NoMutation", func(t *testing.T) {
		client := new(MockProviderClient)
		store := new(MockOrderStore)
		r := NewRefunder(client, store)
		o := paidOrder()

		client.On("GetOrder", mock.Anything, mock.Anything, mock.Anything).Return(&paybyrd.Order{
			OrderRef:     "npc_10",
			Status:       "paid",
			Transactions: []paybyrd.Transaction{{TransactionID: "T1", Status: "Success"}},
		}, nil)
		client.On("CreateRefund", mock.Anything, mock.Anything, "T1", int64(1000)).
			Return(&paybyrd.Error{Op: "refund", StatusCode: 422, Body: `{"message":"already refunded"}`})

		res, err := r.Refund(ctx, o, decimal.NewFromInt(10), false, liveSettings())
		assert.ErrorIs(t, err, ErrRefundProviderRejected)
		assert.ErrorIs(t, err, ErrProviderRequestFailed)

		var perr *ProviderError
		require.True(t, errors.As(err, &perr))
		assert.Contains(t, perr.Body, "already refunded")
		assert.Contains(t, res.Errors[0], "already refunded")
		store.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything)
	})

	t.Run("GetOrderFails", func(t *testing.T) {
		client := new(MockProviderClient)
		store := new(MockOrderStore)
		r := NewRefunder(client, store)

		client.On("GetOrder", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &paybyrd.Error{Op: "get order", StatusCode: 404, Body: "not found"})

		_, err := r.Refund(ctx, paidOrder(), decimal.NewFromInt(10), false, liveSettings())
		assert.ErrorIs(t, err, ErrProviderRequestFailed)
		assert.NotErrorIs(t, err, ErrRefundProviderRejected)
		client.AssertNotCalled(t, "CreateRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		client := new(MockProviderClient)
		r := NewRefunder(client, new(MockOrderStore))

		_, err := r.Refund(ctx, paidOrder(), decimal.Zero, false, liveSettings())
		assert.ErrorIs(t, err, ErrInvalidRefundAmount)
		client.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything, mock.Anything)
	})
}
