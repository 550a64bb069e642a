package payment

import (
	"testing"

	"paybyrd-bridge/internal/locale"
	"paybyrd-bridge/internal/order"
	"paybyrd-bridge/internal/settings"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		testMode bool
		policy   settings.PostPaymentPolicy
		want     Decision
	}{
		{
			name: "paid live processing", status: "paid", policy: settings.PolicyProcessing,
			want: Decision{Outcome: OutcomePaid, PaymentStatus: order.PaymentPaid, OrderStatus: order.StatusProcessing, MessageKey: locale.OrderPaid},
		},
		{
			name: "acquirersuccess live complete", status: "acquirersuccess", policy: settings.PolicyComplete,
			want: Decision{Outcome: OutcomePaid, PaymentStatus: order.PaymentPaid, OrderStatus: order.StatusComplete, MessageKey: locale.OrderPaid},
		},
		{
			name: "success live processing", status: "success", policy: settings.PolicyProcessing,
			want: Decision{Outcome: OutcomePaid, PaymentStatus: order.PaymentPaid, OrderStatus: order.StatusProcessing, MessageKey: locale.OrderPaid},
		},
		{
			name: "paid test mode", status: "paid", testMode: true,
			want: Decision{Outcome: OutcomeTestPaid, MessageKey: locale.OrderTestPaid, NoOp: true},
		},
		{
			name: "success test mode", status: "success", testMode: true, policy: settings.PolicyComplete,
			want: Decision{Outcome: OutcomeTestPaid, MessageKey: locale.OrderTestPaid, NoOp: true},
		},
		{
			name: "canceled", status: "canceled",
			want: Decision{Outcome: OutcomeCanceled, PaymentStatus: order.PaymentVoided, OrderStatus: order.StatusCancelled, MessageKey: locale.OrderCanceled},
		},
		{
			name: "canceled test mode", status: "canceled", testMode: true,
			want: Decision{Outcome: OutcomeCanceled, PaymentStatus: order.PaymentVoided, OrderStatus: order.StatusCancelled, MessageKey: locale.OrderCanceled},
		},
		{
			name: "refunded", status: "refunded", testMode: true,
			want: Decision{Outcome: OutcomeRefunded, PaymentStatus: order.PaymentRefunded, OrderStatus: order.StatusComplete, MessageKey: locale.OrderRefunded},
		},
		{
			name: "error", status: "error",
			want: Decision{Outcome: OutcomeProviderError, PaymentStatus: order.PaymentVoided, OrderStatus: order.StatusCancelled, MessageKey: locale.OrderPaymentError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.status, tt.testMode, tt.policy))
		})
	}
}

func TestTranslate_Unrecognized(t *testing.T) {
	for _, status := range []string{"", "pending", "created", "PAID", "Paid", "paid ", "Success", "cancelled", "expired"} {
		for _, testMode := range []bool{false, true} {
			d := Translate(status, testMode, settings.PolicyComplete)
			assert.Equal(t, OutcomeUnrecognized, d.Outcome, status)
			assert.True(t, d.NoOp, status)
			assert.Empty(t, d.PaymentStatus)
			assert.Empty(t, d.OrderStatus)
			assert.Equal(t, locale.OrderNotPaid, d.MessageKey)
		}
	}
}
