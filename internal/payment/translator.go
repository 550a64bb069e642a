package payment

import (
	"paybyrd-bridge/internal/locale"
	"paybyrd-bridge/internal/order"
	"paybyrd-bridge/internal/settings"
)

// Outcome classifies a provider status. The string value is what the webhook
// reports back as "Order status: <outcome>".
type Outcome string

const (
	OutcomePaid          Outcome = "paid"
	OutcomeTestPaid      Outcome = "test_paid"
	OutcomeCanceled      Outcome = "canceled"
	OutcomeRefunded      Outcome = "refunded"
	OutcomeProviderError Outcome = "error"
	OutcomeUnrecognized  Outcome = "pending"
)

// Decision is the target local state for a provider status. When NoOp is set
// PaymentStatus and OrderStatus are empty and the order must not be touched.
type Decision struct {
	Outcome       Outcome
	PaymentStatus order.PaymentStatus
	OrderStatus   order.OrderStatus
	MessageKey    string
	NoOp          bool
}

// Translate maps a Paybyrd order status onto local order state. Matching is
// exact and case-sensitive; anything unknown is a no-op.
func Translate(providerStatus string, testMode bool, policy settings.PostPaymentPolicy) Decision {
	switch providerStatus {
	case "paid", "acquirersuccess", "success":
		if testMode {
			return Decision{Outcome: OutcomeTestPaid, MessageKey: locale.OrderTestPaid, NoOp: true}
		}
		target := order.StatusProcessing
		if policy == settings.PolicyComplete {
			target = order.StatusComplete
		}
		return Decision{
			Outcome:       OutcomePaid,
			PaymentStatus: order.PaymentPaid,
			OrderStatus:   target,
			MessageKey:    locale.OrderPaid,
		}
	case "canceled":
		return Decision{
			Outcome:       OutcomeCanceled,
			PaymentStatus: order.PaymentVoided,
			OrderStatus:   order.StatusCancelled,
			MessageKey:    locale.OrderCanceled,
		}
	case "refunded":
		return Decision{
			Outcome:       OutcomeRefunded,
			PaymentStatus: order.PaymentRefunded,
			OrderStatus:   order.StatusComplete,
			MessageKey:    locale.OrderRefunded,
		}
	case "error":
		return Decision{
			Outcome:       OutcomeProviderError,
			PaymentStatus: order.PaymentVoided,
			OrderStatus:   order.StatusCancelled,
			MessageKey:    locale.OrderPaymentError,
		}
	default:
		return Decision{Outcome: OutcomeUnrecognized, MessageKey: locale.OrderNotPaid, NoOp: true}
	}
}
