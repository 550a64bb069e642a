package payment

import (
	"errors"
	"fmt"

	"paybyrd-bridge/internal/order"
	"paybyrd-bridge/internal/paybyrd"
)

var (
	ErrInvalidReference            = errors.New("invalid order reference")
	ErrOrderNotFound               = order.ErrOrderNotFound
	ErrUnauthorized                = errors.New("unauthorized")
	ErrMalformedPayload            = errors.New("malformed payload")
	ErrUnrecognizedStatus          = errors.New("unsupported payment status")
	ErrProviderRequestFailed       = errors.New("provider request failed")
	ErrRefundNoEligibleTransaction = errors.New("no successful transaction to refund")
	ErrRefundProviderRejected      = errors.New("refund rejected by provider")
	ErrInvalidRefundAmount         = errors.New("refund amount must be positive")
	ErrLiveAPIKeyRequired          = errors.New("live api key is required")
	ErrInvalidPolicy               = errors.New("invalid post-payment order status")
)

// ProviderError is a Paybyrd call that did not succeed: a non-2xx response
// (StatusCode and raw Body set) or no response at all (StatusCode 0).
type ProviderError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: provider unreachable: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: provider returned %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrProviderRequestFailed}
	}
	return []error{ErrProviderRequestFailed, e.Err}
}

// providerErr maps a client error onto the payment taxonomy.
func providerErr(op string, err error) error {
	if errors.Is(err, paybyrd.ErrMalformedResponse) {
		return fmt.Errorf("%s: %w: %w", op, ErrMalformedPayload, err)
	}

	perr := &ProviderError{Op: op, Err: err}
	var cerr *paybyrd.Error
	if errors.As(err, &cerr) {
		perr.StatusCode = cerr.StatusCode
		perr.Body = cerr.Body
	}
	return perr
}
