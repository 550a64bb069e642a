// Package locale holds the shopper- and operator-facing message catalog.
package locale

import (
	"context"
	"strings"
	"sync"
)

// Message keys.
const (
	OrderNotFound         = "paybyrd.order_not_found"
	OrderCanceled         = "paybyrd.order_canceled"
	OrderNotPaid          = "paybyrd.order_not_paid"
	OrderPaymentError     = "paybyrd.order_payment_error"
	OrderRefunded         = "paybyrd.order_refunded"
	OrderPaid             = "paybyrd.order_paid"
	OrderTestPaid         = "paybyrd.order_test_paid"
	OrderCreationError    = "paybyrd.order_creation_error"
	OrderStatusError      = "paybyrd.order_status_error"
	OrderRefundError      = "paybyrd.order_refund_error"
	LiveAPIKeyRequired    = "paybyrd.live_api_key.required"
	WebhookCreationFailed = "paybyrd.webhook_creation_failed"
	SettingsSaved         = "paybyrd.settings_saved"
	PaymentMethodInfo     = "paybyrd.payment_method_description"
)

const DefaultCulture = "en-US"

var english = map[string]string{
	OrderNotFound:         "Order not found.",
	OrderCanceled:         "The order was canceled.",
	OrderNotPaid:          "The order is still being processed.",
	OrderPaymentError:     "There was an error on processing this payment.",
	OrderRefunded:         "The order was refunded.",
	OrderPaid:             "The payment was received.",
	OrderTestPaid:         "The test payment was validated. The order status will not be changed to paid while test mode is enabled.",
	OrderCreationError:    "Paybyrd order creation has failed:",
	OrderStatusError:      "We could not confirm the payment status of this order.",
	OrderRefundError:      "The refund could not be completed.",
	LiveAPIKeyRequired:    "Live Private Key is required",
	WebhookCreationFailed: "The Webhook creation has failed. Try saving again.",
	SettingsSaved:         "The plugin settings were saved.",
	PaymentMethodInfo:     "Pay using Paybyrd Hosted Form and select your preferred payment method to pay, like credit card and others.",
}

var portuguese = map[string]string{
	OrderNotFound:         "Encomenda não encontrada.",
	OrderCanceled:         "A encomenda foi cancelada.",
	OrderNotPaid:          "A encomenda ainda está a ser processada.",
	OrderPaymentError:     "Ocorreu um erro ao processar este pagamento.",
	OrderRefunded:         "A encomenda foi reembolsada.",
	OrderPaid:             "O pagamento foi recebido.",
	OrderTestPaid:         "O pagamento de teste foi validado. O estado da encomenda não será alterado para pago enquanto o modo de teste estiver ativo.",
	OrderCreationError:    "A criação da encomenda na Paybyrd falhou:",
	OrderStatusError:      "Não foi possível confirmar o estado do pagamento desta encomenda.",
	OrderRefundError:      "Não foi possível concluir o reembolso.",
	LiveAPIKeyRequired:    "A chave privada de produção é obrigatória",
	WebhookCreationFailed: "A criação do webhook falhou. Tente guardar novamente.",
}

// Localizer resolves a message key for the caller's culture.
type Localizer interface {
	Localize(ctx context.Context, key string) string
}

// Catalog is an in-memory Localizer keyed by language (the part of the
// culture before the dash). Unknown languages fall back to English; unknown
// keys are returned as-is.
type Catalog struct {
	mu        sync.RWMutex
	resources map[string]map[string]string
}

func NewCatalog() *Catalog {
	c := &Catalog{resources: map[string]map[string]string{}}
	c.Register("en", english)
	c.Register("pt", portuguese)
	return c
}

// Register merges resources for a language, replacing existing keys.
func (c *Catalog) Register(lang string, resources map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lang = strings.ToLower(lang)
	m, ok := c.resources[lang]
	if !ok {
		m = make(map[string]string, len(resources))
		c.resources[lang] = m
	}
	for k, v := range resources {
		m[k] = v
	}
}

func (c *Catalog) Localize(ctx context.Context, key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if m, ok := c.resources[language(CultureFrom(ctx))]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := c.resources["en"][key]; ok {
		return v
	}
	return key
}

func language(culture string) string {
	lang, _, _ := strings.Cut(culture, "-")
	return strings.ToLower(lang)
}

type cultureKey struct{}

func WithCulture(ctx context.Context, culture string) context.Context {
	return context.WithValue(ctx, cultureKey{}, culture)
}

func CultureFrom(ctx context.Context) string {
	if v, ok := ctx.Value(cultureKey{}).(string); ok && v != "" {
		return v
	}
	return DefaultCulture
}
