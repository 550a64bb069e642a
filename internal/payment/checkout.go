package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"paybyrd-bridge/internal/logger"
	"paybyrd-bridge/internal/order"
	"paybyrd-bridge/internal/paybyrd"
	"paybyrd-bridge/internal/settings"

	"go.uber.org/zap"
)

// HostedFormConfig customizes the Paybyrd hosted form. It travels to the
// front end as base64(JSON) in the "configs" query parameter.
type HostedFormConfig struct {
	RedirectURL        string         `json:"redirectUrl"`
	Locale             string         `json:"locale"`
	OrderID            string         `json:"orderId"`
	CheckoutKey        string         `json:"checkoutKey"`
	Theme              settings.Theme `json:"theme"`
	AutoRedirect       bool           `json:"autoRedirect"`
	ShowCancelButton   bool           `json:"showCancelButton"`
	SkipATMSuccessPage bool           `json:"skipATMSuccessPage"`
}

func (c HostedFormConfig) Encode() (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func DecodeHostedFormConfig(encoded string) (*HostedFormConfig, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	var c HostedFormConfig
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// SessionHandle is what the shopper needs to reach the hosted form. Nothing
// in it is persisted locally.
type SessionHandle struct {
	ProviderOrderID string
	CheckoutKey     string
	Configs         string
	RedirectURL     string
}

type CheckoutInitiator struct {
	client        ProviderClient
	returnURL     string
	hostedFormURL string
}

// NewCheckoutInitiator takes the absolute return-path URL the hosted form
// sends the shopper back to, and the hosted form base URL.
func NewCheckoutInitiator(client ProviderClient, returnURL, hostedFormURL string) *CheckoutInitiator {
	return &CheckoutInitiator{
		client:        client,
		returnURL:     returnURL,
		hostedFormURL: hostedFormURL,
	}
}

func (c *CheckoutInitiator) CreateSession(ctx context.Context, o *order.Order, customer order.Customer, s *settings.Settings) (*SessionHandle, error) {
	ref := FormatOrderRef(o.ID)
	log := logger.FromCtx(ctx).With(
		zap.String("order_ref", ref),
		zap.String("currency", o.CurrencyCode),
		zap.String("amount", o.Total.StringFixed(2)),
		zap.Bool("test_mode", s.EnableTestMode),
	)

	req := paybyrd.CreateOrderRequest{
		Amount:   paybyrd.NewAmount(o.Total),
		Currency: o.CurrencyCode,
		OrderRef: ref,
		Shopper: paybyrd.Shopper{
			Email:     customer.Email,
			FirstName: customer.FirstName,
			LastName:  customer.LastName,
		},
		OrderOptions: paybyrd.OrderOptions{
			Culture:     o.LanguageCulture,
			RedirectURL: c.returnURL,
		},
		PaymentOptions: paybyrd.PaymentOptions{
			UseSimulated: s.EnableTestMode,
			TokenOptions: paybyrd.TokenOptions{CustomReference: customer.Email},
		},
	}

	res, err := c.client.CreateOrder(ctx, s.APIKey(), req)
	if err != nil {
		log.Error("Paybyrd order creation failed", zap.Error(err))
		return nil, providerErr("create order", err)
	}

	cfg := HostedFormConfig{
		RedirectURL:        c.returnURL,
		Locale:             o.LanguageCulture,
		OrderID:            res.OrderID,
		CheckoutKey:        res.CheckoutKey,
		Theme:              s.Theme,
		AutoRedirect:       true,
		ShowCancelButton:   false,
		SkipATMSuccessPage: true,
	}
	configs, err := cfg.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode hosted form config: %w", err)
	}

	log.Info("Paybyrd checkout session created", zap.String("provider_order_id", res.OrderID))

	return &SessionHandle{
		ProviderOrderID: res.OrderID,
		CheckoutKey:     res.CheckoutKey,
		Configs:         configs,
		RedirectURL:     hostedFormRedirect(c.hostedFormURL, res.CheckoutKey, res.OrderID, configs),
	}, nil
}

// hostedFormRedirect appends the query to the hosted form base. The base is a
// hash route ("/#/payment"), so the query goes after the fragment.
func hostedFormRedirect(base, checkoutKey, orderID, configs string) string {
	q := url.Values{}
	q.Set("checkoutKey", checkoutKey)
	q.Set("orderId", orderID)
	q.Set("configs", configs)

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + q.Encode()
}
