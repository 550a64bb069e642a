package paybyrd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"paybyrd-bridge/internal/logger"
	"paybyrd-bridge/internal/metrics"

	"go.uber.org/zap"
)

const (
	DefaultAPIURL        = "https://gateway.paybyrd.com/api/v2"
	DefaultWebhookAPIURL = "https://webhook.paybyrd.com/api/v1"
	DefaultTimeout       = 15 * time.Second

	apiKeyHeader = "X-API-Key"
)

type Options struct {
	APIURL        string
	WebhookAPIURL string
	Timeout       time.Duration
	HTTPClient    *http.Client
	// Metrics receives per-operation call durations, e.g.
	// "paybyrd.get_order.count". Optional.
	Metrics *metrics.Registry
}

// Client talks to the Paybyrd order, refund and webhook APIs. The API key is
// passed per call because it depends on the store scope's test mode.
type Client struct {
	apiURL        string
	webhookAPIURL string
	timeout       time.Duration
	httpClient    *http.Client
	metrics       *metrics.Registry
}

func NewClient(opts Options) *Client {
	if opts.APIURL == "" {
		opts.APIURL = DefaultAPIURL
	}
	if opts.WebhookAPIURL == "" {
		opts.WebhookAPIURL = DefaultWebhookAPIURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewRegistry()
	}

	return &Client{
		apiURL:        strings.TrimRight(opts.APIURL, "/"),
		webhookAPIURL: strings.TrimRight(opts.WebhookAPIURL, "/"),
		timeout:       opts.Timeout,
		httpClient:    opts.HTTPClient,
		metrics:       opts.Metrics,
	}
}

func (c *Client) CreateOrder(ctx context.Context, apiKey string, req CreateOrderRequest) (*CreateOrderResponse, error) {
	var res CreateOrderResponse
	if err := c.do(ctx, "create order", apiKey, http.MethodPost, c.apiURL+"/orders", req, &res); err != nil {
		return nil, err
	}
	if err := res.validate(); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetOrder(ctx context.Context, apiKey, orderID string) (*Order, error) {
	var res Order
	endpoint := c.apiURL + "/orders/" + url.PathEscape(orderID)
	if err := c.do(ctx, "get order", apiKey, http.MethodGet, endpoint, nil, &res); err != nil {
		return nil, err
	}
	if err := res.validate(); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateRefund(ctx context.Context, apiKey, transactionID string, isoAmount int64) error {
	endpoint := c.apiURL + "/refund/" + url.PathEscape(transactionID)
	return c.do(ctx, "refund", apiKey, http.MethodPost, endpoint, RefundRequest{ISOAmount: isoAmount}, nil)
}

func (c *Client) CreateWebhookSubscription(ctx context.Context, apiKey string, req WebhookSubscriptionRequest) (*WebhookSubscription, error) {
	if req.PaymentMethods == nil {
		req.PaymentMethods = []string{}
	}
	if req.CredentialType == "" {
		req.CredentialType = CredentialTypeAPIKey
	}

	var res WebhookSubscription
	if err := c.do(ctx, "create webhook", apiKey, http.MethodPost, c.webhookAPIURL+"/settings", req, &res); err != nil {
		return nil, err
	}
	if err := res.validate(); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) do(ctx context.Context, op, apiKey, method, endpoint string, in, out any) error {
	log := logger.FromCtx(ctx).With(
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", endpoint),
	)
	defer metrics.StartTimer().ObserveInto(c.metrics, "paybyrd."+strings.ReplaceAll(op, " ", "_"))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			log.Error("Failed to marshal paybyrd request", zap.Error(err))
			return fmt.Errorf("marshal %s request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return &Error{Op: op, Err: err}
	}
	req.Header.Set(apiKeyHeader, apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Info("Sending request to Paybyrd")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("Paybyrd request failed", zap.Error(err))
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return &Error{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("Paybyrd returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return &Error{Op: op, StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	if out != nil {
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			log.Error("Failed decoding Paybyrd response",
				zap.Error(err),
				zap.ByteString("response", bodyBytes),
			)
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	log.Info("Paybyrd request succeeded", zap.Int("status", resp.StatusCode))
	return nil
}
