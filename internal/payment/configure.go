package payment

import (
	"context"
	"fmt"
	"strings"

	"paybyrd-bridge/internal/locale"
	"paybyrd-bridge/internal/logger"
	"paybyrd-bridge/internal/paybyrd"
	"paybyrd-bridge/internal/settings"

	"go.uber.org/zap"
)

type ConfigureResult struct {
	Settings           *settings.Settings
	WebhookProvisioned bool
	// Overrides are the overrides actually saved for the scope.
	Overrides settings.Overrides
	// Warnings holds locale message keys for non-fatal problems.
	Warnings []string
}

// Configurator saves operator settings and provisions the webhook
// subscription the first time a live key is saved.
type Configurator struct {
	client     ProviderClient
	store      settings.Repository
	webhookURL string
	events     []string
}

func NewConfigurator(client ProviderClient, store settings.Repository, webhookURL string) *Configurator {
	return &Configurator{
		client:     client,
		store:      store,
		webhookURL: webhookURL,
		events:     paybyrd.DefaultWebhookEvents,
	}
}

func (c *Configurator) Save(ctx context.Context, input *settings.Settings, overrides settings.Overrides, scope int) (*ConfigureResult, error) {
	log := logger.FromCtx(ctx).With(zap.Int("scope", scope))

	if strings.TrimSpace(input.LiveAPIKey) == "" {
		return nil, ErrLiveAPIKeyRequired
	}
	if !input.PostPaymentOrderStatus.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPolicy, input.PostPaymentOrderStatus)
	}

	current, err := c.store.Load(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	saved := *input
	saved.RestoreSecrets(current)
	if strings.TrimSpace(saved.LiveAPIKey) == "" {
		return nil, ErrLiveAPIKeyRequired
	}

	res := &ConfigureResult{}
	webhookID := current.WebhookID
	if webhookID == "" {
		webhookID, err = c.ProvisionWebhook(ctx, saved.LiveAPIKey)
		if err != nil {
			log.Warn("webhook provisioning failed, saving without webhook id", zap.Error(err))
			res.Warnings = append(res.Warnings, locale.WebhookCreationFailed)
		} else {
			res.WebhookProvisioned = true
		}
	}

	saved.WebhookID = webhookID
	if res.WebhookProvisioned && scope != 0 && !overrides[settings.FieldWebhookID] {
		// A store scope only persists overridden fields; pin the new id so
		// the next save reuses it instead of provisioning again.
		pinned := make(settings.Overrides, len(overrides)+1)
		for k, v := range overrides {
			pinned[k] = v
		}
		pinned[settings.FieldWebhookID] = true
		overrides = pinned
	}
	if err := c.store.Save(ctx, &saved, overrides, scope); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	log.Info("paybyrd settings saved",
		zap.Bool("test_mode", saved.EnableTestMode),
		zap.Bool("webhook_provisioned", res.WebhookProvisioned),
	)
	res.Settings = &saved
	res.Overrides = overrides
	return res, nil
}

// ProvisionWebhook registers this service's webhook URL with Paybyrd using
// the live key and returns the shared secret Paybyrd will send back.
func (c *Configurator) ProvisionWebhook(ctx context.Context, liveAPIKey string) (string, error) {
	sub, err := c.client.CreateWebhookSubscription(ctx, liveAPIKey, paybyrd.WebhookSubscriptionRequest{
		URL:            c.webhookURL,
		CredentialType: paybyrd.CredentialTypeAPIKey,
		Events:         c.events,
		PaymentMethods: []string{},
	})
	if err != nil {
		return "", providerErr("create webhook", err)
	}
	return sub.APIKey(), nil
}
