package main

import (
	"fmt"

	"paybyrd-bridge/internal/payment"
	"paybyrd-bridge/internal/settings"

	"github.com/spf13/cobra"
)

func (c *cli) webhookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Manage the Paybyrd webhook subscription",
	}
	cmd.AddCommand(c.webhookProvisionCmd())
	return cmd
}

func (c *cli) webhookProvisionCmd() *cobra.Command {
	var scope int
	var save bool

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create a webhook subscription with the live key and print its secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.loadConfig()
			if !cmd.Flags().Changed("scope") {
				scope = cfg.StoreScope
			}

			store, closeStore, err := c.openStore(cfg)
			if err != nil {
				return fmt.Errorf("open settings store: %w", err)
			}
			defer closeStore()

			s, err := store.Load(ctx, scope)
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			if s.LiveAPIKey == "" {
				return payment.ErrLiveAPIKeyRequired
			}

			configurator := payment.NewConfigurator(c.newClient(cfg), store, cfg.WebhookURL())
			id, err := configurator.ProvisionWebhook(ctx, s.LiveAPIKey)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Webhook URL: %s\n", cfg.WebhookURL())
			fmt.Fprintf(out, "Webhook ID:  %s\n", id)

			if !save {
				return nil
			}
			overrides, err := store.LoadOverrides(ctx, scope)
			if err != nil {
				return fmt.Errorf("load setting overrides: %w", err)
			}
			s.WebhookID = id
			if scope != 0 {
				if overrides == nil {
					overrides = settings.Overrides{}
				}
				overrides[settings.FieldWebhookID] = true
			}
			if err := store.Save(ctx, s, overrides, scope); err != nil {
				return fmt.Errorf("save settings: %w", err)
			}
			fmt.Fprintf(out, "Saved to scope %d\n", scope)
			return nil
		},
	}

	cmd.Flags().IntVarP(&scope, "scope", "s", 0, "store scope to read the live key from (default STORE_SCOPE)")
	cmd.Flags().BoolVar(&save, "save", false, "store the new webhook id in the settings")
	return cmd
}
