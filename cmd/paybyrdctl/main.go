// Command paybyrdctl is the operator tool for the Paybyrd bridge: inspect a
// provider order, provision the webhook subscription, preview status
// translation and mint admin tokens.
package main

import (
	"fmt"
	"io"
	"os"

	"paybyrd-bridge/internal/config"
	"paybyrd-bridge/internal/db"
	"paybyrd-bridge/internal/logger"
	"paybyrd-bridge/internal/paybyrd"
	"paybyrd-bridge/internal/payment"
	"paybyrd-bridge/internal/settings"

	"github.com/spf13/cobra"
)

var Version = "dev"

// cli carries the collaborators every subcommand builds on. Tests swap them.
type cli struct {
	out        io.Writer
	loadConfig func() *config.Config
	openStore  func(cfg *config.Config) (settings.Repository, func() error, error)
	newClient  func(cfg *config.Config) payment.ProviderClient
}

func defaultCLI() *cli {
	return &cli{
		out:        os.Stdout,
		loadConfig: config.LoadConfig,
		openStore: func(cfg *config.Config) (settings.Repository, func() error, error) {
			database, err := db.NewDatabase(cfg)
			if err != nil {
				return nil, nil, err
			}
			return settings.NewRepository(database), database.Close, nil
		},
		newClient: func(cfg *config.Config) payment.ProviderClient {
			return paybyrd.NewClient(paybyrd.Options{
				APIURL:        cfg.PaybyrdAPIURL,
				WebhookAPIURL: cfg.PaybyrdWebhookAPIURL,
				Timeout:       cfg.PaybyrdTimeout,
			})
		},
	}
}

func main() {
	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()

	if err := defaultCLI().rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "paybyrdctl",
		Short:         "Operator tool for the Paybyrd payment bridge",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(c.out)

	root.AddCommand(c.orderCmd())
	root.AddCommand(c.webhookCmd())
	root.AddCommand(c.translateCmd())
	root.AddCommand(c.tokenCmd())
	return root
}
