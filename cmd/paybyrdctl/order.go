package main

import (
	"fmt"

	"paybyrd-bridge/internal/payment"

	"github.com/spf13/cobra"
)

func (c *cli) orderCmd() *cobra.Command {
	var scope int

	cmd := &cobra.Command{
		Use:   "order <providerOrderId>",
		Short: "Fetch a Paybyrd order and show how it would reconcile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.loadConfig()
			if !cmd.Flags().Changed("scope") {
				scope = cfg.StoreScope
			}

			store, closeStore, err := c.openStore(cfg)
			if err != nil {
				return fmt.Errorf("open settings store: %w", err)
			}
			defer closeStore()

			s, err := store.Load(cmd.Context(), scope)
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}

			po, err := c.newClient(cfg).GetOrder(cmd.Context(), s.APIKey(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Order:      %s\n", args[0])
			fmt.Fprintf(out, "Reference:  %s\n", po.OrderRef)
			fmt.Fprintf(out, "Status:     %s\n", po.Status)
			fmt.Fprintf(out, "Test mode:  %t\n", s.EnableTestMode)

			if len(po.Transactions) == 0 {
				fmt.Fprintln(out, "Transactions: none")
			} else {
				fmt.Fprintln(out, "Transactions:")
				for _, tx := range po.Transactions {
					fmt.Fprintf(out, "  %-36s %s\n", tx.TransactionID, tx.Status)
				}
			}
			if tx, ok := po.FirstSuccessfulTransaction(); ok {
				fmt.Fprintf(out, "Refundable: %s\n", tx.TransactionID)
			}

			if _, err := payment.ParseOrderRef(po.OrderRef); err != nil {
				fmt.Fprintf(out, "Reconcile:  rejected (%v)\n", err)
				return nil
			}
			printDecision(out, payment.Translate(po.Status, s.EnableTestMode, s.PostPaymentOrderStatus))
			return nil
		},
	}

	cmd.Flags().IntVarP(&scope, "scope", "s", 0, "store scope whose settings pick the API key (default STORE_SCOPE)")
	return cmd
}
