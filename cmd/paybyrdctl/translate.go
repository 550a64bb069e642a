package main

import (
	"fmt"
	"io"

	"paybyrd-bridge/internal/payment"
	"paybyrd-bridge/internal/settings"

	"github.com/spf13/cobra"
)

func (c *cli) translateCmd() *cobra.Command {
	var testMode bool
	var policy string

	cmd := &cobra.Command{
		Use:   "translate <status>",
		Short: "Show the local order change a Paybyrd status maps to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePolicy(policy)
			if err != nil {
				return err
			}
			printDecision(cmd.OutOrStdout(), payment.Translate(args[0], testMode, p))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&testMode, "test-mode", "t", false, "translate as if test mode were enabled")
	cmd.Flags().StringVarP(&policy, "policy", "p", "processing", "post-payment order status: processing or complete")
	return cmd
}

func parsePolicy(v string) (settings.PostPaymentPolicy, error) {
	switch v {
	case "processing":
		return settings.PolicyProcessing, nil
	case "complete":
		return settings.PolicyComplete, nil
	}
	return 0, fmt.Errorf("unknown policy %q (use processing or complete)", v)
}

func printDecision(out io.Writer, d payment.Decision) {
	fmt.Fprintf(out, "Outcome:    %s\n", d.Outcome)
	if d.NoOp {
		fmt.Fprintln(out, "Change:     none")
	} else {
		fmt.Fprintf(out, "Payment:    %s\n", d.PaymentStatus)
		fmt.Fprintf(out, "Order:      %s\n", d.OrderStatus)
	}
	fmt.Fprintf(out, "Message:    %s\n", d.MessageKey)
}
