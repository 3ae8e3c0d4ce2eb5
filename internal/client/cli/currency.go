package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/progresskeeper/internal/client/app"
	"github.com/iudanet/progresskeeper/internal/validation"
)

func newCurrencyCommand(c *Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency",
		Short: "Inspect and change currency balances",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List currency balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), c.runCurrencyList)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <type> <amount>",
		Short: "Add (or subtract with a negative amount) currency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateDocumentID(args[0]); err != nil {
				return fmt.Errorf("invalid currency type: %w", err)
			}
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				return c.runCurrencyAdd(a, args[0], amount)
			})
		},
	})

	return cmd
}

func (c *Cli) runCurrencyList(ctx context.Context, a *app.App) error {
	for _, currency := range a.Currencies.All() {
		modified := "never"
		if currency.LastModified > 0 {
			modified = time.Unix(currency.LastModified, 0).Format(time.RFC3339)
		}
		c.io.Printf("%-10s %12.2f  %s\n", currency.Type, currency.Amount, modified)
	}
	return nil
}

func (c *Cli) runCurrencyAdd(a *app.App, currency string, amount float64) error {
	balance, err := a.Currencies.Add(currency, amount)
	if err != nil {
		return err
	}

	c.io.Printf("%s: %.2f\n", currency, balance)
	return nil
}
