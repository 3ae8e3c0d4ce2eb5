package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/progresskeeper/internal/client/app"
	"github.com/iudanet/progresskeeper/internal/validation"
)

type playOptions struct {
	currency string
	clicks   int
	interval time.Duration
	reward   float64
}

func newPlayCommand(c *Cli) *cobra.Command {
	opts := playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Simulate a play session: a burst of currency rewards",
		Long: `Simulate a play session: every click rewards currency.

Rapid clicks are coalesced by the debounce timer; every --threshold local
flushes the accumulated changes are committed to the server.
Interrupting the session (Ctrl+C) still saves and sends the progress.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.clicks <= 0 {
				return fmt.Errorf("clicks must be positive")
			}
			if opts.reward <= 0 {
				return fmt.Errorf("reward must be positive")
			}
			if err := validation.ValidateDocumentID(opts.currency); err != nil {
				return fmt.Errorf("invalid currency type: %w", err)
			}

			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				return c.runPlay(ctx, a, opts)
			})
		},
	}

	cmd.Flags().IntVar(&opts.clicks, "clicks", 10, "number of clicks")
	cmd.Flags().DurationVar(&opts.interval, "interval", 200*time.Millisecond, "pause between clicks")
	cmd.Flags().StringVar(&opts.currency, "currency", "gold", "rewarded currency")
	cmd.Flags().Float64Var(&opts.reward, "reward", 1, "currency per click")

	return cmd
}

func (c *Cli) runPlay(ctx context.Context, a *app.App, opts playOptions) error {
	coordinator := a.Coordinator()

	clicks := 0
loop:
	for clicks < opts.clicks {
		if _, err := a.Currencies.Add(opts.currency, opts.reward); err != nil {
			return err
		}
		clicks++

		if clicks == opts.clicks {
			break
		}

		select {
		case <-ctx.Done():
			c.io.Println("Interrupted, saving progress...")
			break loop
		case <-time.After(opts.interval):
		}
	}

	c.io.Printf("Clicks: %d\n", clicks)
	c.io.Printf("%s: %.2f\n", opts.currency, a.Currencies.Balance(opts.currency))
	c.io.Printf("Pending: %d, waiting for server: %d, local flushes since last commit: %d\n",
		coordinator.PendingCount(), coordinator.DirtyCount(), coordinator.LocalFlushCount())

	return nil
}
