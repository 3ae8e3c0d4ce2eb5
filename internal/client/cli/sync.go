package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/progresskeeper/internal/client/app"
)

func newSyncCommand(c *Cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Merge with the server and send all local changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), c.runSync)
		},
	}
}

func (c *Cli) runSync(ctx context.Context, a *app.App) error {
	c.io.Println("=== Synchronization ===")

	if !a.Online() {
		return fmt.Errorf("server is unavailable, progress is kept locally")
	}

	for _, collection := range app.Collections {
		result, ok := a.Merge(collection)
		if !ok {
			continue
		}
		c.io.Printf("%-12s merged %d, local newer %d", collection+":", len(result.Merged), len(result.LocalWins))
		if result.Skipped > 0 {
			c.io.Printf(", skipped %d", result.Skipped)
		}
		c.io.Println()
	}

	if err := a.Sync(ctx); err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	if dirty := a.Coordinator().DirtyCount(); dirty > 0 {
		return fmt.Errorf("synchronization incomplete: %d record(s) not sent", dirty)
	}

	c.io.Println()
	c.io.Println("✓ Synchronization completed successfully!")

	return nil
}
