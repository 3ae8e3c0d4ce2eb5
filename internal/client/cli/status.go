package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/progresskeeper/internal/client/app"
)

func newStatusCommand(c *Cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session, clock offset and sync state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), c.runStatus)
		},
	}
}

func (c *Cli) runStatus(ctx context.Context, a *app.App) error {
	status, err := a.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	c.io.Println("=== Status ===")
	c.io.Println()

	if status.Online {
		c.io.Println("Server: online")
		c.io.Printf("User ID: %s\n", status.UserID)
	} else {
		c.io.Println("Server: offline (progress is kept locally)")
	}

	c.io.Printf("Clock offset: %ds\n", status.ClockOffset)
	if status.LastSync > 0 {
		c.io.Printf("Last sync: %s\n", time.Unix(status.LastSync, 0).Format(time.RFC3339))
	} else {
		c.io.Println("Last sync: never")
	}

	c.io.Println()
	for _, collection := range app.Collections {
		c.io.Printf("%-12s %d record(s)\n", collection+":", status.Counts[collection])
	}

	if status.Dirty > 0 {
		c.io.Println()
		c.io.Printf("⚠️  Pending sync: %d record(s) waiting to be sent\n", status.Dirty)
	}

	return nil
}
