package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/progresskeeper/internal/client/app"
	"github.com/iudanet/progresskeeper/internal/client/storage"
)

func newLogoutCommand(c *Cli) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Delete the local device session",
		Long: `Delete the local device session.

The device secret is not stored anywhere else: after logout the next login
creates a new anonymous player on the server. Local progress is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLogout(cmd.Context(), yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func (c *Cli) runLogout(ctx context.Context, yes bool) error {
	c.io.Println("=== Logout ===")

	if !yes {
		ok, err := c.io.Confirm("The device secret will be lost. Continue?")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			c.io.Println("Cancelled.")
			return nil
		}
	}

	store, authService, err := app.Open(ctx, c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			c.logger.Error("failed to close database", "error", err)
		}
	}()

	if err := authService.Logout(ctx); err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			c.io.Println("Not logged in.")
			return nil
		}
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Logout successful!")
	c.io.Println("Your local session has been deleted.")

	return nil
}
