package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/progresskeeper/internal/client/app"
)

func newLoginCommand(c *Cli) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in anonymously or refresh the device session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLogin(cmd.Context())
		},
	}
}

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")

	store, authService, err := app.Open(ctx, c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			c.logger.Error("failed to close database", "error", err)
		}
	}()

	session, err := authService.SignIn(ctx)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	c.io.Println("✓ Login successful!")
	c.io.Printf("User ID: %s\n", session.UserID)
	c.io.Printf("Token expires: %s\n", time.Unix(session.ExpiresAt, 0).Format(time.RFC3339))

	return nil
}
