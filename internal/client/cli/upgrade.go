package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/progresskeeper/internal/client/app"
	"github.com/iudanet/progresskeeper/internal/validation"
)

func newUpgradeCommand(c *Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Inspect and level up upgrades",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List upgrade levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), c.runUpgradeList)
		},
	})

	var by int
	level := &cobra.Command{
		Use:   "level <id>",
		Short: "Raise the level of an upgrade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateDocumentID(args[0]); err != nil {
				return fmt.Errorf("invalid upgrade id: %w", err)
			}

			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				newLevel, err := a.Upgrades.LevelUp(args[0], by)
				if err != nil {
					return err
				}
				c.io.Printf("%s: level %d\n", args[0], newLevel)
				return nil
			})
		},
	}
	level.Flags().IntVar(&by, "by", 1, "levels to add")
	cmd.AddCommand(level)

	return cmd
}

func (c *Cli) runUpgradeList(ctx context.Context, a *app.App) error {
	upgrades := a.Upgrades.All()
	if len(upgrades) == 0 {
		c.io.Println("No upgrades yet.")
		return nil
	}

	for _, upgrade := range upgrades {
		c.io.Printf("%-16s level %d\n", upgrade.ID, upgrade.Level)
	}
	return nil
}
