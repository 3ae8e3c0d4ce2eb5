// Package cli реализует команды клиента на cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/iudanet/progresskeeper/internal/client/app"
	"github.com/iudanet/progresskeeper/internal/client/iocli"
	"github.com/iudanet/progresskeeper/internal/config"
	"github.com/iudanet/progresskeeper/internal/logger"
)

// Cli общее состояние команд: настройки, логгер и ввод-вывод
type Cli struct {
	io     iocli.IO
	logger *slog.Logger
	envErr error
	cfg    config.Client
}

// NewRootCommand создает корневую команду клиента
func NewRootCommand(version string) *cobra.Command {
	return newRootCommand(&Cli{}, version)
}

func newRootCommand(c *Cli, version string) *cobra.Command {
	// Окружение задает значения по умолчанию, флаги их переопределяют
	c.cfg, c.envErr = config.LoadClient()

	cmd := &cobra.Command{
		Use:           "progresskeeper",
		Short:         "ProgressKeeper - offline-first player progress client",
		Long:          "Keeps player progress (currencies, upgrades) in a local database and syncs it with the server in batches.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&c.cfg.ServerURL, "server", c.cfg.ServerURL, "server URL")
	flags.StringVar(&c.cfg.DBPath, "db", c.cfg.DBPath, "path to local database")
	flags.DurationVar(&c.cfg.Debounce, "debounce", c.cfg.Debounce, "quiet period before local flush")
	flags.IntVar(&c.cfg.Threshold, "threshold", c.cfg.Threshold, "local flushes before remote commit")
	flags.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug|info|warn|error)")

	cmd.AddCommand(newLoginCommand(c))
	cmd.AddCommand(newLogoutCommand(c))
	cmd.AddCommand(newStatusCommand(c))
	cmd.AddCommand(newSyncCommand(c))
	cmd.AddCommand(newCurrencyCommand(c))
	cmd.AddCommand(newUpgradeCommand(c))
	cmd.AddCommand(newPlayCommand(c))

	return cmd
}

func (c *Cli) setup(cmd *cobra.Command) error {
	if c.envErr != nil {
		return c.envErr
	}
	if err := c.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(c.cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	c.logger = log

	if c.io == nil {
		c.io = iocli.New(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	return nil
}

// withApp запускает клиент, выполняет fn и всегда завершает работу клиента:
// сброс изменений, ожидание коммита и закрытие хранилища.
func (c *Cli) withApp(ctx context.Context, fn func(ctx context.Context, a *app.App) error) (err error) {
	a, err := app.New(ctx, c.cfg, c.logger)
	if err != nil {
		return err
	}

	defer func() {
		// Выход по сигналу тоже сохраняет прогресс
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.CommitTimeout)
		defer cancel()

		if closeErr := a.Close(closeCtx); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	return fn(ctx, a)
}
