package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vercel/config-mcp-server/internal/logging"
	"github.com/vercel/config-mcp-server/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-validate a file on every save",
		Long: `Validate a file once, then again after each write until interrupted.
Bursts of writes within 300ms are validated once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd, args[0])
		},
	}
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command, path string) error {
	w, err := watch.New(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printResult(out, checkFile(a.validator, w.Path()))

	logging.Info("watching for changes", zap.String("path", w.Path()))
	return w.Run(ctx, func(changed string) {
		printResult(out, checkFile(a.validator, changed))
	})
}
