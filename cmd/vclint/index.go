package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vercel/config-mcp-server/internal/indexing"
	"github.com/vercel/config-mcp-server/internal/logging"
)

func newIndexCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "index <dir>",
		Short: "Build the documentation search index",
		Long: `Write a documentation index of every configuration field to <dir>,
replacing any index already there. Point the server's index_path at it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.buildIndex(cmd, args[0])
		},
	}
}

func (a *app) buildIndex(cmd *cobra.Command, dir string) error {
	start := time.Now()

	docs, err := indexing.Documents(a.validator.Catalog(), a.settings.FileName, a.validator.Links().Field)
	if err != nil {
		return err
	}
	index, err := indexing.BuildDiskIndex(dir, docs)
	if err != nil {
		return err
	}
	if err := index.Close(); err != nil {
		return fmt.Errorf("failed to close index: %w", err)
	}

	logging.Info("documentation index written",
		zap.String("dir", dir),
		zap.Int("docs", len(docs)),
		zap.Int("version", indexing.IndexSchemaVersion),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Indexed %d docs into %s (schema v%d)\n", len(docs), dir, indexing.IndexSchemaVersion)
	return nil
}
