package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vercel/config-mcp-server/internal/config"
	"github.com/vercel/config-mcp-server/internal/logging"
	"github.com/vercel/config-mcp-server/validator"
)

const version = "0.1.0"

// errInvalid reports that at least one file failed validation. The details
// have already been printed.
var errInvalid = errors.New("invalid configuration")

// app carries what every subcommand needs once settings are loaded.
type app struct {
	cfgFile   string
	settings  *config.Settings
	validator *validator.Validator
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "vclint",
		Short: "Validate vercel.json configuration files",
		Long: `vclint checks vercel.json files against the platform schema and its
cross-field rules, reporting the single most relevant problem per file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "settings file path")

	rootCmd.AddCommand(newCheckCmd(a), newWatchCmd(a), newIndexCmd(a))
	return rootCmd
}

func (a *app) load() error {
	settings, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.NewConsole(settings.LogLevel)
	if err != nil {
		return err
	}
	logging.SetGlobal(logger)

	v, err := validator.New(validator.WithFileName(settings.FileName))
	if err != nil {
		return err
	}
	a.settings = settings
	a.validator = v
	return nil
}
