package main

import (
	"io"

	"github.com/KevinKickass/OpenIOTable/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type globalOptions struct {
	configPath string
	verbose    bool
}

// load returns the configuration and a logger for one command run.
func (o *globalOptions) load() (*config.Config, *zap.Logger, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	logger := zap.NewNop()
	if o.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, nil, err
		}
		logger = l
	}
	return cfg, logger, nil
}

// NewRootCommand returns the iotable command with all subcommands.
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "iotable",
		Short:         "Generate IO point tables from station equipment lists",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to config.yaml (defaults apply when empty)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log build details to stderr")

	cmd.AddCommand(newGenerateCommand(out, opts))
	cmd.AddCommand(newSummaryCommand(out, opts))
	cmd.AddCommand(newTokenCommand(out, opts))

	return cmd
}
