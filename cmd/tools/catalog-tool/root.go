// cmd/tools/catalog-tool/root.go
package main

import (
	"card-advisor-workers/internal/common/config"
	"card-advisor-workers/internal/common/logger"

	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "catalog-tool",
		Short:         "Credit card catalog maintenance",
		Long:          "Validate, seed and index the credit card catalog, preview recommendations offline and check the task registry.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: configs/config.yaml lookup)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")

	root.AddCommand(
		newValidateCmd(),
		newSeedCmd(opts),
		newIndexCmd(opts),
		newRecommendCmd(),
		newTasksCmd(),
	)
	return root
}

func (o *options) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFromFile(o.configPath)
	}
	return config.Load()
}

func (o *options) logger() logger.Logger {
	if o.verbose {
		return logger.NewStructured("debug", "console")
	}
	return logger.NewNoOpLogger()
}
