package main

import (
	"lexigraph/backend/internal/graph"
	"lexigraph/backend/internal/vocabulary"
	"lexigraph/backend/pkg/config"
	"lexigraph/backend/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// commandContext carries what every subcommand shares. openFn is replaced in
// tests.
type commandContext struct {
	envFile string
	verbose bool
	log     *zap.Logger
	openFn  func(envFile string, log *zap.Logger) (vocabulary.Opener, error)
}

func newCommandContext() *commandContext {
	return &commandContext{
		log:    zap.NewNop(),
		openFn: openGraph,
	}
}

func openGraph(envFile string, log *zap.Logger) (vocabulary.Opener, error) {
	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	cfg, err := config.LoadGraph(envFiles...)
	if err != nil {
		return nil, err
	}
	connector, err := graph.NewConnector(cfg, log)
	if err != nil {
		return nil, err
	}
	return connector, nil
}

func (c *commandContext) opener() (vocabulary.Opener, error) {
	return c.openFn(c.envFile, c.log)
}

func newRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vocab",
		Short:         "Read and seed graph vocabulary",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !ctx.verbose {
				return nil
			}
			if err := logger.Init("development"); err != nil {
				return err
			}
			ctx.log = logger.Get()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.envFile, "env-file", "", "Load NEO4J_* settings from this file instead of .env")
	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(newFetchCommand(ctx))
	rootCmd.AddCommand(newSeedCommand(ctx))
	rootCmd.AddCommand(newLanguagesCommand())

	return rootCmd
}
