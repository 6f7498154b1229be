// Package cli provides the command-line interface for TraceViz.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/traceviz/internal/cli/commands"
	"github.com/leapstack-labs/traceviz/internal/cli/output"
	"github.com/leapstack-labs/traceviz/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "traceviz",
		Short: "TraceViz - Pipeline Trace Visualization",
		Long: `TraceViz renders an execution trace of a multi-component pipeline as an
interactive node/edge graph.

It builds a typed graph model from the hierarchical trace (component
container nodes, captioned step nodes, feature-link edges), serves it in a
local web UI with live filtering, or exports it as a standalone HTML file.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := config.NewLogger(cfg.Verbose)
			renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))

			ctx := commands.WithContext(cmd.Context(), cfg, logger, renderer)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./traceviz.yaml)")
	rootCmd.PersistentFlags().String("trace", "", "Path to master trace JSON file")
	rootCmd.PersistentFlags().String("spec", "", "Path to master spec (layout hints) JSON file")
	rootCmd.PersistentFlags().String("palette", "", "Palette scheme name")
	rootCmd.PersistentFlags().String("layout", "", "Layout strategy name")
	rootCmd.PersistentFlags().String("output", "", "Output format: text, json, markdown")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(
		commands.NewServeCommand(),
		commands.NewRenderCommand(),
		commands.NewInfoCommand(),
		commands.NewBrowseCommand(),
		commands.NewVersionCommand(Version, BuildDate, GitCommit),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
