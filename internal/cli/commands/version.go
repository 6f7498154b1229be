package commands

import (
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			cc.Renderer.Printf("traceviz %s\n", version)
			cc.Renderer.Printf("  build date: %s\n", buildDate)
			cc.Renderer.Printf("  commit:     %s\n", gitCommit)
			return nil
		},
	}
}
