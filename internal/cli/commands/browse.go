package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/traceviz/internal/cli/tui"
)

// NewBrowseCommand creates the browse command.
func NewBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the trace graph in the terminal",
		Long: `Open a terminal browser over the trace graph.

Type to filter step captions (same regex semantics as the web UI filter);
matched steps render bright, neighborhood steps dim, everything else is
hidden. Arrow keys scroll, Esc quits.`,
		Example: `  traceviz browse --trace run.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			inst, err := cc.NewInstance("browse")
			if err != nil {
				return err
			}
			return tui.Run(inst.Model)
		},
	}
}
