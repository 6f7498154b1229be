package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Output    string
	Container string
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Export the trace graph as standalone HTML",
		Long: `Render the trace graph into a single self-contained HTML file.

The exported document carries the graph payload, the initial render state
(everything visible, no fade), and the mounting glue; filtering and hover
highlighting work offline in the browser.`,
		Example: `  # Export to the default file
  traceviz render --trace run.json

  # Custom output path
  traceviz render --trace run.json -o graph.html`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "out", "o", "traceviz.html", "Output HTML file")
	cmd.Flags().StringVar(&opts.Container, "container", "traceviz-graph", "Container element id")

	return cmd
}

func runRender(cmd *cobra.Command, opts *RenderOptions) error {
	cc := NewCommandContext(cmd)

	inst, err := cc.NewInstance(opts.Container)
	if err != nil {
		return err
	}

	page, err := inst.HTML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.Output, []byte(page), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Output, err)
	}

	cc.Renderer.Printf("Wrote %s (%d nodes, %d edges", opts.Output,
		inst.Model.NodeCount(), inst.Model.EdgeCount())
	if inst.Model.SkippedSteps > 0 {
		cc.Renderer.Printf(", %d steps without captions skipped", inst.Model.SkippedSteps)
	}
	cc.Renderer.Println(")")

	return nil
}
