package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/traceviz/internal/cli/output"
	"github.com/leapstack-labs/traceviz/pkg/graph"
)

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Summarize the trace graph",
		Long: `Build the graph model and print a summary of its components,
step nodes, and feature-link edges.

Output adapts to environment:
  - Terminal: styled table output
  - Piped/Scripted: markdown (agent-friendly)`,
		Example: `  # Summarize a trace
  traceviz info --trace run.json

  # As JSON
  traceviz info --trace run.json --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInfo(cmd)
		},
	}

	return cmd
}

func runInfo(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)

	inst, err := cc.NewInstance("info")
	if err != nil {
		return err
	}
	m := inst.Model

	if cc.Renderer.EffectiveMode() == output.ModeJSON {
		return infoJSON(cc.Renderer, m)
	}
	return infoTable(cc.Renderer, m)
}

func infoTable(r *output.Renderer, m *graph.Model) error {
	r.Header(1, "Trace Graph")

	rows := make([]table.Row, 0, len(m.Components))
	for _, c := range m.Components {
		steps, edges := 0, 0
		for _, n := range m.StepNodes() {
			if n.Parent != c.Name {
				continue
			}
			steps++
			edges += len(m.Incident(n.ID))
		}
		rows = append(rows, table.Row{c.Index, c.Name, string(c.Color), steps, edges})
	}
	r.Table(table.Row{"#", "Component", "Color", "Steps", "Incident Edges"}, rows)

	r.Printf("\nTotal: %d nodes, %d edges", m.NodeCount(), m.EdgeCount())
	if m.SkippedSteps > 0 {
		r.Printf(", %d steps without captions skipped", m.SkippedSteps)
	}
	r.Println()
	return nil
}

func infoJSON(r *output.Renderer, m *graph.Model) error {
	return r.JSON(map[string]any{
		"components":   m.Components,
		"nodes":        m.NodeCount(),
		"edges":        m.EdgeCount(),
		"skippedSteps": m.SkippedSteps,
	})
}
