package graph

import (
	"log/slog"

	"github.com/leapstack-labs/traceviz/pkg/palette"
	"github.com/leapstack-labs/traceviz/pkg/trace"
)

// Options configures a build.
type Options struct {
	// Scheme is the palette scheme name; empty means palette.DefaultScheme.
	Scheme string
	// Logger receives diagnostic-only conditions (skipped steps).
	// Nil discards them.
	Logger *slog.Logger
}

// Build transforms a master trace into a graph model. It is pure and total
// over well-formed input: it either returns a complete model or an error
// and no model.
//
// Error taxonomy: a palette failure aborts the whole build with a
// *ConfigError; a linked feature referencing a step node that was not
// created earlier in traversal order aborts with a *DanglingLinkError.
// Steps without captions are skipped, counted, and logged, never raised.
func Build(master *trace.MasterTrace, gen palette.Generator, opts Options) (*Model, error) {
	scheme := opts.Scheme
	if scheme == "" {
		scheme = palette.DefaultScheme
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	colors, err := gen.Generate(scheme, len(master.Components))
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	m := &Model{
		Components: make([]ComponentInfo, 0, len(master.Components)),
		Nodes:      make([]Node, 0, len(master.Components)+master.StepCount()),
	}

	// Pass 1: component nodes, index- and color-aligned with trace order.
	for ci, c := range master.Components {
		m.Components = append(m.Components, ComponentInfo{
			Name:  c.Name,
			Index: ci,
			Color: colors[ci],
		})
		m.Nodes = append(m.Nodes, Node{
			ID:    c.Name,
			Kind:  KindComponent,
			Label: c.Name,
			Color: colors[ci],
		})
	}

	// Pass 2: step nodes and edges in one stable traversal. emitted tracks
	// which step identities exist so far; the trace format guarantees steps
	// only link to temporally earlier steps, so an absent source is a
	// data-integrity violation, not a normal case.
	emitted := make(map[string]struct{}, master.StepCount())
	for ci, c := range master.Components {
		for si, s := range c.Steps {
			if !s.Captioned() {
				m.SkippedSteps++
				logger.Debug("skipping step without caption",
					"component", c.Name, "step", si)
				continue
			}

			id := StepNodeID(c.Name, si)
			label := *s.Caption
			if label == "" {
				label = id
			}
			m.Nodes = append(m.Nodes, Node{
				ID:     id,
				Kind:   KindStep,
				Parent: c.Name,
				Label:  label,
				Color:  colors[ci],
				Step:   si,
				State:  s.State,
				Links:  s.Links,
			})

			for _, l := range s.Links {
				for _, src := range l.Sources {
					srcID := StepNodeID(l.Component, src.Step)
					if _, ok := emitted[srcID]; !ok {
						return nil, &DanglingLinkError{
							Component: c.Name,
							Step:      si,
							Feature:   l.Feature,
							Source:    srcID,
						}
					}
					m.Edges = append(m.Edges, Edge{
						Source:  srcID,
						Target:  id,
						Feature: l.Feature,
						Value:   src.Value,
					})
				}
			}

			// Marked after the links loop: a step may not reference itself,
			// only strictly earlier steps.
			emitted[id] = struct{}{}
		}
	}

	if m.SkippedSteps > 0 {
		logger.Info("steps without captions skipped", "count", m.SkippedSteps)
	}

	m.index()
	return m, nil
}
