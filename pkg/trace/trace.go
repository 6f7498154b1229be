// Package trace defines the master trace data model: a hierarchical
// execution record of a multi-component sequence-processing pipeline.
// A trace is an ordered list of components, each holding an ordered list
// of steps; steps may declare linked features pointing at earlier steps.
package trace

import (
	"encoding/json"
	"fmt"
)

// MasterTrace is the complete hierarchical execution record fed to the
// graph builder.
type MasterTrace struct {
	Components []Component `json:"components"`
}

// Component is a named pipeline stage containing an ordered sequence of steps.
type Component struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

// Step is one discrete unit of work executed inside a component.
//
// Caption drives node materialization: a nil Caption means the step is not
// rendered as a graph node (it is counted and skipped); a non-nil empty
// Caption means the node is rendered with its generated identity as label.
type Step struct {
	Caption *string         `json:"caption"`
	State   json.RawMessage `json:"state,omitempty"`
	Links   []LinkedFeature `json:"links,omitempty"`
}

// Captioned reports whether the step carries a caption at all.
func (s *Step) Captioned() bool {
	return s.Caption != nil
}

// LinkedFeature is a declared dependency of a step on one or more earlier
// steps of the named source component. Each fanned-out value references one
// prior step.
type LinkedFeature struct {
	Component string          `json:"component"`
	Feature   string          `json:"feature"`
	Sources   []FeatureSource `json:"sources"`
}

// FeatureSource is one fanned-out value of a linked feature: the index of
// the referenced step within the source component, and the feature value
// carried on the resulting edge. Values are opaque to the builder.
type FeatureSource struct {
	Step  int    `json:"step"`
	Value string `json:"value"`
}

// MasterSpec holds optional higher-level structural hints: which components
// feed which. It is used purely to improve layout quality, never correctness.
type MasterSpec struct {
	Adjacency []ComponentLink `json:"adjacency,omitempty"`
}

// ComponentLink names one directed component-level adjacency.
type ComponentLink struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Validate checks structural well-formedness of the trace: non-empty unique
// component names and sane link references. References to components that
// exist but to step indexes that were never emitted are deliberately NOT
// rejected here; the builder detects those defensively so they surface as
// data-integrity errors with full positional context.
func (m *MasterTrace) Validate() error {
	seen := make(map[string]struct{}, len(m.Components))
	for ci, c := range m.Components {
		if c.Name == "" {
			return fmt.Errorf("component %d: empty name", ci)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("component %d: duplicate name %q", ci, c.Name)
		}
		seen[c.Name] = struct{}{}
	}

	for _, c := range m.Components {
		for si, s := range c.Steps {
			for _, l := range s.Links {
				if l.Component == "" {
					return fmt.Errorf("%s step %d: link with empty source component", c.Name, si)
				}
				if _, ok := seen[l.Component]; !ok {
					return fmt.Errorf("%s step %d: link to unknown component %q", c.Name, si, l.Component)
				}
				for _, src := range l.Sources {
					if src.Step < 0 {
						return fmt.Errorf("%s step %d: negative source step %d", c.Name, si, src.Step)
					}
				}
			}
		}
	}
	return nil
}

// StepCount returns the total number of steps across all components.
func (m *MasterTrace) StepCount() int {
	n := 0
	for _, c := range m.Components {
		n += len(c.Steps)
	}
	return n
}
