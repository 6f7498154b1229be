// Package graph transforms a hierarchical master trace into a flat, typed
// graph model: one container node per component, one child node per
// captioned step, and one directed edge per resolved linked-feature value.
// The transform is pure; the resulting Model is handed to the view layer
// once and never rebuilt for the same trace.
package graph

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/leapstack-labs/traceviz/pkg/palette"
	"github.com/leapstack-labs/traceviz/pkg/trace"
)

// Sep separates the component name from the step index in step node
// identities.
const Sep = ":"

// StepNodeID builds the globally unique identity of a step node.
func StepNodeID(component string, step int) string {
	return component + Sep + strconv.Itoa(step)
}

// NodeKind distinguishes container component nodes from child step nodes.
type NodeKind int

const (
	// KindComponent is a container node; it has no parent.
	KindComponent NodeKind = iota
	// KindStep is a child node nested under its component.
	KindStep
)

// Node is one graph node. Component nodes carry a color and no parent;
// step nodes carry their caption, opaque state snapshot, and the raw
// feature-link list for on-demand inspection.
type Node struct {
	ID     string          `json:"id"`
	Kind   NodeKind        `json:"kind"`
	Parent string          `json:"parent,omitempty"`
	Label  string          `json:"label"`
	Color  palette.Color   `json:"color,omitempty"`
	Step   int             `json:"step,omitempty"`
	State  json.RawMessage `json:"state,omitempty"`

	Links []trace.LinkedFeature `json:"-"`
}

// Edge is one resolved linked-feature value: a directed dependency from an
// earlier step node to the current step node. Edges have no identity beyond
// this tuple; multiple edges between the same pair are allowed, one per
// feature value. Feature name and value are metadata for labeling, not
// semantics.
type Edge struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Feature string `json:"feature"`
	Value   string `json:"value"`
}

// ComponentInfo records the per-component assignments made by the builder.
type ComponentInfo struct {
	Name  string        `json:"name"`
	Index int           `json:"index"`
	Color palette.Color `json:"color"`
}

// Model is the builder's output: nodes and edges in stable traversal order
// (component, then step, then feature, then value), plus adjacency indexes
// for the view layer and the skipped-step diagnostic counter.
type Model struct {
	Components []ComponentInfo
	Nodes      []Node
	Edges      []Edge

	// SkippedSteps counts steps excluded for lacking a caption.
	// Diagnostic only, never an error.
	SkippedSteps int

	byID     map[string]int
	incident map[string][]int
}

// index builds the lookup and adjacency tables. Called once by Build.
func (m *Model) index() {
	m.byID = make(map[string]int, len(m.Nodes))
	for i, n := range m.Nodes {
		m.byID[n.ID] = i
	}
	m.incident = make(map[string][]int)
	for i, e := range m.Edges {
		m.incident[e.Source] = append(m.incident[e.Source], i)
		m.incident[e.Target] = append(m.incident[e.Target], i)
	}
}

// Node returns the node with the given identity.
func (m *Model) Node(id string) (Node, bool) {
	i, ok := m.byID[id]
	if !ok {
		return Node{}, false
	}
	return m.Nodes[i], true
}

// Incident returns the indexes into Edges of all edges touching the node,
// in emit order.
func (m *Model) Incident(id string) []int {
	return m.incident[id]
}

// Neighbors returns the identities of nodes directly connected to id by an
// edge in either direction, sorted for determinism.
func (m *Model) Neighbors(id string) []string {
	set := make(map[string]struct{})
	for _, ei := range m.incident[id] {
		e := m.Edges[ei]
		other := e.Source
		if other == id {
			other = e.Target
		}
		set[other] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// StepNodes returns all step nodes in emit order.
func (m *Model) StepNodes() []Node {
	out := make([]Node, 0, len(m.Nodes))
	for _, n := range m.Nodes {
		if n.Kind == KindStep {
			out = append(out, n)
		}
	}
	return out
}

// NodeCount returns the number of nodes in the model.
func (m *Model) NodeCount() int { return len(m.Nodes) }

// EdgeCount returns the number of edges in the model.
func (m *Model) EdgeCount() int { return len(m.Edges) }
