// Package view maintains render state over a built graph model: which
// nodes and edges are shown, hidden, or faded in response to a filter
// query, and which edges are emphasized on hover. State is derived, not
// patched: every filter event recomputes the full assignment from the
// query and the static topology, which makes idempotence trivial and
// removes stale-state bugs by construction.
package view

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/leapstack-labs/traceviz/pkg/graph"
)

// FadeLevel is the three-valued visual de-emphasis state derived from
// filter distance.
type FadeLevel int

const (
	// FadeNone marks matched elements.
	FadeNone FadeLevel = iota
	// FadeNear marks elements adjacent to the match set.
	FadeNear
	// FadeFar marks hidden elements.
	FadeFar
)

// String returns the CSS-class-friendly name of the fade level.
func (f FadeLevel) String() string {
	switch f {
	case FadeNear:
		return "near"
	case FadeFar:
		return "far"
	default:
		return "none"
	}
}

// RenderState is the full visibility/fade assignment for one query.
// EdgeFade is indexed by edge position in the model's Edges slice; edges
// carry no identity of their own.
type RenderState struct {
	Visible  map[string]bool
	NodeFade map[string]FadeLevel
	EdgeFade []FadeLevel
}

// Relayouter triggers a re-layout of the visible subgraph. The layout
// engine's own animation is fire-and-forget from the controller's
// perspective.
type Relayouter interface {
	Relayout(visible []string)
}

// RelayouterFunc adapts a function to the Relayouter interface.
type RelayouterFunc func(visible []string)

// Relayout implements Relayouter.
func (f RelayouterFunc) Relayout(visible []string) { f(visible) }

// Controller owns all render-state transitions for one graph instance.
// It is single-threaded by contract: one user-triggered event at a time,
// each computed synchronously, last write wins.
type Controller struct {
	model  *graph.Model
	layout Relayouter
	query  string
	state  RenderState
}

// NewController creates a controller with everything visible and unfaded,
// equivalent to an applied empty filter (without a layout trigger).
func NewController(m *graph.Model, layout Relayouter) *Controller {
	c := &Controller{model: m, layout: layout}
	c.state = c.compute(nil)
	return c
}

// Query returns the currently applied filter query.
func (c *Controller) Query() string { return c.query }

// State returns the current render state. Callers must treat it as
// read-only.
func (c *Controller) State() RenderState { return c.state }

// Model returns the static topology this controller renders.
func (c *Controller) Model() *graph.Model { return c.model }

// ApplyFilter recomputes the full render state for the query and triggers
// a re-layout of the visible subgraph. The query is a case-insensitive
// pattern match over step node captions; an empty query matches every
// step. An unparseable pattern fails the operation and leaves the prior
// state completely unchanged.
func (c *Controller) ApplyFilter(query string) error {
	var re *regexp.Regexp
	if query != "" {
		var err error
		re, err = regexp.Compile("(?i)" + query)
		if err != nil {
			return fmt.Errorf("invalid filter pattern %q: %w", query, err)
		}
	}

	c.state = c.compute(re)
	c.query = query

	if c.layout != nil {
		c.layout.Relayout(c.visibleIDs())
	}
	return nil
}

// compute derives the state for a compiled pattern. A nil pattern matches
// all step nodes.
func (c *Controller) compute(re *regexp.Regexp) RenderState {
	m := c.model

	// Match set: step nodes whose caption matches.
	matched := make(map[string]bool)
	for _, n := range m.Nodes {
		if n.Kind != graph.KindStep {
			continue
		}
		if re == nil || re.MatchString(n.Label) {
			matched[n.ID] = true
		}
	}

	// Visible set: matches, their one-hop graph neighborhood, and the
	// ancestor components of everything in that union.
	visible := make(map[string]bool, len(matched))
	for id := range matched {
		visible[id] = true
		for _, nb := range m.Neighbors(id) {
			visible[nb] = true
		}
	}
	for id := range visible {
		if n, ok := m.Node(id); ok && n.Parent != "" {
			visible[n.Parent] = true
		}
	}

	st := RenderState{
		Visible:  visible,
		NodeFade: make(map[string]FadeLevel, len(m.Nodes)),
		EdgeFade: make([]FadeLevel, len(m.Edges)),
	}

	// Node fades. A component inherits the best fade of its visible
	// children, so an all-matched trace (empty query) renders with no
	// fade anywhere.
	for _, n := range m.Nodes {
		switch {
		case matched[n.ID]:
			st.NodeFade[n.ID] = FadeNone
		case !visible[n.ID]:
			st.NodeFade[n.ID] = FadeFar
		case n.Kind == graph.KindComponent && c.hasMatchedChild(n.ID, matched):
			st.NodeFade[n.ID] = FadeNone
		default:
			st.NodeFade[n.ID] = FadeNear
		}
	}

	// Edge fades follow endpoint state: hidden endpoint means far,
	// two matched endpoints mean none, anything else near.
	for i, e := range m.Edges {
		switch {
		case !visible[e.Source] || !visible[e.Target]:
			st.EdgeFade[i] = FadeFar
		case matched[e.Source] && matched[e.Target]:
			st.EdgeFade[i] = FadeNone
		default:
			st.EdgeFade[i] = FadeNear
		}
	}

	return st
}

// hasMatchedChild reports whether any step node under the component is in
// the match set.
func (c *Controller) hasMatchedChild(component string, matched map[string]bool) bool {
	for _, n := range c.model.Nodes {
		if n.Parent == component && matched[n.ID] {
			return true
		}
	}
	return false
}

// visibleIDs returns the visible node identities, sorted for determinism.
func (c *Controller) visibleIDs() []string {
	out := make([]string, 0, len(c.state.Visible))
	for id, v := range c.state.Visible {
		if v {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// HighlightNode returns the indexes of edges to emphasize when the node is
// hovered: its incident edges. Pure; fade state is untouched.
func (c *Controller) HighlightNode(id string) []int {
	return c.model.Incident(id)
}

// HighlightEdge returns the indexes of edges to emphasize when the edge at
// position i is hovered: the edge itself.
func (c *Controller) HighlightEdge(i int) []int {
	if i < 0 || i >= len(c.model.Edges) {
		return nil
	}
	return []int{i}
}
