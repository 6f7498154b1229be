// Package traceviz is the library entrypoint: it turns a master trace into
// an interactive graph visualization. Each call creates an independent,
// fully separate instance; no process-wide state is shared between
// instances mounted into different containers.
package traceviz

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/leapstack-labs/traceviz/pkg/graph"
	"github.com/leapstack-labs/traceviz/pkg/palette"
	"github.com/leapstack-labs/traceviz/pkg/trace"
	"github.com/leapstack-labs/traceviz/pkg/view"
)

// DefaultLayout is the layout strategy handed to the rendering engine when
// none is configured.
const DefaultLayout = "cose"

// Options configures an instance.
type Options struct {
	// Scheme is the palette scheme; empty means palette.DefaultScheme.
	Scheme string
	// Layout is the named layout strategy; empty means DefaultLayout.
	Layout string
	// Layouter receives re-layout triggers from the controller. Nil is
	// valid: the rendering surface then owns layout timing.
	Layouter view.Relayouter
	// Logger receives build diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Instance is one mounted visualization: a built model plus the controller
// that owns its render state.
type Instance struct {
	ID         string
	Container  string
	Layout     string
	Model      *graph.Model
	Controller *view.Controller
	Spec       *trace.MasterSpec
}

// New builds the graph model once and initializes the view controller.
// The builder is never invoked again for the same trace; all subsequent
// state transitions go through the controller.
func New(master *trace.MasterTrace, containerID string, spec *trace.MasterSpec, opts Options) (*Instance, error) {
	layout := opts.Layout
	if layout == "" {
		layout = DefaultLayout
	}

	model, err := graph.Build(master, palette.New(), graph.Options{
		Scheme: opts.Scheme,
		Logger: opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Instance{
		ID:         uuid.NewString(),
		Container:  containerID,
		Layout:     layout,
		Model:      model,
		Controller: view.NewController(model, opts.Layouter),
		Spec:       spec,
	}, nil
}

// nodeVM and edgeVM are the style-relevant projections handed to the
// rendering engine.
type nodeVM struct {
	ID      string `json:"id"`
	Parent  string `json:"parent,omitempty"`
	Label   string `json:"label"`
	Color   string `json:"color"`
	Kind    string `json:"kind"`
	Visible bool   `json:"visible"`
	Fade    string `json:"fade"`
	State   string `json:"state,omitempty"`
}

type edgeVM struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Feature string `json:"feature"`
	Value   string `json:"value"`
	Fade    string `json:"fade"`
}

type payload struct {
	Instance  string               `json:"instance"`
	Container string               `json:"container"`
	Layout    string               `json:"layout"`
	Query     string               `json:"query"`
	Nodes     []nodeVM             `json:"nodes"`
	Edges     []edgeVM             `json:"edges"`
	Hints     []trace.ComponentLink `json:"hints,omitempty"`
}

// Payload marshals the current model and render state for the rendering
// engine. Node and edge order follows the model's stable emit order.
func (inst *Instance) Payload() ([]byte, error) {
	st := inst.Controller.State()

	p := payload{
		Instance:  inst.ID,
		Container: inst.Container,
		Layout:    inst.Layout,
		Query:     inst.Controller.Query(),
		Nodes:     make([]nodeVM, 0, len(inst.Model.Nodes)),
		Edges:     make([]edgeVM, 0, len(inst.Model.Edges)),
	}
	if inst.Spec != nil {
		p.Hints = inst.Spec.Adjacency
	}

	for _, n := range inst.Model.Nodes {
		kind := "step"
		if n.Kind == graph.KindComponent {
			kind = "component"
		}
		p.Nodes = append(p.Nodes, nodeVM{
			ID:      n.ID,
			Parent:  n.Parent,
			Label:   n.Label,
			Color:   string(n.Color),
			Kind:    kind,
			Visible: st.Visible[n.ID],
			Fade:    st.NodeFade[n.ID].String(),
			State:   string(n.State),
		})
	}
	for i, e := range inst.Model.Edges {
		p.Edges = append(p.Edges, edgeVM{
			Source:  e.Source,
			Target:  e.Target,
			Feature: e.Feature,
			Value:   e.Value,
			Fade:    st.EdgeFade[i].String(),
		})
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graph payload: %w", err)
	}
	return data, nil
}

// StatePayload marshals only the render state (fades and visibility keyed
// by identity, edge fades by position). Used to patch a live page after a
// filter event without resending topology.
func (inst *Instance) StatePayload() ([]byte, error) {
	st := inst.Controller.State()

	out := struct {
		Instance string            `json:"instance"`
		Query    string            `json:"query"`
		Visible  map[string]bool   `json:"visible"`
		NodeFade map[string]string `json:"nodeFade"`
		EdgeFade []string          `json:"edgeFade"`
	}{
		Instance: inst.ID,
		Query:    inst.Controller.Query(),
		Visible:  st.Visible,
		NodeFade: make(map[string]string, len(st.NodeFade)),
		EdgeFade: make([]string, len(st.EdgeFade)),
	}
	for id, f := range st.NodeFade {
		out.NodeFade[id] = f.String()
	}
	for i, f := range st.EdgeFade {
		out.EdgeFade[i] = f.String()
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal render state: %w", err)
	}
	return data, nil
}
