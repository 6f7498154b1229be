package traceviz

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/leapstack-labs/traceviz/pkg/trace"
)

// VisualizeHTML performs one builder pass and one-time controller
// initialization, then renders a self-contained HTML document that mounts
// the graph into the named container. Calling it again for the same
// container produces an independent instance.
func VisualizeHTML(master *trace.MasterTrace, containerID string, spec *trace.MasterSpec) (string, error) {
	inst, err := New(master, containerID, spec, Options{})
	if err != nil {
		return "", err
	}
	return inst.HTML()
}

// HTML renders the instance as a standalone document.
func (inst *Instance) HTML() (string, error) {
	data, err := inst.Payload()
	if err != nil {
		return "", err
	}

	t, err := template.New("page").Parse(tmplPage)
	if err != nil {
		return "", fmt.Errorf("failed to parse page template: %w", err)
	}

	var buf bytes.Buffer
	err = t.Execute(&buf, map[string]any{
		"Container": inst.Container,
		"Instance":  inst.ID,
		"Payload":   template.JS(data),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return buf.String(), nil
}

// tmplPage is the standalone export document. The layout engine is an
// external collaborator loaded from a CDN; the inline script is mounting
// glue only: it feeds the payload to the engine and mirrors the fade
// classes the controller computed.
const tmplPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>TraceViz</title>
<script src="https://unpkg.com/cytoscape@3.30.2/dist/cytoscape.min.js"></script>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'JetBrains Mono',monospace,sans-serif;background:#0d1117;color:#c9d1d9;font-size:13px}
header{background:#161b22;border-bottom:1px solid #30363d;padding:8px 16px;display:flex;gap:12px;align-items:center}
header .brand{color:#f0f6fc;font-weight:700}
header input{background:#0d1117;border:1px solid #30363d;color:#c9d1d9;border-radius:4px;padding:4px 8px;font-size:12px;font-family:inherit;width:240px}
header input.invalid{border-color:#f87171}
#{{.Container}}{width:100vw;height:calc(100vh - 41px)}
</style>
</head>
<body>
<header>
  <span class="brand">TraceViz</span>
  <input id="tv-filter" type="text" placeholder="filter step captions (regex)" autocomplete="off">
  <span id="tv-count" style="color:#8b949e"></span>
</header>
<div id="{{.Container}}" data-instance="{{.Instance}}"></div>
<script>
(function () {
  var payload = {{.Payload}};
  var cy = cytoscape({
    container: document.getElementById(payload.container),
    elements: payload.nodes.map(function (n) {
      return { group: 'nodes', data: n, classes: 'fade-' + n.fade + (n.kind === 'component' ? ' component' : '') };
    }).concat(payload.edges.map(function (e, i) {
      return { group: 'edges', data: { id: 'e' + i, idx: i, source: e.source, target: e.target, label: e.feature + '=' + e.value }, classes: 'fade-' + e.fade };
    })),
    style: [
      { selector: 'node', style: { 'label': 'data(label)', 'background-color': 'data(color)', 'color': '#c9d1d9', 'font-size': 9 } },
      { selector: 'node.component', style: { 'shape': 'round-rectangle', 'background-opacity': 0.08, 'border-color': 'data(color)', 'border-width': 1 } },
      { selector: 'edge', style: { 'curve-style': 'bezier', 'target-arrow-shape': 'triangle', 'width': 1, 'line-color': '#30363d', 'target-arrow-color': '#30363d', 'label': 'data(label)', 'font-size': 7, 'color': '#8b949e' } },
      { selector: '.fade-near', style: { 'opacity': 0.45 } },
      { selector: '.fade-far', style: { 'display': 'none' } },
      { selector: '.highlighted', style: { 'line-color': '#58a6ff', 'target-arrow-color': '#58a6ff', 'width': 2.5 } }
    ],
    layout: { name: payload.layout, animate: false }
  });

  // Hover emphasis: incident edges only, fade state untouched.
  cy.on('mouseover', 'node', function (ev) { ev.target.connectedEdges().addClass('highlighted'); });
  cy.on('mouseout', 'node', function (ev) { ev.target.connectedEdges().removeClass('highlighted'); });
  cy.on('mouseover', 'edge', function (ev) { ev.target.addClass('highlighted'); });
  cy.on('mouseout', 'edge', function (ev) { ev.target.removeClass('highlighted'); });

  // Standalone exports re-derive visibility client-side with the same
  // one-hop rule the server controller uses.
  var input = document.getElementById('tv-filter');
  input.value = payload.query || '';
  input.addEventListener('input', function () {
    var re;
    try { re = input.value === '' ? null : new RegExp(input.value, 'i'); } catch (err) {
      input.classList.add('invalid');
      return;
    }
    input.classList.remove('invalid');

    var matched = {};
    cy.nodes().forEach(function (n) {
      if (n.data('kind') !== 'step') return;
      if (re === null || re.test(n.data('label'))) matched[n.id()] = true;
    });
    var visible = {};
    Object.keys(matched).forEach(function (id) {
      visible[id] = true;
      cy.getElementById(id).connectedEdges().connectedNodes().forEach(function (nb) { visible[nb.id()] = true; });
    });
    Object.keys(visible).forEach(function (id) {
      var p = cy.getElementById(id).data('parent');
      if (p) visible[p] = true;
    });

    cy.batch(function () {
      cy.nodes().forEach(function (n) {
        n.removeClass('fade-near fade-far');
        if (matched[n.id()]) return;
        if (!visible[n.id()]) { n.addClass('fade-far'); return; }
        if (n.data('kind') === 'component' && n.children().some(function (ch) { return matched[ch.id()]; })) return;
        n.addClass('fade-near');
      });
      cy.edges().forEach(function (e) {
        e.removeClass('fade-near fade-far');
        if (!visible[e.source().id()] || !visible[e.target().id()]) { e.addClass('fade-far'); return; }
        if (!(matched[e.source().id()] && matched[e.target().id()])) e.addClass('fade-near'); }
      );
    });
    document.getElementById('tv-count').textContent = Object.keys(matched).length + ' matched';
    cy.layout({ name: payload.layout, animate: true, fit: false }).run();
  });
})();
</script>
</body>
</html>
`
