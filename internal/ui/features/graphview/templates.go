package graphview

import (
	"html/template"
	"io"
)

type graphPageData struct {
	Title   string
	Query   string
	Payload template.JS
}

// renderGraphPage writes the full graph page. The payload is embedded so
// the first paint needs no round trip; subsequent state comes over SSE.
func renderGraphPage(w io.Writer, title, query string, payload []byte) error {
	return tmplGraphPage.Execute(w, graphPageData{
		Title:   title,
		Query:   query,
		Payload: template.JS(payload),
	})
}

var tmplGraphPage = template.Must(template.New("graphpage").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - traceviz</title>
<link rel="stylesheet" href="/static/style.css">
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"></script>
<script src="https://unpkg.com/cytoscape@3.30.2/dist/cytoscape.min.js"></script>
</head>
<body data-on-load="@get('/graph/updates')">
<nav>
	<span class="brand">traceviz</span>
	<input id="tv-filter" type="text" placeholder="filter steps (regex)"
		value="{{.Query}}"
		data-bind-filter
		data-on-input__debounce.300ms="@get('/graph/filter')">
	<span class="dim">hover a node to trace its feature edges; click a step for its state</span>
</nav>
<main>
	<div id="traceviz-graph"></div>
	<aside>
		<h2>Step State</h2>
		<pre id="tv-state">(click a step node)</pre>
	</aside>
</main>
<script src="/static/graph.js"></script>
<script>window.traceviz.mount({{.Payload}});</script>
</body>
</html>
`))
