package graphview

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/traceviz/internal/ui/notifier"
	"github.com/leapstack-labs/traceviz/pkg/trace"
	"github.com/leapstack-labs/traceviz/pkg/traceviz"
)

func caption(s string) *string { return &s }

type staticProvider struct {
	inst *traceviz.Instance
}

func (p *staticProvider) Instance() *traceviz.Instance { return p.inst }

func setupTestHandlers(t *testing.T) *Handlers {
	t.Helper()

	master := &trace.MasterTrace{Components: []trace.Component{
		{Name: "fetch", Steps: []trace.Step{
			{Caption: caption("request page")},
		}},
		{Name: "parse", Steps: []trace.Step{
			{Caption: caption("extract links"), Links: []trace.LinkedFeature{
				{Component: "fetch", Feature: "body", Sources: []trace.FeatureSource{{Step: 0, Value: "html"}}},
			}},
		}},
	}}

	inst, err := traceviz.New(master, "traceviz-graph", nil, traceviz.Options{})
	require.NoError(t, err)

	return NewHandlers(
		&staticProvider{inst: inst},
		sessions.NewCookieStore([]byte("test-secret")),
		notifier.New(),
	)
}

func TestHandleGraphPage(t *testing.T) {
	h := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/graph", nil)
	rec := httptest.NewRecorder()

	h.HandleGraphPage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		"traceviz-graph",
		"tv-filter",
		"/graph/filter",
		"/graph/updates",
		"window.traceviz.mount",
		`"fetch:0"`,
	} {
		assert.Contains(t, body, want, "page should contain %q", want)
	}
}

func TestHandleGraphJSON(t *testing.T) {
	h := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/graph.json", nil)
	rec := httptest.NewRecorder()

	h.HandleGraphJSON(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload struct {
		Nodes []json.RawMessage `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Len(t, payload.Nodes, 4)
	assert.Len(t, payload.Edges, 1)
}

func TestHandleHighlight_Node(t *testing.T) {
	h := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/highlight?node=parse:0", nil)
	rec := httptest.NewRecorder()

	h.HandleHighlight(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var idxs []int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &idxs))
	assert.Equal(t, []int{0}, idxs)
}

func TestHandleHighlight_UnknownNode(t *testing.T) {
	h := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/highlight?node=ghost:9", nil)
	rec := httptest.NewRecorder()

	h.HandleHighlight(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var idxs []int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &idxs))
	assert.Empty(t, idxs)
}

func TestHandleHighlight_Edge(t *testing.T) {
	h := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/highlight?edge=0", nil)
	rec := httptest.NewRecorder()

	h.HandleHighlight(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var idxs []int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &idxs))
	assert.Equal(t, []int{0}, idxs)
}

func TestHandleHighlight_BadRequests(t *testing.T) {
	h := setupTestHandlers(t)

	for _, target := range []string{
		"/api/highlight",
		"/api/highlight?edge=notanumber",
		"/api/highlight?edge=99",
		"/api/highlight?edge=-1",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()

		h.HandleHighlight(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}

// filterRequest builds a GET request carrying datastar signals in the
// query string, the way the page's input sends them.
func filterRequest(t *testing.T, filter string) *http.Request {
	t.Helper()
	signals, err := json.Marshal(FilterSignals{Filter: filter})
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodGet,
		"/graph/filter?datastar="+url.QueryEscape(string(signals)), nil)
}

func TestFilterSSE_AppliesQuery(t *testing.T) {
	h := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.FilterSSE(rec, filterRequest(t, "extract"))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "window.traceviz.applyState")
	assert.Contains(t, body, `"query":"extract"`)

	// The accepted query is persisted for the next page load.
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestFilterSSE_InvalidPatternKeepsState(t *testing.T) {
	h := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.FilterSSE(rec, filterRequest(t, "good"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.FilterSSE(rec, filterRequest(t, "[unclosed"))

	body := rec.Body.String()
	assert.Contains(t, body, "classList.add('invalid')")
	assert.NotContains(t, body, "applyState")

	// The controller still holds the last valid query.
	assert.Equal(t, "good", h.provider.Instance().Controller.Query())
}
