// Package graphview provides the interactive trace graph page and its
// live-update handlers.
package graphview

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/traceviz/internal/ui/notifier"
	"github.com/leapstack-labs/traceviz/pkg/traceviz"
)

const (
	sessionName = "traceviz"
	sessionKey  = "filter"
)

// InstanceProvider yields the current visualization instance. The server
// swaps the instance when the trace file changes on disk, so handlers must
// re-fetch it per request instead of caching it.
type InstanceProvider interface {
	Instance() *traceviz.Instance
}

// FilterSignals is the signal payload sent by the filter input.
type FilterSignals struct {
	Filter string `json:"filter"`
}

// Handlers provides HTTP handlers for the graph view feature.
type Handlers struct {
	provider     InstanceProvider
	sessionStore sessions.Store
	notify       *notifier.Notifier

	// Serializes controller state transitions; the controller itself is
	// not safe for concurrent ApplyFilter calls.
	mu sync.Mutex
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(provider InstanceProvider, sessionStore sessions.Store, notify *notifier.Notifier) *Handlers {
	return &Handlers{
		provider:     provider,
		sessionStore: sessionStore,
		notify:       notify,
	}
}

// HandleGraphPage renders the graph page with the session's last filter
// query already applied.
func (h *Handlers) HandleGraphPage(w http.ResponseWriter, r *http.Request) {
	inst := h.provider.Instance()

	query := ""
	if session, err := h.sessionStore.Get(r, sessionName); err == nil {
		if q, ok := session.Values[sessionKey].(string); ok {
			query = q
		}
	}

	h.mu.Lock()
	if err := inst.Controller.ApplyFilter(query); err != nil {
		// A stale session query can become invalid after a trace reload;
		// fall back to the unfiltered view rather than failing the page.
		query = ""
		_ = inst.Controller.ApplyFilter("")
	}
	payload, err := inst.Payload()
	h.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := renderGraphPage(w, "Trace Graph", query, payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// FilterSSE applies a filter query from the page's input and patches the
// render state into the live page. An invalid pattern leaves the current
// state untouched and only marks the input.
func (h *Handlers) FilterSSE(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals FilterSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}

	inst := h.provider.Instance()

	h.mu.Lock()
	applyErr := inst.Controller.ApplyFilter(signals.Filter)
	var state []byte
	var stateErr error
	if applyErr == nil {
		state, stateErr = inst.StatePayload()
	}
	h.mu.Unlock()

	if applyErr == nil {
		// Persist the accepted query before SSE writes response headers.
		if session, err := h.sessionStore.Get(r, sessionName); err == nil {
			session.Values[sessionKey] = signals.Filter
			_ = session.Save(r, w)
		}
	}

	sse := datastar.NewSSE(w, r)
	if applyErr != nil {
		_ = sse.ExecuteScript(`document.getElementById('tv-filter').classList.add('invalid')`)
		return
	}
	if stateErr != nil {
		_ = sse.ConsoleError(stateErr)
		return
	}
	_ = sse.ExecuteScript(fmt.Sprintf(
		`document.getElementById('tv-filter').classList.remove('invalid'); window.traceviz.applyState(%s)`,
		state,
	))
}

// GraphPageUpdates is a long-lived SSE stream that remounts the graph
// whenever the trace file is rebuilt.
func (h *Handlers) GraphPageUpdates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notify.Subscribe()
	defer h.notify.Unsubscribe(updates)

	for {
		select {
		case <-r.Context().Done():
			return
		case <-updates:
			inst := h.provider.Instance()
			h.mu.Lock()
			payload, err := inst.Payload()
			h.mu.Unlock()
			if err != nil {
				_ = sse.ConsoleError(err)
				continue
			}
			if err := sse.ExecuteScript(fmt.Sprintf("window.traceviz.mount(%s)", payload)); err != nil {
				return
			}
		}
	}
}

// HandleHighlight resolves hover emphasis: the set of edge indices to
// emphasize for a node or a single edge.
func (h *Handlers) HandleHighlight(w http.ResponseWriter, r *http.Request) {
	inst := h.provider.Instance()

	var idxs []int
	switch {
	case r.URL.Query().Has("node"):
		idxs = inst.Controller.HighlightNode(r.URL.Query().Get("node"))
	case r.URL.Query().Has("edge"):
		i, err := strconv.Atoi(r.URL.Query().Get("edge"))
		if err != nil || i < 0 || i >= inst.Model.EdgeCount() {
			http.Error(w, "invalid edge index", http.StatusBadRequest)
			return
		}
		idxs = inst.Controller.HighlightEdge(i)
	default:
		http.Error(w, "node or edge parameter required", http.StatusBadRequest)
		return
	}
	if idxs == nil {
		idxs = []int{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(idxs)
}

// HandleGraphJSON serves the full graph payload as plain JSON.
func (h *Handlers) HandleGraphJSON(w http.ResponseWriter, r *http.Request) {
	inst := h.provider.Instance()

	h.mu.Lock()
	payload, err := inst.Payload()
	h.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}
